package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnitType is the form factor of a rentable AC unit.
type UnitType string

const (
	UnitTypeSplit  UnitType = "Split"
	UnitTypeWindow UnitType = "Window"
)

func (t UnitType) Valid() bool {
	return t == UnitTypeSplit || t == UnitTypeWindow
}

// UnitStatus is the availability of a unit.
type UnitStatus string

const (
	UnitAvailable        UnitStatus = "Available"
	UnitRentedOut        UnitStatus = "Rented Out"
	UnitUnderMaintenance UnitStatus = "Under Maintenance"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitRentedOut, UnitUnderMaintenance:
		return true
	}
	return false
}

// Price holds the three billing tiers of a unit. All tiers are present once persisted.
type Price struct {
	Monthly   float64 `bson:"monthly" json:"monthly"`
	Quarterly float64 `bson:"quarterly" json:"quarterly"`
	Yearly    float64 `bson:"yearly" json:"yearly"`
}

// Unit is a rentable air-conditioner listing.
type Unit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Brand       string             `bson:"brand" json:"brand"`
	Model       string             `bson:"model" json:"model"`
	Capacity    string             `bson:"capacity" json:"capacity"`
	Type        UnitType           `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Price       Price              `bson:"price" json:"price"`
	Status      UnitStatus         `bson:"status" json:"status"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UnitDetail is a unit plus the related units shown next to it.
type UnitDetail struct {
	Unit         `bson:",inline"`
	RelatedUnits []Unit `bson:"relatedUnits" json:"relatedUnits"`
}
