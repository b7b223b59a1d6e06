package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryStatus is the workflow state shared by rental inquiries and service bookings.
type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "New"
	InquiryContacted  InquiryStatus = "Contacted"
	InquiryInProgress InquiryStatus = "In-Progress"
	InquiryResolved   InquiryStatus = "Resolved"
	InquiryRejected   InquiryStatus = "Rejected"
)

// InquiryStatuses lists every status an inquiry or booking may take, in display order.
var InquiryStatuses = []InquiryStatus{
	InquiryNew, InquiryContacted, InquiryInProgress, InquiryResolved, InquiryRejected,
}

func (s InquiryStatus) Valid() bool {
	for _, v := range InquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusChoices renders an allowed-status list for error messages.
func StatusChoices[T ~string](list []T) string {
	names := make([]string, len(list))
	for i, v := range list {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

// RentalDuration is the billing tier a renter asks for.
type RentalDuration string

const (
	DurationMonthly   RentalDuration = "Monthly"
	DurationQuarterly RentalDuration = "Quarterly"
	DurationYearly    RentalDuration = "Yearly"
)

func (d RentalDuration) Valid() bool {
	return d == DurationMonthly || d == DurationQuarterly || d == DurationYearly
}

// UnitSnapshot is the copy of a unit's descriptive fields taken when an inquiry is made.
type UnitSnapshot struct {
	ID       string `bson:"id" json:"id"`
	Brand    string `bson:"brand" json:"brand"`
	Model    string `bson:"model" json:"model"`
	Capacity string `bson:"capacity" json:"capacity"`
	Type     string `bson:"type" json:"type"`
	Location string `bson:"location" json:"location"`
	Price    Price  `bson:"price" json:"price"`
}

// SnapshotOf captures the current state of u.
func SnapshotOf(u *Unit) UnitSnapshot {
	return UnitSnapshot{
		ID:       u.ID.Hex(),
		Brand:    u.Brand,
		Model:    u.Model,
		Capacity: u.Capacity,
		Type:     string(u.Type),
		Location: u.Location,
		Price:    u.Price,
	}
}

// RentalInquiry is a request to rent a unit.
type RentalInquiry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UnitID      primitive.ObjectID `bson:"unitId" json:"unitId"`
	UnitDetails UnitSnapshot       `bson:"unitDetails" json:"unitDetails"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Duration    RentalDuration     `bson:"duration" json:"duration"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Status      InquiryStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StatusChange is the response body of a status transition.
type StatusChange struct {
	ID        primitive.ObjectID `json:"_id"`
	Status    string             `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
