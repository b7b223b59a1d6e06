package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceBadge is the optional highlight shown on a catalog service.
type ServiceBadge string

const (
	BadgeVisitWithin1Hour ServiceBadge = "Visit Within 1 Hour"
	BadgeMostBooked       ServiceBadge = "Most Booked"
	BadgePowerSaver       ServiceBadge = "Power Saver"
)

func (b ServiceBadge) Valid() bool {
	switch b {
	case BadgeVisitWithin1Hour, BadgeMostBooked, BadgePowerSaver:
		return true
	}
	return false
}

// Service is a servicing offer in the catalog.
type Service struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Price                float64            `bson:"price" json:"price"`
	OriginalPrice        *float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Badge                *ServiceBadge      `bson:"badge" json:"badge"`
	Image                string             `bson:"image,omitempty" json:"image,omitempty"`
	Process              []string           `bson:"process" json:"process"`
	Benefits             []string           `bson:"benefits" json:"benefits"`
	KeyFeatures          []string           `bson:"keyFeatures" json:"keyFeatures"`
	RecommendedFrequency string             `bson:"recommendedFrequency,omitempty" json:"recommendedFrequency,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ServiceBooking is a customer's appointment for a catalog service.
type ServiceBooking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ServiceID     primitive.ObjectID `bson:"serviceId" json:"serviceId"`
	ServiceTitle  string             `bson:"-" json:"serviceTitle,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Phone         string             `bson:"phone" json:"phone"`
	PreferredDate string             `bson:"preferredDate" json:"preferredDate"`
	PreferredTime string             `bson:"preferredTime" json:"preferredTime"`
	Address       string             `bson:"address" json:"address"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        InquiryStatus      `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ACType is the kind of unit a repair request concerns.
type ACType string

const (
	ACTypeSplit   ACType = "Split"
	ACTypeWindow  ACType = "Window"
	ACTypeCentral ACType = "Central"
)

func (t ACType) Valid() bool {
	return t == ACTypeSplit || t == ACTypeWindow || t == ACTypeCentral
}

// ServiceRequestStatus is the workflow state of a repair request.
type ServiceRequestStatus string

const (
	RequestNew          ServiceRequestStatus = "New"
	RequestContacted    ServiceRequestStatus = "Contacted"
	RequestJobCompleted ServiceRequestStatus = "Job Completed"
)

// ServiceRequestStatuses lists every status a repair request may take.
var ServiceRequestStatuses = []ServiceRequestStatus{RequestNew, RequestContacted, RequestJobCompleted}

func (s ServiceRequestStatus) Valid() bool {
	for _, v := range ServiceRequestStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ServiceRequest is a standalone repair or servicing request.
type ServiceRequest struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name          string               `bson:"name" json:"name"`
	ACType        ACType               `bson:"acType" json:"acType"`
	Brand         string               `bson:"brand" json:"brand"`
	Model         string               `bson:"model,omitempty" json:"model,omitempty"`
	Description   string               `bson:"description" json:"description"`
	Address       string               `bson:"address" json:"address"`
	ContactNumber string               `bson:"contactNumber" json:"contactNumber"`
	Images        []string             `bson:"images" json:"images"`
	Status        ServiceRequestStatus `bson:"status" json:"status"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
