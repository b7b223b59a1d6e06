package servicingRepo

import (
	"context"

	"coolrentals/database/query"
	"coolrentals/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRepository defines data access for the service catalog.
type ServiceRepository interface {
	Find(ctx context.Context, q query.Query) ([]models.Service, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	// Update applies the given field values; updatedAt is set automatically.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Service, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookingRepository defines data access for service bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.ServiceBooking) error
	Find(ctx context.Context, q query.Query) ([]models.ServiceBooking, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.ServiceBooking, error)
}

// RequestRepository defines data access for repair requests.
type RequestRepository interface {
	Create(ctx context.Context, request *models.ServiceRequest) error
	Find(ctx context.Context, q query.Query) ([]models.ServiceRequest, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceRequestStatus) (*models.ServiceRequest, error)
}
