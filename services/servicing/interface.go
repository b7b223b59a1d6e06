package servicing

import (
	"context"
	"time"

	servicingRepo "coolrentals/database/repository/servicing"
	"coolrentals/models"
	"coolrentals/services/notification"
)

// CatalogService manages the servicing offers shown on the site.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, req models.ServiceInput) (*models.Service, error)
	Update(ctx context.Context, id string, req models.ServiceUpdate) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

// BookingService takes and moderates appointments for catalog services.
type BookingService interface {
	Create(ctx context.Context, req models.ServiceBookingRequest) (*models.ServiceBooking, error)
	List(ctx context.Context, params BookingListParams) (*BookingPage, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.ServiceBooking, error)
}

// RequestService takes and moderates standalone repair requests.
type RequestService interface {
	Create(ctx context.Context, req models.ServiceRequestBody) (*models.ServiceRequest, error)
	List(ctx context.Context) ([]models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.StatusChange, error)
}

// DefaultCatalogService is the production CatalogService.
type DefaultCatalogService struct {
	Repo servicingRepo.ServiceRepository
}

// DefaultBookingService is the production BookingService. Now and Location
// decide what "today" is when checking a preferred date.
type DefaultBookingService struct {
	Repo     servicingRepo.BookingRepository
	Services servicingRepo.ServiceRepository
	Notifier notification.Notifier
	Now      func() time.Time
	Location *time.Location
}

// DefaultRequestService is the production RequestService.
type DefaultRequestService struct {
	Repo     servicingRepo.RequestRepository
	Notifier notification.Notifier
}

func NewDefaultCatalogService(repo servicingRepo.ServiceRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo}
}

func NewDefaultBookingService(repo servicingRepo.BookingRepository, services servicingRepo.ServiceRepository, notifier notification.Notifier, loc *time.Location) *DefaultBookingService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultBookingService{Repo: repo, Services: services, Notifier: notifier, Now: time.Now, Location: loc}
}

func NewDefaultRequestService(repo servicingRepo.RequestRepository, notifier notification.Notifier) *DefaultRequestService {
	return &DefaultRequestService{Repo: repo, Notifier: notifier}
}
