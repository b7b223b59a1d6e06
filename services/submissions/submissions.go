package submissions

import (
	"context"
	"fmt"

	"coolrentals/database/query"
	submissionsRepo "coolrentals/database/repository/submissions"
	"coolrentals/models"
	"coolrentals/services/notification"
	"coolrentals/utils"
)

// SubmissionService captures the simple public forms: leads, vendor listing
// requests and contact messages.
type SubmissionService interface {
	CreateLead(ctx context.Context, req models.LeadRequest) (*models.Lead, error)
	CreateVendorListing(ctx context.Context, req models.VendorListingRequest) (*models.VendorListing, error)
	CreateContact(ctx context.Context, req models.ContactRequest) (*models.Contact, error)

	ListLeads(ctx context.Context) ([]models.Lead, error)
	ListVendorListings(ctx context.Context) ([]models.VendorListing, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

type DefaultSubmissionService struct {
	Leads    submissionsRepo.LeadRepository
	Vendors  submissionsRepo.VendorRepository
	Contacts submissionsRepo.ContactRepository
	Notifier notification.Notifier
}

var newestFirst = query.Query{Sort: query.NewestFirst}

func (s *DefaultSubmissionService) CreateLead(ctx context.Context, req models.LeadRequest) (*models.Lead, error) {
	lead := &models.Lead{Name: req.Name, Phone: req.Phone, Message: req.Message}
	if err := s.Leads.Create(ctx, lead); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create lead: %w", err))
	}
	s.Notifier.NotifyAdmin(ctx, notification.LeadMessage(*lead))
	return lead, nil
}

func (s *DefaultSubmissionService) CreateVendorListing(ctx context.Context, req models.VendorListingRequest) (*models.VendorListing, error) {
	listing := &models.VendorListing{
		Name:         req.Name,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		Message:      req.Message,
	}
	if err := s.Vendors.Create(ctx, listing); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create vendor listing request: %w", err))
	}
	s.Notifier.NotifyAdmin(ctx, notification.VendorListingMessage(*listing))
	return listing, nil
}

func (s *DefaultSubmissionService) CreateContact(ctx context.Context, req models.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{Name: req.Name, Email: req.Email, Phone: req.Phone, Message: req.Message}
	if err := s.Contacts.Create(ctx, contact); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create contact: %w", err))
	}
	s.Notifier.NotifyAdmin(ctx, notification.ContactMessage(*contact))
	return contact, nil
}

func (s *DefaultSubmissionService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.Leads.Find(ctx, newestFirst)
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list leads: %w", err))
	}
	return leads, nil
}

func (s *DefaultSubmissionService) ListVendorListings(ctx context.Context) ([]models.VendorListing, error) {
	listings, err := s.Vendors.Find(ctx, newestFirst)
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list vendor requests: %w", err))
	}
	return listings, nil
}

func (s *DefaultSubmissionService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.Contacts.Find(ctx, newestFirst)
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list contacts: %w", err))
	}
	return contacts, nil
}
