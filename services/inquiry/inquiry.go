package inquiry

import (
	"context"
	"errors"
	"fmt"

	"coolrentals/database"
	"coolrentals/database/query"
	inquiryRepo "coolrentals/database/repository/inquiry"
	"coolrentals/models"
	"coolrentals/services/notification"
	"coolrentals/utils"

	"golang.org/x/sync/errgroup"
)

// UnitLookup resolves the unit an inquiry is about.
type UnitLookup interface {
	GetByID(ctx context.Context, id string) (*models.Unit, error)
}

type InquiryService interface {
	// Create records an inquiry for the unit named by pathID.
	Create(ctx context.Context, pathID string, req models.RentalInquiryRequest) (*models.RentalInquiry, error)
	List(ctx context.Context) ([]models.RentalInquiry, int64, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.StatusChange, error)
}

// DefaultInquiryService is the production implementation.
type DefaultInquiryService struct {
	Repo     inquiryRepo.RentalInquiryRepository
	Units    UnitLookup
	Notifier notification.Notifier
}

func NewDefaultInquiryService(repo inquiryRepo.RentalInquiryRepository, units UnitLookup, notifier notification.Notifier) *DefaultInquiryService {
	return &DefaultInquiryService{Repo: repo, Units: units, Notifier: notifier}
}

func (s *DefaultInquiryService) Create(ctx context.Context, pathID string, req models.RentalInquiryRequest) (*models.RentalInquiry, error) {
	if req.UnitID != "" && req.UnitID != pathID {
		return nil, utils.ConflictError("unitId in body must equal path parameter id")
	}

	unit, err := s.Units.GetByID(ctx, pathID)
	if err != nil {
		return nil, err
	}

	snapshot := models.SnapshotOf(unit)
	if req.UnitDetails != nil {
		snapshot = *req.UnitDetails
	}

	inq := &models.RentalInquiry{
		UnitID:      unit.ID,
		UnitDetails: snapshot,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Duration:    req.Duration,
		Message:     req.Message,
		Status:      models.InquiryNew,
	}
	if err := s.Repo.Create(ctx, inq); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create rental inquiry: %w", err))
	}

	s.Notifier.NotifyAdmin(ctx, notification.RentalInquiryMessage(*inq))
	return inq, nil
}

// List returns every inquiry newest first, with the total count.
func (s *DefaultInquiryService) List(ctx context.Context) ([]models.RentalInquiry, int64, error) {
	var (
		all   []models.RentalInquiry
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		all, err = s.Repo.Find(gctx, query.Query{Sort: query.NewestFirst})
		return err
	})
	g.Go(func() (err error) {
		total, err = s.Repo.Count(gctx, query.Filter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, utils.InternalError(fmt.Errorf("failed to list rental inquiries: %w", err))
	}
	return all, total, nil
}

func (s *DefaultInquiryService) UpdateStatus(ctx context.Context, id, status string) (*models.StatusChange, error) {
	next := models.InquiryStatus(status)
	if !next.Valid() {
		return nil, utils.ValidationError("Invalid status. Must be one of: " + models.StatusChoices(models.InquiryStatuses))
	}
	oid, err := utils.ParseObjectID(id, "Inquiry not found")
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.SetStatus(ctx, oid, next)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError("Inquiry not found")
		}
		return nil, utils.InternalError(err)
	}
	return &models.StatusChange{ID: updated.ID, Status: string(updated.Status), UpdatedAt: updated.UpdatedAt}, nil
}
