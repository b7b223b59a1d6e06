package servicing

import (
	"context"
	"errors"
	"fmt"

	"coolrentals/database"
	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/services/notification"
	"coolrentals/utils"
)

const requestNotFound = "Service request not found"

func (s *DefaultRequestService) Create(ctx context.Context, req models.ServiceRequestBody) (*models.ServiceRequest, error) {
	sr := &models.ServiceRequest{
		Name:          req.Name,
		ACType:        req.ACType,
		Brand:         req.Brand,
		Model:         req.Model,
		Description:   req.Description,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Images:        orEmpty(req.Images),
		Status:        models.RequestNew,
	}
	if err := s.Repo.Create(ctx, sr); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create service request: %w", err))
	}
	s.Notifier.NotifyAdmin(ctx, notification.ServiceRequestMessage(*sr))
	return sr, nil
}

func (s *DefaultRequestService) List(ctx context.Context) ([]models.ServiceRequest, error) {
	all, err := s.Repo.Find(ctx, query.Query{Sort: query.NewestFirst})
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list service requests: %w", err))
	}
	return all, nil
}

func (s *DefaultRequestService) UpdateStatus(ctx context.Context, id, status string) (*models.StatusChange, error) {
	next := models.ServiceRequestStatus(status)
	if !next.Valid() {
		return nil, utils.ValidationError("Invalid status. Must be one of: " + models.StatusChoices(models.ServiceRequestStatuses))
	}
	oid, err := utils.ParseObjectID(id, requestNotFound)
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.SetStatus(ctx, oid, next)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError(requestNotFound)
		}
		return nil, utils.InternalError(err)
	}
	return &models.StatusChange{ID: updated.ID, Status: string(updated.Status), UpdatedAt: updated.UpdatedAt}, nil
}
