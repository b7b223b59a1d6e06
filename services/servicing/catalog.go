package servicing

import (
	"context"
	"errors"
	"fmt"

	"coolrentals/database"
	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/utils"

	"go.mongodb.org/mongo-driver/bson"
)

const serviceNotFound = "Service not found"

func (s *DefaultCatalogService) List(ctx context.Context) ([]models.Service, error) {
	all, err := s.Repo.Find(ctx, query.Query{Sort: query.NewestFirst})
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list services: %w", err))
	}
	return all, nil
}

func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	oid, err := utils.ParseObjectID(id, serviceNotFound)
	if err != nil {
		return nil, err
	}
	svc, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, serviceLookupError(err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) Create(ctx context.Context, req models.ServiceInput) (*models.Service, error) {
	svc := &models.Service{
		Title:                req.Title,
		Description:          req.Description,
		OriginalPrice:        req.OriginalPrice,
		Badge:                req.Badge,
		Image:                req.Image,
		Process:              orEmpty(req.Process),
		Benefits:             orEmpty(req.Benefits),
		KeyFeatures:          orEmpty(req.KeyFeatures),
		RecommendedFrequency: req.RecommendedFrequency,
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create service: %w", err))
	}
	return svc, nil
}

// Update changes the supplied fields only. An explicit null or empty badge removes it.
func (s *DefaultCatalogService) Update(ctx context.Context, id string, req models.ServiceUpdate) (*models.Service, error) {
	oid, err := utils.ParseObjectID(id, serviceNotFound)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		fields["originalPrice"] = *req.OriginalPrice
	}
	switch {
	case req.ClearBadge:
		fields["badge"] = nil
	case req.Badge != nil:
		fields["badge"] = *req.Badge
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Process != nil {
		fields["process"] = orEmpty(*req.Process)
	}
	if req.Benefits != nil {
		fields["benefits"] = orEmpty(*req.Benefits)
	}
	if req.KeyFeatures != nil {
		fields["keyFeatures"] = orEmpty(*req.KeyFeatures)
	}
	if req.RecommendedFrequency != nil {
		fields["recommendedFrequency"] = *req.RecommendedFrequency
	}

	updated, err := s.Repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, serviceLookupError(err)
	}
	return updated, nil
}

func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	oid, err := utils.ParseObjectID(id, serviceNotFound)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, oid); err != nil {
		return serviceLookupError(err)
	}
	return nil
}

func serviceLookupError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFoundError(serviceNotFound)
	}
	return utils.InternalError(err)
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
