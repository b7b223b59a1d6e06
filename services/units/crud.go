package units

import (
	"context"
	"errors"
	"fmt"

	"coolrentals/database"
	"coolrentals/database/query"
	"coolrentals/models"
	"coolrentals/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const unitNotFound = "Unit not found"

// Search runs a filtered listing. Total always counts the whole match.
func (s *DefaultUnitService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	q := BuildSearchQuery(params)

	var (
		found []models.Unit
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		found, err = s.Repo.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.Repo.Count(gctx, q.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.InternalError(fmt.Errorf("unit search failed: %w", err))
	}

	result := &SearchResult{Units: found, Total: total}
	if page, limit := params.Window(); limit > 0 {
		result.Page = &page
		result.Limit = &limit
	}
	return result, nil
}

// GetByID resolves a unit; malformed ids are reported as not found.
func (s *DefaultUnitService) GetByID(ctx context.Context, id string) (*models.Unit, error) {
	oid, err := utils.ParseObjectID(id, unitNotFound)
	if err != nil {
		return nil, err
	}
	unit, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, lookupError(err)
	}
	return unit, nil
}

// GetDetail returns a unit together with its related units.
func (s *DefaultUnitService) GetDetail(ctx context.Context, id string) (*models.UnitDetail, error) {
	unit, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.RelatedUnits(ctx, *unit)
	if err != nil {
		return nil, utils.InternalError(err)
	}
	return &models.UnitDetail{Unit: *unit, RelatedUnits: related}, nil
}

// ListAll returns every unit regardless of status, newest first.
func (s *DefaultUnitService) ListAll(ctx context.Context) ([]models.Unit, error) {
	all, err := s.Repo.Find(ctx, query.Query{Sort: query.NewestFirst})
	if err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to list units: %w", err))
	}
	return all, nil
}

func (s *DefaultUnitService) Create(ctx context.Context, req models.CreateUnitRequest) (*models.Unit, error) {
	if req.Price == nil {
		return nil, utils.ValidationError("Price is required")
	}
	price, err := NormalizePrice(*req.Price, nil)
	if err != nil {
		return nil, err
	}

	unit := &models.Unit{
		Brand:       req.Brand,
		Model:       req.Model,
		Capacity:    req.Capacity,
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		Price:       price,
		Status:      req.Status,
		Images:      req.Images,
	}
	if unit.Status == "" {
		unit.Status = models.UnitAvailable
	}
	if unit.Images == nil {
		unit.Images = []string{}
	}
	if err := s.Repo.Create(ctx, unit); err != nil {
		return nil, utils.InternalError(fmt.Errorf("failed to create unit: %w", err))
	}
	utils.GetLogger().Info("Unit created", zap.String("id", unit.ID.Hex()), zap.String("brand", unit.Brand))
	return unit, nil
}

// Update changes the supplied fields only. Price tiers missing from an object
// price keep their stored values.
func (s *DefaultUnitService) Update(ctx context.Context, id string, req models.UpdateUnitRequest) (*models.Unit, error) {
	oid, err := utils.ParseObjectID(id, unitNotFound)
	if err != nil {
		return nil, err
	}

	fields, err := s.updateFields(ctx, id, req)
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, lookupError(err)
	}
	return updated, nil
}

func (s *DefaultUnitService) updateFields(ctx context.Context, id string, req models.UpdateUnitRequest) (bson.M, error) {
	fields := bson.M{}
	for key, v := range map[string]*string{
		"brand":       req.Brand,
		"model":       req.Model,
		"capacity":    req.Capacity,
		"description": req.Description,
		"location":    req.Location,
	} {
		if v != nil {
			fields[key] = *v
		}
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Images != nil {
		images := *req.Images
		if images == nil {
			images = []string{}
		}
		fields["images"] = images
	}
	if req.Price != nil {
		// Only a partial price object needs the stored tiers.
		var existing *models.Price
		if !req.Price.IsFlat() {
			stored, err := s.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			existing = &stored.Price
		}
		price, err := NormalizePrice(*req.Price, existing)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	return fields, nil
}

// Delete removes the unit. Inquiries that reference it keep their snapshot.
func (s *DefaultUnitService) Delete(ctx context.Context, id string) error {
	oid, err := utils.ParseObjectID(id, unitNotFound)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, oid); err != nil {
		return lookupError(err)
	}
	return nil
}

func lookupError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFoundError(unitNotFound)
	}
	return utils.InternalError(err)
}
