package units

import (
	"context"

	unitRepo "coolrentals/database/repository/unit"
	"coolrentals/models"
)

// UnitService covers public browsing and admin management of rental units.
type UnitService interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	GetDetail(ctx context.Context, id string) (*models.UnitDetail, error)
	GetByID(ctx context.Context, id string) (*models.Unit, error)
	RelatedUnits(ctx context.Context, target models.Unit) ([]models.Unit, error)

	ListAll(ctx context.Context) ([]models.Unit, error)
	Create(ctx context.Context, req models.CreateUnitRequest) (*models.Unit, error)
	Update(ctx context.Context, id string, req models.UpdateUnitRequest) (*models.Unit, error)
	Delete(ctx context.Context, id string) error
}

// DefaultUnitService is the production implementation.
type DefaultUnitService struct {
	Repo unitRepo.UnitRepository
}

func NewDefaultUnitService(repo unitRepo.UnitRepository) *DefaultUnitService {
	return &DefaultUnitService{Repo: repo}
}
