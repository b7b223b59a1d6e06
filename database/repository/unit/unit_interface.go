package unitRepo

import (
	"context"

	"coolrentals/database/query"
	"coolrentals/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnitRepository defines data access for rentable units.
type UnitRepository interface {
	// Find returns the units selected by q, in q's order.
	Find(ctx context.Context, q query.Query) ([]models.Unit, error)
	// Count returns how many units match f, ignoring any window.
	Count(ctx context.Context, f query.Filter) (int64, error)
	// GetByID returns database.ErrNotFound when the unit does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error)
	Create(ctx context.Context, unit *models.Unit) error
	// Update sets only the given fields and returns the stored result.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Unit, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
