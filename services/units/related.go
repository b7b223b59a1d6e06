package units

import (
	"context"
	"fmt"

	"coolrentals/database/query"
	"coolrentals/models"
)

// RelatedLimit caps the related units shown next to a unit.
const RelatedLimit = 6

// relatedPool is every available unit except the target and the given ids.
func relatedPool(target models.Unit, exclude ...models.Unit) query.Filter {
	ids := make([]any, 0, len(exclude)+1)
	ids = append(ids, target.ID)
	for _, u := range exclude {
		ids = append(ids, u.ID)
	}
	return query.And(
		query.NotIn("_id", ids...),
		query.Eq("status", models.UnitAvailable),
	)
}

// PrimaryRelatedQuery selects pool units sharing location, brand, type or capacity with target.
func PrimaryRelatedQuery(target models.Unit) query.Query {
	return query.Query{
		Filter: relatedPool(target).With(query.AnyOf(
			query.Eq("location", target.Location),
			query.Eq("brand", target.Brand),
			query.Eq("type", target.Type),
			query.Eq("capacity", target.Capacity),
		)),
		Sort:  query.NewestFirst,
		Limit: RelatedLimit,
	}
}

// BackfillRelatedQuery selects the newest remaining pool units to top up the primary matches.
func BackfillRelatedQuery(target models.Unit, primary []models.Unit) query.Query {
	return query.Query{
		Filter: relatedPool(target, primary...),
		Sort:   query.NewestFirst,
		Limit:  int64(RelatedLimit - len(primary)),
	}
}

// RelatedUnits returns up to RelatedLimit available units for target:
// the attribute matches first, then the newest other available units.
func (s *DefaultUnitService) RelatedUnits(ctx context.Context, target models.Unit) ([]models.Unit, error) {
	primary, err := s.Repo.Find(ctx, PrimaryRelatedQuery(target))
	if err != nil {
		return nil, fmt.Errorf("failed to find related units: %w", err)
	}
	if len(primary) >= RelatedLimit {
		return primary[:RelatedLimit], nil
	}
	backfill, err := s.Repo.Find(ctx, BackfillRelatedQuery(target, primary))
	if err != nil {
		return nil, fmt.Errorf("failed to backfill related units: %w", err)
	}
	return append(primary, backfill...), nil
}
