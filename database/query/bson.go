package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BSON compiles the filter into a MongoDB filter document.
func (f Filter) BSON() bson.D {
	switch len(f.conds) {
	case 0:
		return bson.D{}
	case 1:
		return f.conds[0].BSON()
	}
	parts := make(bson.A, 0, len(f.conds))
	for _, c := range f.conds {
		parts = append(parts, c.BSON())
	}
	return bson.D{{Key: "$and", Value: parts}}
}

// BSON compiles a single condition.
func (c Cond) BSON() bson.D {
	switch c.kind {
	case KindEq:
		return bson.D{{Key: c.field, Value: c.value}}
	case KindContains:
		return bson.D{{Key: c.field, Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(c.text)},
			{Key: "$options", Value: "i"},
		}}}
	case KindRange:
		bounds := bson.D{}
		if c.min != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *c.min})
		}
		if c.max != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *c.max})
		}
		if len(bounds) == 0 {
			// An unbounded range only requires the field to exist.
			bounds = bson.D{{Key: "$exists", Value: true}}
		}
		return bson.D{{Key: c.field, Value: bounds}}
	case KindAnyOf:
		alts := make(bson.A, 0, len(c.alts))
		for _, a := range c.alts {
			alts = append(alts, a.BSON())
		}
		return bson.D{{Key: "$or", Value: alts}}
	case KindIn:
		return bson.D{{Key: c.field, Value: bson.D{{Key: "$in", Value: valuesArray(c.values)}}}}
	case KindNotIn:
		return bson.D{{Key: c.field, Value: bson.D{{Key: "$nin", Value: valuesArray(c.values)}}}}
	}
	return bson.D{}
}

func valuesArray(values []any) bson.A {
	out := make(bson.A, 0, len(values))
	return append(out, values...)
}

// SortBSON compiles the ordering.
func (q Query) SortBSON() bson.D {
	sort := bson.D{}
	for _, s := range q.Sort {
		dir := 1
		if s.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: s.Field, Value: dir})
	}
	return sort
}

// FindOptions converts ordering and window into driver options.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.SortBSON())
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}
