// Package query models document-store filters as an immutable condition tree.
//
// A Filter is a conjunction of conditions. Each condition is one of a small set
// of tagged variants (exact match, case-insensitive substring, inclusive range,
// OR-group, membership, exclusion). The tree can be compiled to a MongoDB filter with BSON
// or evaluated in memory with Match.
package query

import "math"

// Kind tags the variant a Cond holds.
type Kind int

const (
	KindEq Kind = iota + 1
	KindContains
	KindRange
	KindAnyOf
	KindNotIn
	KindIn
)

func (k Kind) String() string {
	switch k {
	case KindEq:
		return "eq"
	case KindContains:
		return "contains"
	case KindRange:
		return "range"
	case KindAnyOf:
		return "anyOf"
	case KindNotIn:
		return "notIn"
	case KindIn:
		return "in"
	default:
		return "unknown"
	}
}

// Cond is a single predicate. Build it with Eq, Contains, Range, AnyOf, In or NotIn.
type Cond struct {
	kind   Kind
	field  string
	value  any
	text   string
	min    *float64
	max    *float64
	alts   []Cond
	values []any
}

func (c Cond) Kind() Kind { return c.kind }
func (c Cond) Field() string { return c.field }
func (c Cond) Value() any { return c.value }
func (c Cond) Text() string { return c.text }
func (c Cond) Min() *float64 { return c.min }
func (c Cond) Max() *float64 { return c.max }
func (c Cond) Values() []any { return append([]any(nil), c.values...) }
func (c Cond) Alternatives() []Cond { return append([]Cond(nil), c.alts...) }

// Eq matches documents whose field equals value.
func Eq(field string, value any) Cond {
	return Cond{kind: KindEq, field: field, value: value}
}

// Contains matches documents whose string field contains text, ignoring case.
// The text is matched literally.
func Contains(field, text string) Cond {
	return Cond{kind: KindContains, field: field, text: text}
}

// Range matches documents whose numeric field lies within [min, max].
// A nil bound is open.
func Range(field string, min, max *float64) Cond {
	return Cond{kind: KindRange, field: field, min: copyFloat(min), max: copyFloat(max)}
}

// AnyOf matches documents satisfying at least one of conds.
func AnyOf(conds ...Cond) Cond {
	return Cond{kind: KindAnyOf, alts: append([]Cond(nil), conds...)}
}

// In matches documents whose field equals one of values.
func In(field string, values ...any) Cond {
	return Cond{kind: KindIn, field: field, values: append([]any(nil), values...)}
}

// NotIn matches documents whose field equals none of values.
func NotIn(field string, values ...any) Cond {
	return Cond{kind: KindNotIn, field: field, values: append([]any(nil), values...)}
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Filter is an AND-list of conditions. The zero value matches everything.
type Filter struct {
	conds []Cond
}

// And builds a filter from conds.
func And(conds ...Cond) Filter {
	return Filter{conds: append([]Cond(nil), conds...)}
}

// With returns a new filter with conds appended; f is left unchanged.
func (f Filter) With(conds ...Cond) Filter {
	out := make([]Cond, 0, len(f.conds)+len(conds))
	out = append(out, f.conds...)
	out = append(out, conds...)
	return Filter{conds: out}
}

// Conds returns a copy of the filter's conditions.
func (f Filter) Conds() []Cond {
	return append([]Cond(nil), f.conds...)
}

// Empty reports whether the filter imposes no constraint.
func (f Filter) Empty() bool {
	return len(f.conds) == 0
}

// SortField orders results by Field, descending when Desc is set.
type SortField struct {
	Field string
	Desc  bool
}

// Query is a filter plus ordering and an optional window.
// A zero Limit means no limit.
type Query struct {
	Filter Filter
	Sort   []SortField
	Skip   int64
	Limit  int64
}

// PageSkip returns how many documents precede the 1-based page of the given
// size. Pages too large to address saturate at math.MaxInt64.
func PageSkip(page, limit int64) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

// NewestFirst is the default ordering for listings.
var NewestFirst = []SortField{
	{Field: "createdAt", Desc: true},
	{Field: "_id", Desc: true},
}
