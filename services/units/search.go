package units

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"coolrentals/database/query"
	"coolrentals/models"
)

// SearchParams are the optional filters of a public unit search.
// Absent values are empty strings or nil pointers.
type SearchParams struct {
	Search   string
	Brand    string
	Capacity string
	Type     string
	Location string
	Duration string
	MinPrice *float64
	MaxPrice *float64
	Page     *int64
	Limit    *int64
}

// SearchResult is a page of units plus the size of the whole match.
// Page and Limit are set only when the result is paginated.
type SearchResult struct {
	Units []models.Unit
	Total int64
	Page  *int64
	Limit *int64
}

// ParseSearchParams reads search parameters from a query string. Numbers that
// do not parse are treated as absent.
func ParseSearchParams(values url.Values) SearchParams {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return SearchParams{
		Search:   get("search"),
		Brand:    get("brand"),
		Capacity: get("capacity"),
		Type:     get("type"),
		Location: get("location"),
		Duration: get("duration"),
		MinPrice: parseFloat(get("minPrice")),
		MaxPrice: parseFloat(get("maxPrice")),
		Page:     parseInt(get("page")),
		Limit:    parseInt(get("limit")),
	}
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseInt(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// PriceField is the price tier the bounds apply to. Unknown or missing
// durations fall back to the monthly tier.
func (p SearchParams) PriceField() string {
	switch strings.ToLower(p.Duration) {
	case "quarterly":
		return "price.quarterly"
	case "yearly":
		return "price.yearly"
	default:
		return "price.monthly"
	}
}

// Window returns the effective page and page size. A size of zero means the
// result is not paginated.
func (p SearchParams) Window() (page, limit int64) {
	page = 1
	if p.Page != nil && *p.Page > 1 {
		page = *p.Page
	}
	if p.Limit != nil && *p.Limit > 0 {
		limit = *p.Limit
	}
	return page, limit
}

// SearchFilter builds the AND of every supplied condition.
func (p SearchParams) SearchFilter() query.Filter {
	var conds []query.Cond
	if p.Search != "" {
		conds = append(conds, query.AnyOf(
			query.Contains("brand", p.Search),
			query.Contains("model", p.Search),
			query.Contains("location", p.Search),
			query.Contains("description", p.Search),
		))
	}
	if p.Brand != "" {
		conds = append(conds, query.Contains("brand", p.Brand))
	}
	if p.Capacity != "" {
		conds = append(conds, query.Eq("capacity", p.Capacity))
	}
	if p.Type != "" {
		conds = append(conds, query.Eq("type", p.Type))
	}
	if p.Location != "" {
		conds = append(conds, query.Contains("location", p.Location))
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		conds = append(conds, query.Range(p.PriceField(), p.MinPrice, p.MaxPrice))
	}
	return query.And(conds...)
}

// BuildSearchQuery turns search parameters into a store query, newest first,
// windowed only when a positive page size was given.
func BuildSearchQuery(p SearchParams) query.Query {
	q := query.Query{
		Filter: p.SearchFilter(),
		Sort:   query.NewestFirst,
	}
	if page, limit := p.Window(); limit > 0 {
		q.Skip = query.PageSkip(page, limit)
		q.Limit = limit
	}
	return q
}
