package units

import (
	"math"

	"coolrentals/models"
	"coolrentals/utils"
)

// NormalizePrice turns an admin-supplied price into the stored three-tier form.
//
// A bare number is the monthly rate and the other tiers are derived from it.
// An object keeps the tiers it carries; missing tiers come from existing when
// one is given (update), otherwise from the monthly rate (create).
func NormalizePrice(input models.PriceInput, existing *models.Price) (models.Price, error) {
	if input.IsFlat() {
		monthly := *input.Flat
		if invalidAmount(monthly) {
			return models.Price{}, utils.ValidationError("Price must be a positive number")
		}
		return models.Price{Monthly: monthly, Quarterly: monthly * 3, Yearly: monthly * 12}, nil
	}

	if input.Monthly == nil && existing == nil {
		return models.Price{}, utils.ValidationError("Monthly price is required")
	}
	checks := []struct {
		value   *float64
		message string
	}{
		{input.Monthly, "Monthly price must be a positive number"},
		{input.Quarterly, "Quarterly price must be a positive number"},
		{input.Yearly, "Yearly price must be a positive number"},
	}
	for _, c := range checks {
		if c.value != nil && invalidAmount(*c.value) {
			return models.Price{}, utils.ValidationError(c.message)
		}
	}

	var out models.Price
	if existing != nil {
		out = *existing
	}
	if input.Monthly != nil {
		out.Monthly = *input.Monthly
	}
	switch {
	case input.Quarterly != nil:
		out.Quarterly = *input.Quarterly
	case existing == nil:
		out.Quarterly = out.Monthly * 3
	}
	switch {
	case input.Yearly != nil:
		out.Yearly = *input.Yearly
	case existing == nil:
		out.Yearly = out.Monthly * 12
	}
	return out, nil
}

func invalidAmount(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}
