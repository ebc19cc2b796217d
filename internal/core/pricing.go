package core

import "math"

// Price resolves a transaction's total from the selected category preset.
//
// The category is matched by exact name; a miss yields zero Money, which
// callers must treat as "no valid category selected" rather than a real
// free-of-charge price. When applyDiscount is set the preset is reduced by
// discountPercent, rounded half-up to the cent. The percentage is not
// clamped here; validate upstream if out-of-range input is possible.
func Price(categories []CategoryItem, name string, discountPercent float64, applyDiscount bool) Money {
	for _, c := range categories {
		if c.Name != name {
			continue
		}
		cents := c.DefaultValue.Cents
		if applyDiscount {
			cents = int64(math.Round(float64(cents) * (1 - discountPercent/100)))
		}
		return Money{Cents: cents}
	}
	return Money{}
}

// PriceFor is Price applied against the settings' own presets and discount.
func (s Settings) PriceFor(category string, applyDiscount bool) Money {
	return Price(s.Categories, category, s.DiscountPercent, applyDiscount)
}
