package service

import (
	"strings"

	"github.com/toybox/storefront/internal/core/domain"
)

// FilterProducts returns the products passing all criteria, preserving
// input order. It is pure and never fails: malformed bounds such as
// MinPrice > MaxPrice yield an empty result, not an error.
//
// A product passes iff its name contains the search term
// (case-insensitive, empty term always matches), the category matches
// or the "All" sentinel is selected, and the price is within bounds.
func FilterProducts(ps []domain.Product, c domain.FilterCriteria) []domain.Product {
	term := strings.ToLower(c.SearchTerm)

	var out []domain.Product
	for _, p := range ps {
		if !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if c.Category != domain.CategoryAll && p.Category != c.Category {
			continue
		}
		if p.Price < c.MinPrice || p.Price > c.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}
