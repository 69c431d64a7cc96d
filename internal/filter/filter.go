// Package filter derives the visible product subset for listing pages from
// the catalog, the free-text search query, and the filter state.
//
// Visible is deterministic and side-effect free: identical inputs always
// yield an identically ordered output. The sort is stable, so products with
// equal prices keep their catalog order.
package filter

import (
	"sort"
	"strings"

	"github.com/tessaro/storefront/internal/domain"
)

// Visible returns the catalog subset matching the query and filter, sorted
// by price. Stages, in order: free-text match, category, inclusive price
// range, stock flag, stable price sort.
func Visible(catalog []domain.Product, query string, f domain.FilterState) []domain.Product {
	query = strings.TrimSpace(query)

	visible := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if query != "" && !matches(p, query) {
			continue
		}
		if f.Category != "" && f.Category != domain.CategoryAll && p.Category != f.Category {
			continue
		}
		if p.Price < f.MinPrice || p.Price > f.MaxPrice {
			continue
		}
		if f.InStockOnly && !p.InStock {
			continue
		}
		visible = append(visible, p)
	}

	// Ascending is the default when no explicit sort is set.
	if f.SortBy == domain.SortPriceDesc {
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Price > visible[j].Price })
	} else {
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Price < visible[j].Price })
	}
	return visible
}

// matches reports whether the query appears as a case-insensitive substring
// of the product's name, description, category, brand, or any tag.
func matches(p domain.Product, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{p.Name, p.Description, p.Category, p.Brand} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
