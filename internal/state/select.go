package state

import (
	"github.com/tessaro/storefront/internal/domain"
	"github.com/tessaro/storefront/internal/filter"
)

// VisibleProducts derives the listing view from the catalog, the search
// query, and the filter state. Recomputed on read, never stored.
func (s State) VisibleProducts() []domain.Product {
	return filter.Visible(s.Catalog, s.SearchQuery, s.Filter)
}
