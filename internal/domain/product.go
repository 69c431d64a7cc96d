package domain

// CategoryAll is the sentinel filter category meaning "no category restriction".
const CategoryAll = "all"

// Product is a catalog entry. The catalog source owns products; the state
// machine treats them as read-only input and never mutates one.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"` // minor currency units
	Category    string   `json:"category"`
	Brand       string   `json:"brand,omitempty"`
	InStock     bool     `json:"in_stock"`
	Tags        []string `json:"tags,omitempty"`
}

// SortBy selects the price ordering for the listing view.
type SortBy string

const (
	// SortPriceAsc orders cheapest first. This is the default when no
	// explicit sort has been chosen.
	SortPriceAsc SortBy = "price_asc"
	// SortPriceDesc orders most expensive first.
	SortPriceDesc SortBy = "price_desc"
)

// FilterState is pure view state for the listing pages. It has no persistence
// obligation beyond the session and survives sign-out.
type FilterState struct {
	Category    string `json:"category"`
	MinPrice    int64  `json:"min_price"`
	MaxPrice    int64  `json:"max_price"`
	InStockOnly bool   `json:"in_stock_only"`
	SortBy      SortBy `json:"sort_by"`
}

// DefaultMaxPrice is the upper bound of a freshly reset price range.
// Wide enough that no catalog entry is filtered out by default.
const DefaultMaxPrice = int64(100_000_000)

// DefaultFilter returns the filter applied before the user touches any
// control: all categories, full price range, out-of-stock included,
// cheapest first.
func DefaultFilter() FilterState {
	return FilterState{
		Category: CategoryAll,
		MinPrice: 0,
		MaxPrice: DefaultMaxPrice,
		SortBy:   SortPriceAsc,
	}
}
