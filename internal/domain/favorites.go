package domain

import "slices"

// Favorites is a wishlist: a set of products deduplicated by ID. Insertion
// order is preserved for display but carries no meaning.
type Favorites struct {
	Products []Product `json:"products"`
}

// Toggle returns the set with the product added if absent, or removed if
// present.
func (f Favorites) Toggle(p Product) Favorites {
	if f.Contains(p.ID) {
		kept := make([]Product, 0, len(f.Products))
		for _, fp := range f.Products {
			if fp.ID != p.ID {
				kept = append(kept, fp)
			}
		}
		return Favorites{Products: kept}
	}
	return Favorites{Products: append(slices.Clone(f.Products), p)}
}

// Contains reports whether a product is in the set.
func (f Favorites) Contains(productID string) bool {
	for _, fp := range f.Products {
		if fp.ID == productID {
			return true
		}
	}
	return false
}

// Len returns the number of favorited products.
func (f Favorites) Len() int {
	return len(f.Products)
}
