package domain

import "slices"

// LineItem is one product entry in a cart. The unit price is captured at
// add time so later catalog price changes do not silently reprice a cart;
// OriginalPrice is retained for discount display.
type LineItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	UnitPrice     int64  `json:"unit_price"`
	OriginalPrice int64  `json:"original_price"`
	Quantity      int    `json:"quantity"` // always >= 1; 0 removes the line
}

// Subtotal returns unit price times quantity for this line.
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Cart is the ordered collection of line items plus two derived scalars.
//
// INVARIANTS:
//   - at most one line item per product ID
//   - every line item has Quantity >= 1
//   - Total == sum of UnitPrice*Quantity, ItemCount == sum of Quantity,
//     recomputed atomically with every mutation - never settable on their own
type Cart struct {
	Items     []LineItem `json:"items"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"item_count"`
}

// Add returns the cart with one more unit of the product. If a line item for
// the product already exists its quantity is incremented; otherwise a new
// line item with quantity 1 is appended, capturing the product's price.
func (c Cart) Add(p Product) Cart {
	items := slices.Clone(c.Items)
	found := false
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, LineItem{
			ProductID:     p.ID,
			Name:          p.Name,
			Category:      p.Category,
			UnitPrice:     p.Price,
			OriginalPrice: p.Price,
			Quantity:      1,
		})
	}
	return recompute(items)
}

// Remove returns the cart without the product's line item. Removing a product
// that is not in the cart is a no-op, not an error.
func (c Cart) Remove(productID string) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, li := range c.Items {
		if li.ProductID != productID {
			items = append(items, li)
		}
	}
	if len(items) == len(c.Items) {
		return c
	}
	return recompute(items)
}

// SetQuantity returns the cart with the product's quantity replaced.
// Quantities are clamped at 0, and a quantity of 0 removes the line item.
// Setting a quantity for a product not in the cart is a no-op.
func (c Cart) SetQuantity(productID string, quantity int) Cart {
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		return c.Remove(productID)
	}
	items := slices.Clone(c.Items)
	changed := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if !changed {
		return c
	}
	return recompute(items)
}

// Clear returns an empty cart. Used after checkout and on sign-out.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Find returns the line item for a product and whether it exists.
func (c Cart) Find(productID string) (LineItem, bool) {
	for _, li := range c.Items {
		if li.ProductID == productID {
			return li, true
		}
	}
	return LineItem{}, false
}

// recompute rebuilds the derived scalars from the item list. Every cart
// mutation funnels through here so Total and ItemCount are never stale.
func recompute(items []LineItem) Cart {
	c := Cart{Items: items}
	for _, li := range items {
		c.Total += li.Subtotal()
		c.ItemCount += li.Quantity
	}
	return c
}
