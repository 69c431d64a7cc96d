// Package action defines the tagged union of state transitions understood by
// the reducer, and the JSON envelope codec used to journal them.
//
// Action is a sealed interface: only the variants in this package implement
// it, which lets the reducer switch exhaustively and lets the codec reject
// unknown type tags instead of guessing at payload shapes.
package action

import (
	"time"

	"github.com/tessaro/storefront/internal/domain"
)

// Action is one dispatched state transition. Sealed - only variants in this
// package implement it.
type Action interface {
	// Name returns the stable type tag used in journals, traces, and
	// scenario files (e.g. "cart.add_item").
	Name() string

	isAction()
}

// --- session gate ---

// SignIn authenticates a user and resets all per-user state to empty.
type SignIn struct {
	UserID string `json:"user_id"`
}

// SignOut discards all per-user state. The catalog, search query, and
// filter preferences survive for UX continuity.
type SignOut struct{}

// --- catalog ---

// LoadCatalog replaces the read-only product list supplied by the catalog
// source.
type LoadCatalog struct {
	Products []domain.Product `json:"products"`
}

// --- cart ledger ---

// AddItem adds one unit of a product to the cart, incrementing the existing
// line item if present.
type AddItem struct {
	Product domain.Product `json:"product"`
}

// RemoveItem deletes a line item. Idempotent.
type RemoveItem struct {
	ProductID string `json:"product_id"`
}

// SetQuantity replaces a line item's quantity. Values below zero clamp to
// zero, and zero removes the line.
type SetQuantity struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ClearCart empties the cart unconditionally.
type ClearCart struct{}

// --- wishlist ---

// ToggleFavorite adds the product to the wishlist if absent, removes it if
// present.
type ToggleFavorite struct {
	Product domain.Product `json:"product"`
}

// --- address book ---

// AddAddress appends a saved address; the first entry in an empty book
// becomes the default.
type AddAddress struct {
	Address domain.Address `json:"address"`
}

// UpdateAddress replaces the address with the same ID.
type UpdateAddress struct {
	Address domain.Address `json:"address"`
}

// RemoveAddress deletes an address by ID.
type RemoveAddress struct {
	ID string `json:"id"`
}

// SetDefaultAddress marks exactly one address default, clearing the rest in
// the same transition.
type SetDefaultAddress struct {
	ID string `json:"id"`
}

// --- payment book ---

// AddPaymentMethod appends a saved payment instrument; the first entry in an
// empty book becomes the default.
type AddPaymentMethod struct {
	Method domain.PaymentMethod `json:"method"`
}

// UpdatePaymentMethod replaces the method with the same ID.
type UpdatePaymentMethod struct {
	Method domain.PaymentMethod `json:"method"`
}

// RemovePaymentMethod deletes a payment method by ID.
type RemovePaymentMethod struct {
	ID string `json:"id"`
}

// SetDefaultPaymentMethod marks exactly one method default, clearing the
// rest in the same transition.
type SetDefaultPaymentMethod struct {
	ID string `json:"id"`
}

// --- order journal ---

// PlaceOrder snapshots the cart plus the chosen (or default) address and
// payment method into a new order with status processing, prepends it to the
// journal, clears the cart, and pushes an order-placed notification - all in
// one transition, so no reader ever observes the order without the cleared
// cart.
//
// IDs and the timestamp are supplied by the dispatcher, not generated inside
// the reducer: the reducer stays pure and replay reproduces identical state.
type PlaceOrder struct {
	OrderID        string    `json:"order_id"`
	NotificationID string    `json:"notification_id"`
	AddressID      string    `json:"address_id,omitempty"`    // empty: use the default address
	PaymentID      string    `json:"payment_id,omitempty"`    // empty: use the default method
	PlacedAt       time.Time `json:"placed_at"`
}

// UpdateOrderStatus applies a fulfillment-driven status transition. Illegal
// transitions (per domain.OrderStatus.CanTransition) are no-ops.
type UpdateOrderStatus struct {
	OrderID  string             `json:"order_id"`
	Status   domain.OrderStatus `json:"status"`
	Tracking string             `json:"tracking,omitempty"`
	Notes    string             `json:"notes,omitempty"`
	At       time.Time          `json:"at"`
}

// --- notification feed ---

// PushNotification prepends an entry to the feed (most-recent-first).
type PushNotification struct {
	Notification domain.Notification `json:"notification"`
}

// MarkNotificationRead flips one entry's read flag to true. Idempotent.
type MarkNotificationRead struct {
	ID string `json:"id"`
}

// ClearNotifications empties the feed.
type ClearNotifications struct{}

// --- listing view state ---

// SetSearchQuery replaces the free-text product search query.
type SetSearchQuery struct {
	Query string `json:"query"`
}

// SetFilterCategory selects a catalog category, or domain.CategoryAll to
// lift the restriction.
type SetFilterCategory struct {
	Category string `json:"category"`
}

// SetPriceRange replaces the inclusive [min, max] price filter.
type SetPriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// SetInStockOnly toggles hiding of out-of-stock products.
type SetInStockOnly struct {
	InStockOnly bool `json:"in_stock_only"`
}

// SetSortBy selects the price sort order for the listing view.
type SetSortBy struct {
	SortBy domain.SortBy `json:"sort_by"`
}

// ResetFilters restores the default filter state and clears the search
// query.
type ResetFilters struct{}

func (SignIn) Name() string                  { return "session.sign_in" }
func (SignOut) Name() string                 { return "session.sign_out" }
func (LoadCatalog) Name() string             { return "catalog.load" }
func (AddItem) Name() string                 { return "cart.add_item" }
func (RemoveItem) Name() string              { return "cart.remove_item" }
func (SetQuantity) Name() string             { return "cart.set_quantity" }
func (ClearCart) Name() string               { return "cart.clear" }
func (ToggleFavorite) Name() string          { return "favorites.toggle" }
func (AddAddress) Name() string              { return "addresses.add" }
func (UpdateAddress) Name() string           { return "addresses.update" }
func (RemoveAddress) Name() string           { return "addresses.remove" }
func (SetDefaultAddress) Name() string       { return "addresses.set_default" }
func (AddPaymentMethod) Name() string        { return "payments.add" }
func (UpdatePaymentMethod) Name() string     { return "payments.update" }
func (RemovePaymentMethod) Name() string     { return "payments.remove" }
func (SetDefaultPaymentMethod) Name() string { return "payments.set_default" }
func (PlaceOrder) Name() string              { return "orders.place" }
func (UpdateOrderStatus) Name() string       { return "orders.update_status" }
func (PushNotification) Name() string        { return "notifications.push" }
func (MarkNotificationRead) Name() string    { return "notifications.mark_read" }
func (ClearNotifications) Name() string      { return "notifications.clear" }
func (SetSearchQuery) Name() string          { return "filter.set_query" }
func (SetFilterCategory) Name() string       { return "filter.set_category" }
func (SetPriceRange) Name() string           { return "filter.set_price_range" }
func (SetInStockOnly) Name() string          { return "filter.set_in_stock_only" }
func (SetSortBy) Name() string               { return "filter.set_sort" }
func (ResetFilters) Name() string            { return "filter.reset" }

func (SignIn) isAction()                  {}
func (SignOut) isAction()                 {}
func (LoadCatalog) isAction()             {}
func (AddItem) isAction()                 {}
func (RemoveItem) isAction()              {}
func (SetQuantity) isAction()             {}
func (ClearCart) isAction()               {}
func (ToggleFavorite) isAction()          {}
func (AddAddress) isAction()              {}
func (UpdateAddress) isAction()           {}
func (RemoveAddress) isAction()           {}
func (SetDefaultAddress) isAction()       {}
func (AddPaymentMethod) isAction()        {}
func (UpdatePaymentMethod) isAction()     {}
func (RemovePaymentMethod) isAction()     {}
func (SetDefaultPaymentMethod) isAction() {}
func (PlaceOrder) isAction()              {}
func (UpdateOrderStatus) isAction()       {}
func (PushNotification) isAction()        {}
func (MarkNotificationRead) isAction()    {}
func (ClearNotifications) isAction()      {}
func (SetSearchQuery) isAction()          {}
func (SetFilterCategory) isAction()       {}
func (SetPriceRange) isAction()           {}
func (SetInStockOnly) isAction()          {}
func (SetSortBy) isAction()               {}
func (ResetFilters) isAction()            {}

// RequiresAuth reports whether an action mutates per-user state and is
// therefore gated on an authenticated session. Catalog loads, session
// transitions, and listing view state are exempt - they exist (or survive)
// outside a session.
func RequiresAuth(a Action) bool {
	switch a.(type) {
	case SignIn, SignOut, LoadCatalog,
		SetSearchQuery, SetFilterCategory, SetPriceRange, SetInStockOnly, SetSortBy, ResetFilters:
		return false
	}
	return true
}
