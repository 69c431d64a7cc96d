// Package state holds the storefront state tree and the pure reducer that
// advances it.
//
// The reducer is a total function: every action returns a next state
// immediately, with no I/O, no clock reads, and no randomness inside the
// transition. Invalid mutations (removing an absent cart line, re-marking a
// read notification, illegal order status moves) are no-ops rather than
// errors; the one hard precondition is the session gate, which returns the
// prior state untouched for any per-user action while unauthenticated.
package state

import (
	"github.com/tessaro/storefront/internal/domain"
)

// Session is the authentication gate over all per-user state.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
}

// State is the single in-memory state tree. It has exactly one writer (the
// reducer) and any number of readers; readers always observe a complete
// transition, never an intermediate.
//
// Per-user fields (Cart through Notifications) are created empty on sign-in
// and discarded wholesale on sign-out. Catalog, SearchQuery, and Filter
// survive the session.
type State struct {
	Session       Session               `json:"session"`
	Catalog       []domain.Product      `json:"catalog"`
	Cart          domain.Cart           `json:"cart"`
	Favorites     domain.Favorites      `json:"favorites"`
	Addresses     domain.AddressBook    `json:"addresses"`
	Payments      domain.PaymentBook    `json:"payments"`
	Orders        []domain.Order        `json:"orders"`        // most-recent-first
	Notifications []domain.Notification `json:"notifications"` // most-recent-first
	SearchQuery   string                `json:"search_query"`
	Filter        domain.FilterState    `json:"filter"`
}

// New returns the initial state: signed out, empty catalog, default filter.
func New() State {
	return State{Filter: domain.DefaultFilter()}
}

// UnreadCount derives the number of unread notifications. Never stored.
func (s State) UnreadCount() int {
	n := 0
	for _, ntf := range s.Notifications {
		if !ntf.Read {
			n++
		}
	}
	return n
}

// FindOrder returns the order with the given ID and whether it exists.
func (s State) FindOrder(id string) (domain.Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// resetPerUser discards everything owned by the session, keeping the
// catalog and view preferences.
func (s State) resetPerUser() State {
	s.Cart = domain.Cart{}
	s.Favorites = domain.Favorites{}
	s.Addresses = domain.AddressBook{}
	s.Payments = domain.PaymentBook{}
	s.Orders = nil
	s.Notifications = nil
	return s
}
