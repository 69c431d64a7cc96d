package cli

import (
	"fmt"
	"io"

	"github.com/tessaro/storefront/internal/price"
	"github.com/tessaro/storefront/internal/state"
)

// StateSummary is a compact view of the state tree for command output.
type StateSummary struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	CatalogSize   int    `json:"catalog_size"`
	CartItems     int    `json:"cart_items"`
	CartTotal     string `json:"cart_total"`
	Favorites     int    `json:"favorites"`
	Addresses     int    `json:"addresses"`
	Payments      int    `json:"payments"`
	Orders        int    `json:"orders"`
	Unread        int    `json:"unread_notifications"`
}

// summaryCurrency is the display currency for command output.
// Stored amounts are currency-agnostic minor units.
const summaryCurrency = "USD"

func summarize(st state.State) StateSummary {
	return StateSummary{
		Authenticated: st.Session.Authenticated,
		UserID:        st.Session.UserID,
		CatalogSize:   len(st.Catalog),
		CartItems:     st.Cart.ItemCount,
		CartTotal:     price.Format(st.Cart.Total, summaryCurrency),
		Favorites:     st.Favorites.Len(),
		Addresses:     len(st.Addresses.Entries),
		Payments:      len(st.Payments.Entries),
		Orders:        len(st.Orders),
		Unread:        st.UnreadCount(),
	}
}

func printSummary(w io.Writer, s StateSummary) {
	if s.Authenticated {
		fmt.Fprintf(w, "  Session:   signed in as %s\n", s.UserID)
	} else {
		fmt.Fprintln(w, "  Session:   signed out")
	}
	fmt.Fprintf(w, "  Catalog:   %d product(s)\n", s.CatalogSize)
	fmt.Fprintf(w, "  Cart:      %d item(s), %s\n", s.CartItems, s.CartTotal)
	fmt.Fprintf(w, "  Favorites: %d\n", s.Favorites)
	fmt.Fprintf(w, "  Addresses: %d, payment methods: %d\n", s.Addresses, s.Payments)
	fmt.Fprintf(w, "  Orders:    %d, unread notifications: %d\n", s.Orders, s.Unread)
}
