package harness

import "github.com/tessaro/storefront/internal/state"

// TraceEvent is one journaled record in scenario order.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	UserKey string `json:"user_key"`
	Name    string `json:"name"`
}

// StateSnapshot is the digest of a final state tree used for assertions
// and golden comparison. Every field is always serialized so golden files
// stay structurally identical across scenarios.
type StateSnapshot struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id"`
	CatalogSize   int    `json:"catalog_size"`
	CartItems     int    `json:"cart_items"`
	CartTotal     int64  `json:"cart_total"`
	Favorites     int    `json:"favorites"`
	Addresses     int    `json:"addresses"`
	Payments      int    `json:"payments"`
	Orders        int    `json:"orders"`
	Unread        int    `json:"unread"`
}

// Snapshot digests a state tree.
func Snapshot(st state.State) StateSnapshot {
	return StateSnapshot{
		Authenticated: st.Session.Authenticated,
		UserID:        st.Session.UserID,
		CatalogSize:   len(st.Catalog),
		CartItems:     st.Cart.ItemCount,
		CartTotal:     st.Cart.Total,
		Favorites:     st.Favorites.Len(),
		Addresses:     len(st.Addresses.Entries),
		Payments:      len(st.Payments.Entries),
		Orders:        len(st.Orders),
		Unread:        st.UnreadCount(),
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace is the journaled record timeline, in sequence order.
	// Gated actions never reach the journal and do not appear here.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the state tree after the last step.
	Final state.State `json:"-"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
