package harness

import (
	"fmt"
	"strings"
)

// EvaluateAssertions checks every assertion against the result and returns
// one message per failure. An empty slice means all assertions held.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if msg := evaluate(result, &a); msg != "" {
			failures = append(failures, fmt.Sprintf("assertions[%d] (%s): %s", i, a.Type, msg))
		}
	}
	return failures
}

func evaluate(result *Result, a *Assertion) string {
	st := result.Final

	switch a.Type {
	case AssertSession:
		if a.Authenticated != nil && st.Session.Authenticated != *a.Authenticated {
			return fmt.Sprintf("authenticated = %v, want %v", st.Session.Authenticated, *a.Authenticated)
		}
		if a.UserID != "" && st.Session.UserID != a.UserID {
			return fmt.Sprintf("user_id = %q, want %q", st.Session.UserID, a.UserID)
		}

	case AssertCart:
		if a.Items != nil && st.Cart.ItemCount != *a.Items {
			return fmt.Sprintf("cart items = %d, want %d", st.Cart.ItemCount, *a.Items)
		}
		if a.Total != nil && st.Cart.Total != *a.Total {
			return fmt.Sprintf("cart total = %d, want %d", st.Cart.Total, *a.Total)
		}

	case AssertFavorites:
		if got := st.Favorites.Len(); got != *a.Count {
			return fmt.Sprintf("favorites = %d, want %d", got, *a.Count)
		}

	case AssertOrders:
		if got := len(st.Orders); got != *a.Count {
			return fmt.Sprintf("orders = %d, want %d", got, *a.Count)
		}

	case AssertUnread:
		if got := st.UnreadCount(); got != *a.Count {
			return fmt.Sprintf("unread = %d, want %d", got, *a.Count)
		}

	case AssertOrderStatus:
		order, ok := st.FindOrder(a.OrderID)
		if !ok {
			return fmt.Sprintf("order %q not found", a.OrderID)
		}
		if string(order.Status) != a.Status {
			return fmt.Sprintf("order %q status = %q, want %q", a.OrderID, order.Status, a.Status)
		}

	case AssertDefaultAddress:
		def, ok := st.Addresses.Default()
		if !ok {
			return "no default address"
		}
		if def.ID != a.ID {
			return fmt.Sprintf("default address = %q, want %q", def.ID, a.ID)
		}

	case AssertDefaultPayment:
		def, ok := st.Payments.Default()
		if !ok {
			return "no default payment method"
		}
		if def.ID != a.ID {
			return fmt.Sprintf("default payment method = %q, want %q", def.ID, a.ID)
		}

	case AssertJournalCount:
		count := 0
		for _, ev := range result.Trace {
			if ev.Name == a.Action {
				count++
			}
		}
		if count != *a.Count {
			return fmt.Sprintf("journal has %d %s record(s), want %d", count, a.Action, *a.Count)
		}

	case AssertJournalOrder:
		if msg := checkOrder(result.Trace, a.Actions); msg != "" {
			return msg
		}
	}

	return ""
}

// checkOrder verifies the named actions appear in the trace in the given
// order. The trace may contain other records in between (subsequence match).
func checkOrder(trace []TraceEvent, actions []string) string {
	next := 0
	for _, ev := range trace {
		if next < len(actions) && ev.Name == actions[next] {
			next++
		}
	}
	if next != len(actions) {
		return fmt.Sprintf("journal order mismatch: matched %d of [%s], stuck at %q",
			next, strings.Join(actions, ", "), actions[next])
	}
	return ""
}
