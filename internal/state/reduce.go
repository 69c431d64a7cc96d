package state

import (
	"slices"

	"github.com/tessaro/storefront/internal/action"
	"github.com/tessaro/storefront/internal/domain"
)

// Reduce applies one action to the state tree and returns the next state.
// Pure: the prior state is never mutated, so callers may keep snapshots.
//
// The switch is exhaustive over the sealed action union. An action this
// package has never heard of returns the prior state, which can only happen
// across a version skew between the codec and the reducer.
func Reduce(s State, a action.Action) State {
	if action.RequiresAuth(a) && !s.Session.Authenticated {
		return s
	}

	switch act := a.(type) {
	case action.SignIn:
		s = s.resetPerUser()
		s.Session = Session{Authenticated: true, UserID: act.UserID}
		return s

	case action.SignOut:
		s = s.resetPerUser()
		s.Session = Session{}
		return s

	case action.LoadCatalog:
		s.Catalog = slices.Clone(act.Products)
		return s

	case action.AddItem:
		s.Cart = s.Cart.Add(act.Product)
		return s

	case action.RemoveItem:
		s.Cart = s.Cart.Remove(act.ProductID)
		return s

	case action.SetQuantity:
		s.Cart = s.Cart.SetQuantity(act.ProductID, act.Quantity)
		return s

	case action.ClearCart:
		s.Cart = s.Cart.Clear()
		return s

	case action.ToggleFavorite:
		s.Favorites = s.Favorites.Toggle(act.Product)
		return s

	case action.AddAddress:
		s.Addresses = s.Addresses.Add(act.Address)
		return s

	case action.UpdateAddress:
		s.Addresses = s.Addresses.Update(act.Address)
		return s

	case action.RemoveAddress:
		s.Addresses = s.Addresses.Remove(act.ID)
		return s

	case action.SetDefaultAddress:
		s.Addresses = s.Addresses.SetDefault(act.ID)
		return s

	case action.AddPaymentMethod:
		s.Payments = s.Payments.Add(act.Method)
		return s

	case action.UpdatePaymentMethod:
		s.Payments = s.Payments.Update(act.Method)
		return s

	case action.RemovePaymentMethod:
		s.Payments = s.Payments.Remove(act.ID)
		return s

	case action.SetDefaultPaymentMethod:
		s.Payments = s.Payments.SetDefault(act.ID)
		return s

	case action.PlaceOrder:
		return placeOrder(s, act)

	case action.UpdateOrderStatus:
		return updateOrderStatus(s, act)

	case action.PushNotification:
		s.Notifications = prependNotification(s.Notifications, act.Notification)
		return s

	case action.MarkNotificationRead:
		return markNotificationRead(s, act.ID)

	case action.ClearNotifications:
		s.Notifications = nil
		return s

	case action.SetSearchQuery:
		s.SearchQuery = act.Query
		return s

	case action.SetFilterCategory:
		s.Filter.Category = act.Category
		return s

	case action.SetPriceRange:
		s.Filter.MinPrice, s.Filter.MaxPrice = act.Min, act.Max
		return s

	case action.SetInStockOnly:
		s.Filter.InStockOnly = act.InStockOnly
		return s

	case action.SetSortBy:
		s.Filter.SortBy = act.SortBy
		return s

	case action.ResetFilters:
		s.Filter = domain.DefaultFilter()
		s.SearchQuery = ""
		return s
	}

	return s
}

// placeOrder snapshots the cart, ships to the chosen (or default) address,
// pays with the chosen (or default) method, prepends the order with status
// processing, pushes an order-placed feed entry, and clears the cart - one
// transition, so no reader observes the order without the cleared cart.
//
// No-op when the cart is empty or no address/payment method resolves: there
// is nothing coherent to snapshot.
func placeOrder(s State, act action.PlaceOrder) State {
	if len(s.Cart.Items) == 0 {
		return s
	}

	shipTo, ok := resolveAddress(s.Addresses, act.AddressID)
	if !ok {
		return s
	}
	paidWith, ok := resolvePayment(s.Payments, act.PaymentID)
	if !ok {
		return s
	}

	order := domain.Order{
		ID:       act.OrderID,
		Items:    slices.Clone(s.Cart.Items),
		Total:    s.Cart.Total,
		Status:   domain.StatusProcessing,
		PlacedAt: act.PlacedAt,
		ShipTo:   shipTo,
		PaidWith: paidWith,
	}

	s.Orders = append([]domain.Order{order}, s.Orders...)
	s.Notifications = prependNotification(s.Notifications, domain.Notification{
		ID:        act.NotificationID,
		Title:     "Order placed",
		Message:   "Your order is being processed.",
		Category:  "order",
		CreatedAt: act.PlacedAt,
		OrderID:   order.ID,
		Action:    domain.NotifyActionViewOrder,
	})
	s.Cart = s.Cart.Clear()
	return s
}

func resolveAddress(book domain.AddressBook, id string) (domain.Address, bool) {
	if id != "" {
		return book.Find(id)
	}
	return book.Default()
}

func resolvePayment(book domain.PaymentBook, id string) (domain.PaymentMethod, bool) {
	if id != "" {
		return book.Find(id)
	}
	return book.Default()
}

// updateOrderStatus applies a fulfillment transition. Unknown orders and
// illegal transitions are no-ops; the order journal stays append-only and
// orders stay immutable apart from their lifecycle fields.
func updateOrderStatus(s State, act action.UpdateOrderStatus) State {
	idx := -1
	for i, o := range s.Orders {
		if o.ID == act.OrderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	order := s.Orders[idx]
	if !order.Status.CanTransition(act.Status) {
		return s
	}

	order.Status = act.Status
	if act.Tracking != "" {
		order.Tracking = act.Tracking
	}
	if act.Notes != "" {
		order.Notes = act.Notes
	}
	if act.Status == domain.StatusDelivered {
		at := act.At
		order.DeliveredAt = &at
	}

	orders := slices.Clone(s.Orders)
	orders[idx] = order
	s.Orders = orders
	return s
}

func markNotificationRead(s State, id string) State {
	idx := -1
	for i, n := range s.Notifications {
		if n.ID == id && !n.Read {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s // absent or already read: idempotent no-op
	}
	notifications := slices.Clone(s.Notifications)
	notifications[idx].Read = true
	s.Notifications = notifications
	return s
}

func prependNotification(feed []domain.Notification, n domain.Notification) []domain.Notification {
	return append([]domain.Notification{n}, feed...)
}
