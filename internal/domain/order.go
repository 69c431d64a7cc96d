package domain

import "time"

// OrderStatus is the fulfillment lifecycle state of an order.
type OrderStatus string

const (
	// StatusProcessing is the initial state of every placed order.
	StatusProcessing OrderStatus = "processing"
	// StatusConfirmed means the seller has accepted the order.
	StatusConfirmed OrderStatus = "confirmed"
	// StatusShipped means the order is out for delivery.
	StatusShipped OrderStatus = "shipped"
	// StatusDelivered is terminal: the buyer received the order.
	StatusDelivered OrderStatus = "delivered"
	// StatusCancelled is terminal and reachable from any non-terminal state.
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is legal:
// processing -> confirmed -> shipped -> delivered, with cancelled reachable
// from any non-terminal state. Fulfillment collaborators can pre-check a
// transition before dispatching it.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusProcessing:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// Order is one entry in the order journal: a snapshot of the cart, the
// chosen address, and the chosen payment method at checkout time. The
// address and payment method are frozen copies, immune to later edits of
// the books. Orders are immutable once created except for Status, which is
// driven by an external fulfillment process.
type Order struct {
	ID          string        `json:"id"`
	Items       []LineItem    `json:"items"`
	Total       int64         `json:"total"`
	Status      OrderStatus   `json:"status"`
	PlacedAt    time.Time     `json:"placed_at"`
	DeliveredAt *time.Time    `json:"delivered_at,omitempty"`
	Tracking    string        `json:"tracking,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	ShipTo      Address       `json:"ship_to"`
	PaidWith    PaymentMethod `json:"paid_with"`
}
