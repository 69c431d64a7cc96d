package domain

import "time"

// NotificationAction describes what interacting with a notification should
// trigger in the consuming surface.
type NotificationAction string

const (
	// NotifyActionNone means the notification is informational only.
	NotifyActionNone NotificationAction = "none"
	// NotifyActionViewOrder opens the associated order.
	NotifyActionViewOrder NotificationAction = "view_order"
)

// Notification is one entry in the user-facing event feed.
// Read is monotonic: it only ever flips false -> true.
type Notification struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Category  string             `json:"category,omitempty"`
	Read      bool               `json:"read"`
	CreatedAt time.Time          `json:"created_at"`
	OrderID   string             `json:"order_id,omitempty"`
	Action    NotificationAction `json:"action,omitempty"`
}
