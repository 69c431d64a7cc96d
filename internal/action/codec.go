package action

import (
	"encoding/json"
	"fmt"
)

// envelope is the journal wire format: a type tag plus the variant's own
// JSON payload. The tag is the action's Name(), which is stable across
// releases - renaming a Go type must not change it or old journals stop
// replaying.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Marshal serializes an action into its tagged envelope.
func Marshal(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("marshal action: nil action")
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal action %s: %w", a.Name(), err)
	}
	data, err := json.Marshal(envelope{Type: a.Name(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("marshal action %s: %w", a.Name(), err)
	}
	return data, nil
}

// Unmarshal decodes a tagged envelope back into its concrete action variant.
// Unknown type tags are an error, not a silent skip: a journal with an
// unrecognized action cannot be replayed faithfully.
func Unmarshal(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal action envelope: %w", err)
	}

	a, ok := emptyAction(env.Type)
	if !ok {
		return nil, fmt.Errorf("unmarshal action: unknown type %q", env.Type)
	}

	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, a); err != nil {
			return nil, fmt.Errorf("unmarshal action %s: %w", env.Type, err)
		}
	}
	return deref(a), nil
}

// emptyAction returns a pointer to a zero value of the variant with the
// given type tag, for json.Unmarshal to fill in.
func emptyAction(name string) (any, bool) {
	switch name {
	case SignIn{}.Name():
		return &SignIn{}, true
	case SignOut{}.Name():
		return &SignOut{}, true
	case LoadCatalog{}.Name():
		return &LoadCatalog{}, true
	case AddItem{}.Name():
		return &AddItem{}, true
	case RemoveItem{}.Name():
		return &RemoveItem{}, true
	case SetQuantity{}.Name():
		return &SetQuantity{}, true
	case ClearCart{}.Name():
		return &ClearCart{}, true
	case ToggleFavorite{}.Name():
		return &ToggleFavorite{}, true
	case AddAddress{}.Name():
		return &AddAddress{}, true
	case UpdateAddress{}.Name():
		return &UpdateAddress{}, true
	case RemoveAddress{}.Name():
		return &RemoveAddress{}, true
	case SetDefaultAddress{}.Name():
		return &SetDefaultAddress{}, true
	case AddPaymentMethod{}.Name():
		return &AddPaymentMethod{}, true
	case UpdatePaymentMethod{}.Name():
		return &UpdatePaymentMethod{}, true
	case RemovePaymentMethod{}.Name():
		return &RemovePaymentMethod{}, true
	case SetDefaultPaymentMethod{}.Name():
		return &SetDefaultPaymentMethod{}, true
	case PlaceOrder{}.Name():
		return &PlaceOrder{}, true
	case UpdateOrderStatus{}.Name():
		return &UpdateOrderStatus{}, true
	case PushNotification{}.Name():
		return &PushNotification{}, true
	case MarkNotificationRead{}.Name():
		return &MarkNotificationRead{}, true
	case ClearNotifications{}.Name():
		return &ClearNotifications{}, true
	case SetSearchQuery{}.Name():
		return &SetSearchQuery{}, true
	case SetFilterCategory{}.Name():
		return &SetFilterCategory{}, true
	case SetPriceRange{}.Name():
		return &SetPriceRange{}, true
	case SetInStockOnly{}.Name():
		return &SetInStockOnly{}, true
	case SetSortBy{}.Name():
		return &SetSortBy{}, true
	case ResetFilters{}.Name():
		return &ResetFilters{}, true
	}
	return nil, false
}

// deref turns the filled pointer back into the value variant the reducer
// switches on.
func deref(a any) Action {
	switch v := a.(type) {
	case *SignIn:
		return *v
	case *SignOut:
		return *v
	case *LoadCatalog:
		return *v
	case *AddItem:
		return *v
	case *RemoveItem:
		return *v
	case *SetQuantity:
		return *v
	case *ClearCart:
		return *v
	case *ToggleFavorite:
		return *v
	case *AddAddress:
		return *v
	case *UpdateAddress:
		return *v
	case *RemoveAddress:
		return *v
	case *SetDefaultAddress:
		return *v
	case *AddPaymentMethod:
		return *v
	case *UpdatePaymentMethod:
		return *v
	case *RemovePaymentMethod:
		return *v
	case *SetDefaultPaymentMethod:
		return *v
	case *PlaceOrder:
		return *v
	case *UpdateOrderStatus:
		return *v
	case *PushNotification:
		return *v
	case *MarkNotificationRead:
		return *v
	case *ClearNotifications:
		return *v
	case *SetSearchQuery:
		return *v
	case *SetFilterCategory:
		return *v
	case *SetPriceRange:
		return *v
	case *SetInStockOnly:
		return *v
	case *SetSortBy:
		return *v
	case *ResetFilters:
		return *v
	}
	// Unreachable: emptyAction only returns the pointer types above.
	panic(fmt.Sprintf("action: unhandled variant %T", a))
}
