package domain

import "slices"

// PaymentKind discriminates the payment method union.
type PaymentKind string

const (
	// PaymentCard is a stored card instrument.
	PaymentCard PaymentKind = "card"
	// PaymentBank is a stored bank account instrument.
	PaymentBank PaymentKind = "bank"
)

// CardDetails holds the card variant of a payment method.
type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
}

// BankDetails holds the bank-account variant of a payment method.
type BankDetails struct {
	BankName string `json:"bank_name"`
	Account  string `json:"account"`
	Holder   string `json:"holder"`
}

// PaymentMethod is a saved payment instrument: either a card or a bank
// account, discriminated by Kind. Exactly one of Card/Bank is set.
type PaymentMethod struct {
	ID        string       `json:"id"`
	Kind      PaymentKind  `json:"kind"`
	Card      *CardDetails `json:"card,omitempty"`
	Bank      *BankDetails `json:"bank,omitempty"`
	IsDefault bool         `json:"is_default"`
}

// PaymentBook holds a user's saved payment methods under the same
// single-default invariant as AddressBook.
type PaymentBook struct {
	Entries []PaymentMethod `json:"entries"`
}

// Add returns the book with the method appended; the first entry in an empty
// book becomes the default.
func (b PaymentBook) Add(m PaymentMethod) PaymentBook {
	if len(b.Entries) == 0 {
		m.IsDefault = true
	}
	if m.IsDefault {
		return PaymentBook{Entries: append(clearPaymentDefaults(b.Entries), m)}
	}
	return PaymentBook{Entries: append(slices.Clone(b.Entries), m)}
}

// Update replaces the entry with the same ID, preserving its default flag.
// Unknown IDs are a no-op.
func (b PaymentBook) Update(m PaymentMethod) PaymentBook {
	entries := slices.Clone(b.Entries)
	for i := range entries {
		if entries[i].ID == m.ID {
			m.IsDefault = entries[i].IsDefault
			entries[i] = m
			return PaymentBook{Entries: entries}
		}
	}
	return b
}

// Remove deletes the entry, promoting the first remaining entry when the
// default was removed. Unknown IDs are a no-op.
func (b PaymentBook) Remove(id string) PaymentBook {
	entries := make([]PaymentMethod, 0, len(b.Entries))
	removedDefault := false
	for _, e := range b.Entries {
		if e.ID == id {
			removedDefault = e.IsDefault
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == len(b.Entries) {
		return b
	}
	if removedDefault && len(entries) > 0 {
		entries[0].IsDefault = true
	}
	return PaymentBook{Entries: entries}
}

// SetDefault marks exactly the given entry default in one transition.
// Unknown IDs are a no-op.
func (b PaymentBook) SetDefault(id string) PaymentBook {
	found := false
	for _, e := range b.Entries {
		if e.ID == id {
			found = true
			break
		}
	}
	if !found {
		return b
	}
	entries := slices.Clone(b.Entries)
	for i := range entries {
		entries[i].IsDefault = entries[i].ID == id
	}
	return PaymentBook{Entries: entries}
}

// Default returns the default payment method and whether one exists.
func (b PaymentBook) Default() (PaymentMethod, bool) {
	for _, e := range b.Entries {
		if e.IsDefault {
			return e, true
		}
	}
	return PaymentMethod{}, false
}

// Find returns the entry with the given ID and whether it exists.
func (b PaymentBook) Find(id string) (PaymentMethod, bool) {
	for _, e := range b.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return PaymentMethod{}, false
}

func clearPaymentDefaults(entries []PaymentMethod) []PaymentMethod {
	cleared := slices.Clone(entries)
	for i := range cleared {
		cleared[i].IsDefault = false
	}
	return cleared
}
