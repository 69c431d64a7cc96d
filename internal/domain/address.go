package domain

import "slices"

// Address is a saved shipping address.
type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Region    string `json:"region,omitempty"`
	Postal    string `json:"postal"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// AddressBook is the ordered collection of a user's saved addresses.
//
// INVARIANT: at most one entry has IsDefault = true. An empty book has none;
// a non-empty book always has exactly one (the first Add becomes the default,
// and removing the default promotes the first remaining entry).
type AddressBook struct {
	Entries []Address `json:"entries"`
}

// Add returns the book with the address appended. The first entry in an
// empty book implicitly becomes the default.
func (b AddressBook) Add(a Address) AddressBook {
	if len(b.Entries) == 0 {
		a.IsDefault = true
	}
	if a.IsDefault {
		return AddressBook{Entries: append(clearAddressDefaults(b.Entries), a)}
	}
	return AddressBook{Entries: append(slices.Clone(b.Entries), a)}
}

// Update returns the book with the entry of the same ID replaced. The
// default flag is carried over from the existing entry: changing which entry
// is default goes through SetDefault, not Update. Updating an unknown ID is
// a no-op.
func (b AddressBook) Update(a Address) AddressBook {
	entries := slices.Clone(b.Entries)
	for i := range entries {
		if entries[i].ID == a.ID {
			a.IsDefault = entries[i].IsDefault
			entries[i] = a
			return AddressBook{Entries: entries}
		}
	}
	return b
}

// Remove returns the book without the entry. Removing the current default
// promotes the first remaining entry so a non-empty book never ends up
// without one. Removing an unknown ID is a no-op.
func (b AddressBook) Remove(id string) AddressBook {
	entries := make([]Address, 0, len(b.Entries))
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
	return AddressBook{Entries: entries}
}

// SetDefault returns the book with exactly the given entry marked default
// and every other entry cleared, in one transition. Unknown IDs are a no-op
// so the invariant cannot be broken by a stale reference.
func (b AddressBook) SetDefault(id string) AddressBook {
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
	return AddressBook{Entries: entries}
}

// Default returns the default address and whether one exists.
func (b AddressBook) Default() (Address, bool) {
	for _, e := range b.Entries {
		if e.IsDefault {
			return e, true
		}
	}
	return Address{}, false
}

// Find returns the entry with the given ID and whether it exists.
func (b AddressBook) Find(id string) (Address, bool) {
	for _, e := range b.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Address{}, false
}

func clearAddressDefaults(entries []Address) []Address {
	cleared := slices.Clone(entries)
	for i := range cleared {
		cleared[i].IsDefault = false
	}
	return cleared
}
