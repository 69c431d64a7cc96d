// Package domain defines the commerce entities shared by the reducer, the
// journal, and the CLI: products, cart line items, address and payment books,
// orders, notifications, and the listing filter state.
//
// All prices are integer minor currency units (e.g. cents, or whole LKR for
// currencies with no subdivision). Floats never appear in the domain - they
// break deterministic totals and replay.
//
// Entities are plain value types. Collection types (Cart, AddressBook,
// PaymentBook, Favorites) expose pure operations that return a modified copy
// and leave the receiver untouched, so the reducer can hand out snapshots of
// prior state without copying at every call site.
package domain
