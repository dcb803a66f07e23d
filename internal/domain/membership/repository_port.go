// internal/domain/membership/repository_port.go
package membership

import "context"

// Repository is a persistence port for the per-user membership lists.
//
// Storage (Firestore):
// - collection: users
// - docId: userId
// - fields: cart([]string, ordered, duplicates allowed), wishlist([]string),
//   compare([]string)
//
// Concurrency policy:
// - Mutate runs read-modify-write inside a transaction, so two rapid cart
//   mutations serialize instead of losing an update.
// - AddUnique/RemoveValue map to the store's atomic array-union/array-remove
//   primitives and never race.
type Repository interface {
	// Get returns the raw id array for the list; a missing user doc or
	// missing field reads as an empty list.
	Get(ctx context.Context, userID string, list List) ([]string, error)

	// Mutate applies fn to the current array transactionally and persists
	// the result. fn returning an error aborts without writing.
	Mutate(ctx context.Context, userID string, list List, fn func(ids []string) ([]string, error)) ([]string, error)

	// AddUnique appends itemID if absent (atomic array-union).
	AddUnique(ctx context.Context, userID string, list List, itemID string) error

	// RemoveValue removes every occurrence of itemID (atomic array-remove).
	RemoveValue(ctx context.Context, userID string, list List, itemID string) error

	// Clear resets the list to empty.
	Clear(ctx context.Context, userID string, list List) error
}
