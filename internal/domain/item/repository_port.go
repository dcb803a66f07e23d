// internal/domain/item/repository_port.go
package item

import "context"

// Repository is a persistence port for the catalog.
//
// Storage (Firestore):
// - collection: items
// - docId: storage-assigned id, duplicated into the "id" field
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*Item, error)

	// GetByIDs resolves a batch of ids. Missing ids are simply absent from
	// the result map; a dangling reference is the caller's concern.
	GetByIDs(ctx context.Context, ids []string) (map[string]Item, error)

	// ListAll returns the full catalog (the storefront grid reads everything
	// and filters client-side of the store).
	ListAll(ctx context.Context) ([]Item, error)

	// ListBySeller returns items owned by sellerID.
	ListBySeller(ctx context.Context, sellerID string) ([]Item, error)

	// Create persists a new item under a storage-assigned docId and returns
	// the stored item (with ID filled in).
	Create(ctx context.Context, sellerID string, attrs Attrs) (*Item, error)

	// Update overwrites the full item doc.
	Update(ctx context.Context, it *Item) error

	// Delete removes the item. Orders and membership lists referencing the
	// id are NOT cleaned up; they resolve to "unavailable" on materialize.
	Delete(ctx context.Context, id string) error
}
