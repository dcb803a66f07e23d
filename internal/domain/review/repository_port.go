// internal/domain/review/repository_port.go
package review

import "context"

// Repository is a persistence port for Review.
//
// Storage (Firestore):
// - collection: reviews
// - docId: storage-assigned id
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*Review, error)

	// ListByItem returns an item's reviews, oldest first (append order).
	ListByItem(ctx context.Context, itemID string) ([]Review, error)

	// Create persists a new review under a storage-assigned docId and
	// returns it with ID filled in.
	Create(ctx context.Context, r Review) (*Review, error)

	// SetReply updates the sellerReply/repliedAt fields only.
	SetReply(ctx context.Context, r *Review) error
}
