// internal/domain/order/repository_port.go
package order

import (
	"context"
	"time"
)

// Repository is a persistence port for Order.
//
// Storage (Firestore):
// - collection: orders
// - docId: storage-assigned id
// - fields: id, buyerId, sellerId, items([]string), status, createdAt, updatedAt
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByBuyer returns the buyer's order history, newest first.
	ListByBuyer(ctx context.Context, buyerID string) ([]Order, error)

	// ListBySeller returns the seller's incoming orders, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]Order, error)

	// UpdateStatus persists a status transition already validated by the
	// domain. createdAt/items are never touched.
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}

// CheckoutStore executes checkout atomically against the backing store:
// read the buyer's cart, partition it per seller, verify and decrement
// stock, create the order docs and clear the cart — all in one transaction,
// so a failure leaves the cart and the stock untouched.
//
// Error policy:
// - ErrEmptyCart when the cart has no entries
// - ErrItemUnavailable when a cart id no longer resolves to an item
// - ErrInsufficientStock when requested qty exceeds stockQuantity
type CheckoutStore interface {
	Checkout(ctx context.Context, buyerID string, now time.Time) ([]Order, error)
}
