// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "storefront/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: storage-assigned id
// - fields: id, buyerId, sellerId, items([]string), status, createdAt, updatedAt
//
// Creation happens only inside the checkout transaction
// (CheckoutRepositoryFS); this repository reads and updates status.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("order_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	o := orderFromSnapshot(snap)
	return &o, nil
}

// ListByBuyer returns the buyer's order history, newest first.
func (r *OrderRepositoryFS) ListByBuyer(ctx context.Context, buyerID string) ([]orderdom.Order, error) {
	return r.listBy(ctx, "buyerId", buyerID)
}

// ListBySeller returns the seller's incoming orders, newest first.
func (r *OrderRepositoryFS) ListBySeller(ctx context.Context, sellerID string) ([]orderdom.Order, error) {
	return r.listBy(ctx, "sellerId", sellerID)
}

// UpdateStatus persists a transition already validated by the domain.
func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, st orderdom.Status, updatedAt time.Time) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("order_repository_fs: id is empty")
	}
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(st)},
		{Path: "updatedAt", Value: updatedAt.UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return orderdom.ErrNotFound
	}
	return err
}

func (r *OrderRepositoryFS) listBy(ctx context.Context, field, value string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("order_repository_fs: " + field + " is empty")
	}

	// No OrderBy: a Where+OrderBy pair needs a composite index, and the
	// per-user result set is small. Sort in memory instead.
	iter := r.col().Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var out []orderdom.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, orderFromSnapshot(snap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type orderDoc struct {
	ID       string   `firestore:"id"`
	BuyerID  string   `firestore:"buyerId"`
	SellerID string   `firestore:"sellerId"`
	Items    []string `firestore:"items"`
	Status   string   `firestore:"status"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func orderDocFromDomain(o orderdom.Order) orderDoc {
	return orderDoc{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		Items:     o.ItemIDs,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func orderFromSnapshot(snap *firestore.DocumentSnapshot) orderdom.Order {
	raw := snap.Data()
	if raw == nil {
		raw = map[string]any{}
	}

	o := orderdom.Order{
		ID:       snap.Ref.ID,
		BuyerID:  strings.TrimSpace(asString(raw["buyerId"])),
		SellerID: strings.TrimSpace(asString(raw["sellerId"])),
		ItemIDs:  asStringSlice(raw["items"]),
	}
	if st, err := orderdom.ParseStatus(asString(raw["status"])); err == nil {
		o.Status = st
	} else {
		// unreadable status degrades to the initial state instead of 500
		o.Status = orderdom.StatusPending
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		o.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		o.UpdatedAt = t
	}
	return o
}
