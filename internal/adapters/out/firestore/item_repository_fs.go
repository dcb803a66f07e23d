// internal/adapters/out/firestore/item_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	itemdom "storefront/internal/domain/item"
)

// ItemRepositoryFS implements item.Repository using Firestore.
//
// Collection design:
// - collection: items
// - docId: storage-assigned id (docId is the source of truth, duplicated
//   into the "id" field for convenience)
type ItemRepositoryFS struct {
	Client *firestore.Client
}

func NewItemRepositoryFS(client *firestore.Client) *ItemRepositoryFS {
	return &ItemRepositoryFS{Client: client}
}

func (r *ItemRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("items")
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *ItemRepositoryFS) GetByID(ctx context.Context, id string) (*itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("item_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	it := itemFromSnapshot(snap)
	return &it, nil
}

// GetByIDs resolves a batch of ids; missing ids are absent from the map.
func (r *ItemRepositoryFS) GetByIDs(ctx context.Context, ids []string) (map[string]itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		refs = append(refs, r.col().Doc(id))
	}
	if len(refs) == 0 {
		return map[string]itemdom.Item{}, nil
	}

	snaps, err := r.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]itemdom.Item, len(snaps))
	for _, snap := range snaps {
		if snap == nil || !snap.Exists() {
			continue
		}
		it := itemFromSnapshot(snap)
		out[it.ID] = it
	}
	return out, nil
}

// ListAll returns the full catalog.
func (r *ItemRepositoryFS) ListAll(ctx context.Context) ([]itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}
	return r.list(ctx, r.col().Query)
}

// ListBySeller returns items owned by sellerID.
func (r *ItemRepositoryFS) ListBySeller(ctx context.Context, sellerID string) ([]itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, errors.New("item_repository_fs: sellerID is empty")
	}
	return r.list(ctx, r.col().Where("sellerId", "==", sellerID))
}

// Create persists a new item under a fresh docId.
func (r *ItemRepositoryFS) Create(ctx context.Context, sellerID string, attrs itemdom.Attrs) (*itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}

	ref := r.col().NewDoc()
	it, err := itemdom.New(ref.ID, sellerID, attrs, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if _, err := ref.Set(ctx, itemDocFromDomain(it)); err != nil {
		return nil, err
	}
	return &it, nil
}

// Update overwrites the full doc (simple & predictable).
func (r *ItemRepositoryFS) Update(ctx context.Context, it *itemdom.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("item_repository_fs: firestore client is nil")
	}
	if it == nil || strings.TrimSpace(it.ID) == "" {
		return errors.New("item_repository_fs: Update requires item.ID as docId")
	}
	_, err := r.col().Doc(it.ID).Set(ctx, itemDocFromDomain(*it))
	return err
}

// Delete removes the doc. References elsewhere are left dangling on purpose.
func (r *ItemRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("item_repository_fs: firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("item_repository_fs: id is empty")
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func (r *ItemRepositoryFS) list(ctx context.Context, q firestore.Query) ([]itemdom.Item, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []itemdom.Item
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, itemFromSnapshot(snap))
	}
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type itemDoc struct {
	ID       string `firestore:"id"`
	SellerID string `firestore:"sellerId"`

	Title    string `firestore:"title"`
	Brand    string `firestore:"brand"`
	Speed    string `firestore:"speed"`
	Capacity string `firestore:"capacity"`

	Price         float64 `firestore:"price"`
	Discount      float64 `firestore:"discount"`
	StockQuantity int     `firestore:"stockQuantity"`

	Images []string `firestore:"images"`

	Rating float64 `firestore:"rating"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func itemDocFromDomain(it itemdom.Item) itemDoc {
	return itemDoc{
		ID:            it.ID,
		SellerID:      it.SellerID,
		Title:         it.Title,
		Brand:         it.Brand,
		Speed:         it.Speed,
		Capacity:      it.Capacity,
		Price:         it.Price,
		Discount:      it.Discount,
		StockQuantity: it.StockQuantity,
		Images:        it.Images,
		Rating:        it.Rating,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

// itemFromSnapshot parses doc data loosely so a numeric field written as
// int64 by a backfill script does not break DataTo decoding.
func itemFromSnapshot(snap *firestore.DocumentSnapshot) itemdom.Item {
	raw := snap.Data()
	if raw == nil {
		raw = map[string]any{}
	}

	it := itemdom.Item{
		// docId is the source of truth
		ID:            snap.Ref.ID,
		SellerID:      strings.TrimSpace(asString(raw["sellerId"])),
		Title:         strings.TrimSpace(asString(raw["title"])),
		Brand:         strings.TrimSpace(asString(raw["brand"])),
		Speed:         strings.TrimSpace(asString(raw["speed"])),
		Capacity:      strings.TrimSpace(asString(raw["capacity"])),
		Price:         asFloat(raw["price"]),
		Discount:      asFloat(raw["discount"]),
		StockQuantity: asInt(raw["stockQuantity"]),
		Images:        asStringSlice(raw["images"]),
		Rating:        asFloat(raw["rating"]),
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		it.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		it.UpdatedAt = t
	}
	return it
}
