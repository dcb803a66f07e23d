// internal/adapters/out/firestore/review_repository_fs.go
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

	reviewdom "storefront/internal/domain/review"
)

// ReviewRepositoryFS implements review.Repository using Firestore.
//
// Collection design:
// - collection: reviews
// - docId: storage-assigned id
type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

func (r *ReviewRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("reviews")
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *ReviewRepositoryFS) GetByID(ctx context.Context, id string) (*reviewdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("review_repository_fs: firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("review_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	rv := reviewFromSnapshot(snap)
	return &rv, nil
}

// ListByItem returns an item's reviews, oldest first.
func (r *ReviewRepositoryFS) ListByItem(ctx context.Context, itemID string) ([]reviewdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("review_repository_fs: firestore client is nil")
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, errors.New("review_repository_fs: itemID is empty")
	}

	iter := r.col().Where("itemId", "==", itemID).Documents(ctx)
	defer iter.Stop()

	var out []reviewdom.Review
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, reviewFromSnapshot(snap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Create persists a new review under a fresh docId.
func (r *ReviewRepositoryFS) Create(ctx context.Context, rv reviewdom.Review) (*reviewdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("review_repository_fs: firestore client is nil")
	}

	ref := r.col().NewDoc()
	rv.ID = ref.ID
	if _, err := ref.Set(ctx, reviewDocFromDomain(rv)); err != nil {
		return nil, err
	}
	return &rv, nil
}

// SetReply updates the reply fields only.
func (r *ReviewRepositoryFS) SetReply(ctx context.Context, rv *reviewdom.Review) error {
	if r == nil || r.Client == nil {
		return errors.New("review_repository_fs: firestore client is nil")
	}
	if rv == nil || strings.TrimSpace(rv.ID) == "" {
		return errors.New("review_repository_fs: SetReply requires review.ID as docId")
	}
	_, err := r.col().Doc(rv.ID).Update(ctx, []firestore.Update{
		{Path: "sellerReply", Value: rv.SellerReply},
		{Path: "repliedAt", Value: rv.RepliedAt},
	})
	if status.Code(err) == codes.NotFound {
		return reviewdom.ErrNotFound
	}
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type reviewDoc struct {
	ID      string `firestore:"id"`
	ItemID  string `firestore:"itemId"`
	BuyerID string `firestore:"buyerId"`

	Rating      int    `firestore:"rating"`
	Comment     string `firestore:"comment"`
	SellerReply string `firestore:"sellerReply"`

	CreatedAt time.Time `firestore:"createdAt"`
	RepliedAt time.Time `firestore:"repliedAt"`
}

func reviewDocFromDomain(rv reviewdom.Review) reviewDoc {
	return reviewDoc{
		ID:          rv.ID,
		ItemID:      rv.ItemID,
		BuyerID:     rv.BuyerID,
		Rating:      rv.Rating,
		Comment:     rv.Comment,
		SellerReply: rv.SellerReply,
		CreatedAt:   rv.CreatedAt,
		RepliedAt:   rv.RepliedAt,
	}
}

func reviewFromSnapshot(snap *firestore.DocumentSnapshot) reviewdom.Review {
	raw := snap.Data()
	if raw == nil {
		raw = map[string]any{}
	}

	rv := reviewdom.Review{
		ID:          snap.Ref.ID,
		ItemID:      strings.TrimSpace(asString(raw["itemId"])),
		BuyerID:     strings.TrimSpace(asString(raw["buyerId"])),
		Rating:      asInt(raw["rating"]),
		Comment:     asString(raw["comment"]),
		SellerReply: asString(raw["sellerReply"]),
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		rv.CreatedAt = t
	}
	if t, ok := asTime(raw["repliedAt"]); ok {
		rv.RepliedAt = t
	}
	return rv
}
