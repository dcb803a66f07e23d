// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain/item"
	"storefront/internal/domain/review"
	"storefront/internal/domain/user"
)

// ReviewUsecase appends buyer reviews and lets the owning seller reply.
// Each accepted review recomputes the item's aggregate rating.
type ReviewUsecase struct {
	reviews review.Repository
	items   item.Repository
	users   user.Repository
	clock   Clock
}

func NewReviewUsecase(reviews review.Repository, items item.Repository, users user.Repository, clock Clock) *ReviewUsecase {
	if clock == nil {
		clock = SystemClock()
	}
	return &ReviewUsecase{reviews: reviews, items: items, users: users, clock: clock}
}

// Submit appends a review and refreshes the item rating. The rating write
// is best effort: a failed recompute logs but keeps the review.
func (u *ReviewUsecase) Submit(ctx context.Context, buyerID, itemID string, rating int, comment string) (*review.Review, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, ErrNotAuthenticated
	}
	it, err := u.items.GetByID(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, item.ErrNotFound
	}

	draft, err := review.New("", it.ID, buyerID, rating, comment, u.clock.Now())
	if err != nil {
		return nil, err
	}
	created, err := u.reviews.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := u.refreshRating(ctx, it); err != nil {
		log.Printf("[review] rating refresh failed: item=%s err=%v", it.ID, err)
	}
	return created, nil
}

// Reply records the seller's single reply on a review of their own item.
func (u *ReviewUsecase) Reply(ctx context.Context, sellerID, reviewID, reply string) (*review.Review, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, ErrNotAuthenticated
	}
	r, err := u.reviews.GetByID(ctx, strings.TrimSpace(reviewID))
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, review.ErrNotFound
	}

	it, err := u.items.GetByID(ctx, r.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil || it.SellerID != sellerID {
		return nil, item.ErrNotOwner
	}

	if err := r.SetReply(reply, u.clock.Now()); err != nil {
		return nil, err
	}
	if err := u.reviews.SetReply(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListByItem returns an item's reviews in append order.
func (u *ReviewUsecase) ListByItem(ctx context.Context, itemID string) ([]review.Review, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, ErrInvalidArgument
	}
	return u.reviews.ListByItem(ctx, itemID)
}

func (u *ReviewUsecase) refreshRating(ctx context.Context, it *item.Item) error {
	all, err := u.reviews.ListByItem(ctx, it.ID)
	if err != nil {
		return err
	}
	if err := it.SetRating(review.AverageRating(all), u.clock.Now()); err != nil {
		return err
	}
	return u.items.Update(ctx, it)
}
