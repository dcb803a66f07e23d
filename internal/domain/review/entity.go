// internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidItemID  = errors.New("review: invalid itemId")
	ErrInvalidBuyerID = errors.New("review: invalid buyerId")
	ErrInvalidRating  = errors.New("review: rating must be in [1,5]")
	ErrInvalidReply   = errors.New("review: empty reply")
	ErrNotFound       = errors.New("review: not found")
)

// Review is an append-only buyer review with an optional single seller reply.
type Review struct {
	ID      string `json:"id" firestore:"id"`
	ItemID  string `json:"itemId" firestore:"itemId"`
	BuyerID string `json:"buyerId" firestore:"buyerId"`

	Rating  int    `json:"rating" firestore:"rating"`
	Comment string `json:"comment" firestore:"comment"`

	SellerReply string `json:"sellerReply,omitempty" firestore:"sellerReply"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	RepliedAt time.Time `json:"repliedAt,omitempty" firestore:"repliedAt"`
}

func New(id, itemID, buyerID string, rating int, comment string, now time.Time) (Review, error) {
	r := Review{
		ID:        strings.TrimSpace(id),
		ItemID:    strings.TrimSpace(itemID),
		BuyerID:   strings.TrimSpace(buyerID),
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now.UTC(),
	}
	if r.ItemID == "" {
		return Review{}, ErrInvalidItemID
	}
	if r.BuyerID == "" {
		return Review{}, ErrInvalidBuyerID
	}
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	return r, nil
}

// SetReply records the seller's single reply. Ownership of the reviewed
// item is checked by the usecase.
func (r *Review) SetReply(reply string, now time.Time) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ErrInvalidReply
	}
	r.SellerReply = reply
	r.RepliedAt = now.UTC()
	return nil
}

// AverageRating computes the aggregate score for an item's reviews,
// rounded to one decimal. Zero reviews yield 0.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return float64(int(avg*10+0.5)) / 10
}
