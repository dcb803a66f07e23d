// internal/domain/item/entity.go
package item

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("item: not found")
	ErrNotOwner = errors.New("item: not owner")
)

// ValidationError identifies the offending field of a create/update payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item: invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Item is a purchasable catalog entry.
//   - docId = id (Firestore), also duplicated into the doc payload
//   - mutated only by its owning seller, except stock decrements at checkout
//   - Rating is derived from reviews, never edited directly by the seller
type Item struct {
	ID       string `json:"id" firestore:"id"`
	SellerID string `json:"sellerId" firestore:"sellerId"`

	Title    string `json:"title" firestore:"title"`
	Brand    string `json:"brand" firestore:"brand"`
	Speed    string `json:"speed,omitempty" firestore:"speed"`
	Capacity string `json:"capacity,omitempty" firestore:"capacity"`

	Price         float64 `json:"price" firestore:"price"`
	Discount      float64 `json:"discount" firestore:"discount"`
	StockQuantity int     `json:"stockQuantity" firestore:"stockQuantity"`

	// Images holds opaque object paths; URL resolution happens at the edge.
	Images []string `json:"images" firestore:"images"`

	Rating float64 `json:"rating" firestore:"rating"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Attrs is the seller-supplied payload for item creation.
type Attrs struct {
	Title         string
	Brand         string
	Speed         string
	Capacity      string
	Price         float64
	Discount      float64
	StockQuantity int
	Images        []string
}

// Patch represents a partial update. A nil field means "no change".
type Patch struct {
	Title         *string
	Brand         *string
	Speed         *string
	Capacity      *string
	Price         *float64
	Discount      *float64
	StockQuantity *int
	Images        *[]string
}

// New validates attrs and builds an Item. id is the storage-assigned docId.
func New(id, sellerID string, attrs Attrs, now time.Time) (Item, error) {
	it := Item{
		ID:       strings.TrimSpace(id),
		SellerID: strings.TrimSpace(sellerID),

		Title:    strings.TrimSpace(attrs.Title),
		Brand:    strings.TrimSpace(attrs.Brand),
		Speed:    strings.TrimSpace(attrs.Speed),
		Capacity: strings.TrimSpace(attrs.Capacity),

		Price:         attrs.Price,
		Discount:      attrs.Discount,
		StockQuantity: attrs.StockQuantity,

		Images: cloneImages(attrs.Images),

		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Apply merges patch fields into the item.
func (i *Item) Apply(p Patch, now time.Time) error {
	if i == nil {
		return &ValidationError{Field: "item", Reason: "nil"}
	}

	next := *i
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Brand != nil {
		next.Brand = strings.TrimSpace(*p.Brand)
	}
	if p.Speed != nil {
		next.Speed = strings.TrimSpace(*p.Speed)
	}
	if p.Capacity != nil {
		next.Capacity = strings.TrimSpace(*p.Capacity)
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.Discount != nil {
		next.Discount = *p.Discount
	}
	if p.StockQuantity != nil {
		next.StockQuantity = *p.StockQuantity
	}
	if p.Images != nil {
		next.Images = cloneImages(*p.Images)
	}
	next.UpdatedAt = now.UTC()

	if err := next.validate(); err != nil {
		return err
	}
	*i = next
	return nil
}

// SetRating overwrites the derived aggregate rating (review side effect).
func (i *Item) SetRating(rating float64, now time.Time) error {
	if rating < 0 || rating > 5 || math.IsNaN(rating) {
		return &ValidationError{Field: "rating", Reason: "must be in [0,5]"}
	}
	i.Rating = rating
	i.UpdatedAt = now.UTC()
	return nil
}

// InStock reports whether qty units can currently be purchased.
func (i Item) InStock(qty int) bool {
	return qty > 0 && i.StockQuantity >= qty
}

func (i Item) validate() error {
	if i.ID == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	if i.SellerID == "" {
		return &ValidationError{Field: "sellerId", Reason: "required"}
	}
	if i.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if math.IsNaN(i.Price) || i.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must be >= 0"}
	}
	if math.IsNaN(i.Discount) || i.Discount < 0 || i.Discount > 100 {
		return &ValidationError{Field: "discount", Reason: "must be in [0,100]"}
	}
	if i.StockQuantity < 0 {
		return &ValidationError{Field: "stockQuantity", Reason: "must be >= 0"}
	}
	if i.Rating < 0 || i.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be in [0,5]"}
	}
	if i.CreatedAt.IsZero() || i.UpdatedAt.IsZero() {
		return &ValidationError{Field: "timestamps", Reason: "required"}
	}
	return nil
}

func cloneImages(src []string) []string {
	out := make([]string, 0, len(src))
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
