// internal/domain/order/entity.go
package order

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID         = errors.New("order: invalid id")
	ErrInvalidBuyerID    = errors.New("order: invalid buyerId")
	ErrInvalidSellerID   = errors.New("order: invalid sellerId")
	ErrInvalidItems      = errors.New("order: invalid items")
	ErrInvalidCreatedAt  = errors.New("order: invalid createdAt")
	ErrInvalidStatus     = errors.New("order: invalid status")
	ErrInvalidTransition = errors.New("order: invalid status transition")
	ErrNotOwner          = errors.New("order: not owner")
	ErrNotFound          = errors.New("order: not found")

	ErrEmptyCart         = errors.New("order: cart is empty")
	ErrItemUnavailable   = errors.New("order: item unavailable")
	ErrInsufficientStock = errors.New("order: insufficient stock")
)

// ========================================
// Status
// ========================================

// Status is the canonical seller-facing order state.
// The buyer UI collapses it via BuyerFacing().
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus accepts the canonical spellings case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "processing":
		return StatusProcessing, nil
	case "shipped":
		return StatusShipped, nil
	case "delivered":
		return StatusDelivered, nil
	case "cancelled":
		return StatusCancelled, nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo enforces forward-only progression:
//
//	Pending -> Processing -> Shipped -> Delivered
//
// Cancelled is reachable from Pending and Processing only.
// Delivered and Cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// BuyerFacing maps the canonical status onto the buyer display vocabulary.
func (s Status) BuyerFacing() string {
	switch s {
	case StatusPending, StatusProcessing:
		return "pending"
	case StatusShipped:
		return "delivering"
	case StatusDelivered:
		return "arrived"
	case StatusCancelled:
		return "cancelled"
	}
	return "pending"
}

// ========================================
// Entity
// ========================================

// Order is an immutable-once-created grouping of cart items by seller.
//   - ItemIDs keeps per-unit repetition: a duplicated id means quantity > 1
//   - SellerID is uniform across the whole order (checkout partitioning)
//   - only Status/UpdatedAt ever change after creation
type Order struct {
	ID       string `json:"id" firestore:"id"`
	BuyerID  string `json:"buyerId" firestore:"buyerId"`
	SellerID string `json:"sellerId" firestore:"sellerId"`

	ItemIDs []string `json:"items" firestore:"items"`

	Status Status `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func New(id, buyerID, sellerID string, itemIDs []string, now time.Time) (Order, error) {
	o := Order{
		ID:        strings.TrimSpace(id),
		BuyerID:   strings.TrimSpace(buyerID),
		SellerID:  strings.TrimSpace(sellerID),
		ItemIDs:   normalizeItemIDs(itemIDs),
		Status:    StatusPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Transition moves the order to next, enforcing the forward-only rule.
// Ownership is checked by the caller (usecase) before any write.
func (o *Order) Transition(next Status, now time.Time) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next
	o.UpdatedAt = now.UTC()
	return nil
}

// ItemQuantity aggregates one distinct item id with its occurrence count.
type ItemQuantity struct {
	ItemID string
	Qty    int
}

// Quantities collapses ItemIDs into {id, qty} pairs, ordered by first
// appearance in the order.
func (o Order) Quantities() []ItemQuantity {
	out := make([]ItemQuantity, 0, len(o.ItemIDs))
	index := make(map[string]int, len(o.ItemIDs))
	for _, id := range o.ItemIDs {
		if i, ok := index[id]; ok {
			out[i].Qty++
			continue
		}
		index[id] = len(out)
		out = append(out, ItemQuantity{ItemID: id, Qty: 1})
	}
	return out
}

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.BuyerID == "" {
		return ErrInvalidBuyerID
	}
	if o.SellerID == "" {
		return ErrInvalidSellerID
	}
	if len(o.ItemIDs) == 0 {
		return ErrInvalidItems
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

func normalizeItemIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}

// ========================================
// Checkout partitioning
// ========================================

// Draft is a not-yet-persisted per-seller order derived from a cart.
type Draft struct {
	BuyerID  string
	SellerID string
	ItemIDs  []string
}

// Partition splits a cart multiset into one Draft per distinct seller.
// sellerOf resolves an item id to its owning seller; ids it cannot resolve
// are returned as missing (dangling references, e.g. a deleted item).
//
// Within a draft, ids keep their cart order and repetition count. Drafts are
// sorted by sellerID so the per-seller write order is deterministic.
func Partition(buyerID string, cartIDs []string, sellerOf func(id string) (string, bool)) (drafts []Draft, missing []string) {
	bySeller := make(map[string]*Draft)
	for _, id := range cartIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		sellerID, ok := sellerOf(id)
		if !ok || strings.TrimSpace(sellerID) == "" {
			missing = append(missing, id)
			continue
		}
		d, ok := bySeller[sellerID]
		if !ok {
			d = &Draft{BuyerID: strings.TrimSpace(buyerID), SellerID: sellerID}
			bySeller[sellerID] = d
		}
		d.ItemIDs = append(d.ItemIDs, id)
	}

	drafts = make([]Draft, 0, len(bySeller))
	for _, d := range bySeller {
		drafts = append(drafts, *d)
	}
	sort.Slice(drafts, func(i, j int) bool { return drafts[i].SellerID < drafts[j].SellerID })
	return drafts, missing
}

// Quantities collapses the draft's ItemIDs into {id, qty} pairs.
func (d Draft) Quantities() []ItemQuantity {
	return Order{ItemIDs: d.ItemIDs}.Quantities()
}
