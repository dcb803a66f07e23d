// internal/application/usecase/membership_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain/item"
	"storefront/internal/domain/membership"
	"storefront/internal/domain/pricing"
)

// MembershipUsecase drives the per-user cart / wishlist / compare lists.
type MembershipUsecase struct {
	members membership.Repository
	items   item.Repository
}

func NewMembershipUsecase(members membership.Repository, items item.Repository) *MembershipUsecase {
	return &MembershipUsecase{members: members, items: items}
}

// Line is one materialized entry of a list view: the raw id plus whatever
// the catalog currently says about it. A dangling id (item deleted since it
// was added) stays visible with Available=false so the client can surface it.
type Line struct {
	ItemID    string     `json:"itemId"`
	Qty       int        `json:"qty"`
	Item      *item.Item `json:"item,omitempty"`
	UnitPrice float64    `json:"unitPrice"`
	LineTotal float64    `json:"lineTotal"`
	Available bool       `json:"available"`
}

// ListView is the materialized state of one membership list.
type ListView struct {
	List  membership.List `json:"list"`
	Lines []Line          `json:"lines"`
	Total float64         `json:"total"`
}

// ============================================================
// Cart (multiset: repetition encodes quantity)
// ============================================================

// AddToCart appends one unit of itemID to the user's cart.
func (u *MembershipUsecase) AddToCart(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	it, err := u.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return item.ErrNotFound
	}
	_, err = u.members.Mutate(ctx, userID, membership.ListCart, func(ids []string) ([]string, error) {
		return membership.Append(ids, itemID)
	})
	if err != nil {
		log.Printf("[membership] add to cart failed: user=%s item=%s err=%v", userID, itemID, err)
	}
	return err
}

// RemoveFromCart removes one unit of itemID. Absent ids are a no-op.
func (u *MembershipUsecase) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	_, err = u.members.Mutate(ctx, userID, membership.ListCart, func(ids []string) ([]string, error) {
		out, _ := membership.RemoveOne(ids, itemID)
		return out, nil
	})
	return err
}

// RemoveLineFromCart drops every unit of itemID at once.
func (u *MembershipUsecase) RemoveLineFromCart(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	return u.members.RemoveValue(ctx, userID, membership.ListCart, itemID)
}

// ============================================================
// Wishlist (set)
// ============================================================

func (u *MembershipUsecase) AddToWishlist(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	return u.members.AddUnique(ctx, userID, membership.ListWishlist, itemID)
}

func (u *MembershipUsecase) RemoveFromWishlist(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	return u.members.RemoveValue(ctx, userID, membership.ListWishlist, itemID)
}

// ToggleWishlist flips membership and returns the resulting state
// (true = now present).
func (u *MembershipUsecase) ToggleWishlist(ctx context.Context, userID, itemID string) (bool, error) {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return false, err
	}
	added := false
	_, err = u.members.Mutate(ctx, userID, membership.ListWishlist, func(ids []string) ([]string, error) {
		if membership.Contains(ids, itemID) {
			out, _ := membership.RemoveAll(ids, itemID)
			return out, nil
		}
		out, _, err := membership.AddUnique(ids, itemID)
		added = err == nil
		return out, err
	})
	return added, err
}

// ============================================================
// Compare (set, capped)
// ============================================================

// AddToCompare adds itemID to the comparison set. A full set
// (membership.CompareLimit entries) yields membership.ErrCompareFull;
// re-adding a present id is an accepted no-op even at the cap.
func (u *MembershipUsecase) AddToCompare(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	_, err = u.members.Mutate(ctx, userID, membership.ListCompare, func(ids []string) ([]string, error) {
		out, _, err := membership.AddCompare(ids, itemID)
		return out, err
	})
	return err
}

func (u *MembershipUsecase) RemoveFromCompare(ctx context.Context, userID, itemID string) error {
	userID, itemID, err := u.checkArgs(userID, itemID)
	if err != nil {
		return err
	}
	return u.members.RemoveValue(ctx, userID, membership.ListCompare, itemID)
}

// Clear empties any list in a single write.
func (u *MembershipUsecase) Clear(ctx context.Context, userID string, list membership.List) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrNotAuthenticated
	}
	if err := u.members.Clear(ctx, userID, list); err != nil {
		log.Printf("[membership] clear failed: user=%s list=%s err=%v", userID, list, err)
		return err
	}
	return nil
}

// ============================================================
// Materialized views
// ============================================================

// View materializes any list against the current catalog. Cart lines carry
// quantities and an order total; wishlist/compare lines are qty 1 with no
// total aggregation beyond the sum of effective prices.
func (u *MembershipUsecase) View(ctx context.Context, userID string, list membership.List) (*ListView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	ids, err := u.members.Get(ctx, userID, list)
	if err != nil {
		return nil, err
	}
	entries := membership.Quantities(ids)

	distinct := make([]string, 0, len(entries))
	for _, e := range entries {
		distinct = append(distinct, e.ItemID)
	}
	found, err := u.items.GetByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}

	view := &ListView{List: list, Lines: make([]Line, 0, len(entries))}
	for _, e := range entries {
		line := Line{ItemID: e.ItemID, Qty: e.Qty}
		if it, ok := found[e.ItemID]; ok {
			it := it
			line.Item = &it
			line.Available = true
			line.UnitPrice = pricing.Effective(it.Price, it.Discount)
			line.LineTotal = pricing.LineTotal(it.Price, it.Discount, e.Qty)
			view.Total = pricing.Round2(view.Total + line.LineTotal)
		}
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}

func (u *MembershipUsecase) checkArgs(userID, itemID string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	itemID = strings.TrimSpace(itemID)
	if userID == "" {
		return "", "", ErrNotAuthenticated
	}
	if itemID == "" {
		return "", "", membership.ErrInvalidItemID
	}
	return userID, itemID, nil
}
