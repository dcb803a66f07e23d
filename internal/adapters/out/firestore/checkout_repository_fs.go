// internal/adapters/out/firestore/checkout_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	memdom "storefront/internal/domain/membership"
	orderdom "storefront/internal/domain/order"
)

// CheckoutRepositoryFS implements order.CheckoutStore.
//
// The whole conversion runs in ONE Firestore transaction:
//  1. read the buyer's user doc (cart array)
//  2. read every distinct cart item doc
//  3. partition per seller and verify stock
//  4. decrement stock, create the order docs, clear the cart
//
// Firestore requires all transaction reads before the first write, which
// this ordering satisfies. On contention (two buyers checking out the same
// stock) the SDK retries the function with fresh snapshots, so oversell
// cannot happen.
type CheckoutRepositoryFS struct {
	Client *firestore.Client
}

func NewCheckoutRepositoryFS(client *firestore.Client) *CheckoutRepositoryFS {
	return &CheckoutRepositoryFS{Client: client}
}

func (r *CheckoutRepositoryFS) users() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

func (r *CheckoutRepositoryFS) items() *firestore.CollectionRef {
	return r.Client.Collection("items")
}

func (r *CheckoutRepositoryFS) orders() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *CheckoutRepositoryFS) Checkout(ctx context.Context, buyerID string, now time.Time) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("checkout_repository_fs: firestore client is nil")
	}
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, errors.New("checkout_repository_fs: buyerID is empty")
	}

	var created []orderdom.Order
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = nil

		userRef := r.users().Doc(buyerID)
		userSnap, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrEmptyCart
			}
			return err
		}
		cart := listFromSnapshot(userSnap, memdom.ListCart)
		if len(cart) == 0 {
			return orderdom.ErrEmptyCart
		}

		// read every distinct item inside the transaction so the stock we
		// check is the stock we decrement
		entries := memdom.Quantities(cart)
		type stocked struct {
			ref      *firestore.DocumentRef
			sellerID string
			stock    int
		}
		byID := make(map[string]stocked, len(entries))
		for _, e := range entries {
			ref := r.items().Doc(e.ItemID)
			snap, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return orderdom.ErrItemUnavailable
				}
				return err
			}
			raw := snap.Data()
			byID[e.ItemID] = stocked{
				ref:      ref,
				sellerID: strings.TrimSpace(asString(raw["sellerId"])),
				stock:    asInt(raw["stockQuantity"]),
			}
		}

		drafts, missing := orderdom.Partition(buyerID, cart, func(id string) (string, bool) {
			s, ok := byID[id]
			return s.sellerID, ok
		})
		if len(missing) > 0 {
			return orderdom.ErrItemUnavailable
		}

		for _, e := range entries {
			if byID[e.ItemID].stock < e.Qty {
				return orderdom.ErrInsufficientStock
			}
		}

		// writes: decrement stock, create orders, clear the cart
		for _, e := range entries {
			s := byID[e.ItemID]
			if err := tx.Update(s.ref, []firestore.Update{
				{Path: "stockQuantity", Value: s.stock - e.Qty},
				{Path: "updatedAt", Value: now.UTC()},
			}); err != nil {
				return err
			}
		}
		for _, d := range drafts {
			ref := r.orders().NewDoc()
			o, err := orderdom.New(ref.ID, d.BuyerID, d.SellerID, d.ItemIDs, now)
			if err != nil {
				return err
			}
			if err := tx.Set(ref, orderDocFromDomain(o)); err != nil {
				return err
			}
			created = append(created, o)
		}
		return tx.Set(userRef, map[string]any{
			memdom.ListCart.Field(): []string{},
		}, firestore.MergeAll)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
