// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain/order"
	"storefront/internal/domain/user"
)

// ConfirmationSender delivers the post-checkout confirmation mail.
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, toEmail, toName string, orders []order.Order) error
}

// CheckoutUsecase converts a cart into orders.
//
// The whole conversion (cart read, stock check, stock decrement, order
// creation, cart clear) runs inside one storage transaction via
// order.CheckoutStore, so a concurrent checkout against the same stock
// either sees the decrement or retries.
type CheckoutUsecase struct {
	store order.CheckoutStore
	users user.Repository
	mail  ConfirmationSender
	clock Clock
}

func NewCheckoutUsecase(store order.CheckoutStore, users user.Repository, mail ConfirmationSender, clock Clock) *CheckoutUsecase {
	if clock == nil {
		clock = SystemClock()
	}
	return &CheckoutUsecase{store: store, users: users, mail: mail, clock: clock}
}

// Checkout places one order per distinct seller in the buyer's cart and
// clears the cart. Error policy:
//   - order.ErrEmptyCart          cart had no ids
//   - order.ErrItemUnavailable    a cart id no longer resolves to an item
//   - order.ErrInsufficientStock  requested qty exceeds current stock
func (u *CheckoutUsecase) Checkout(ctx context.Context, buyerID string) ([]order.Order, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, ErrNotAuthenticated
	}

	orders, err := u.store.Checkout(ctx, buyerID, u.clock.Now())
	if err != nil {
		return nil, err
	}
	log.Printf("[checkout] buyer=%s orders=%d", buyerID, len(orders))

	u.sendConfirmation(ctx, buyerID, orders)
	return orders, nil
}

// sendConfirmation is best effort: a mail failure never fails the checkout.
func (u *CheckoutUsecase) sendConfirmation(ctx context.Context, buyerID string, orders []order.Order) {
	if u.mail == nil || len(orders) == 0 {
		return
	}
	buyer, err := u.users.GetByID(ctx, buyerID)
	if err != nil || buyer == nil || strings.TrimSpace(buyer.Email) == "" {
		log.Printf("[checkout] skip confirmation mail: buyer=%s err=%v", buyerID, err)
		return
	}
	if err := u.mail.SendOrderConfirmation(ctx, buyer.Email, buyer.DisplayName, orders); err != nil {
		log.Printf("[checkout] confirmation mail failed: buyer=%s err=%v", buyerID, err)
	}
}
