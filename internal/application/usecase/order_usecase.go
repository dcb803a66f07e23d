// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain/order"
	"storefront/internal/domain/user"
)

// OrderUsecase drives the post-checkout order lifecycle. Sellers advance
// fulfillment (pending -> processing -> shipped -> delivered); buyers may
// cancel while the order has not shipped.
type OrderUsecase struct {
	orders order.Repository
	users  user.Repository
	clock  Clock
}

func NewOrderUsecase(orders order.Repository, users user.Repository, clock Clock) *OrderUsecase {
	if clock == nil {
		clock = SystemClock()
	}
	return &OrderUsecase{orders: orders, users: users, clock: clock}
}

// Advance moves an order to next on behalf of its seller. Backward and
// skipped transitions are rejected with order.ErrInvalidTransition.
func (u *OrderUsecase) Advance(ctx context.Context, sellerID, orderID string, next order.Status) (*order.Order, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, ErrNotAuthenticated
	}
	o, err := u.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.SellerID != sellerID && !u.isAdmin(ctx, sellerID) {
		return nil, order.ErrNotOwner
	}
	return u.transition(ctx, o, next)
}

// Cancel cancels a buyer's own order. Only pending and processing orders
// can still be cancelled.
func (u *OrderUsecase) Cancel(ctx context.Context, buyerID, orderID string) (*order.Order, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, ErrNotAuthenticated
	}
	o, err := u.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, order.ErrNotOwner
	}
	return u.transition(ctx, o, order.StatusCancelled)
}

// GetForBuyer fetches one order, enforcing buyer ownership.
func (u *OrderUsecase) GetForBuyer(ctx context.Context, buyerID, orderID string) (*order.Order, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, ErrNotAuthenticated
	}
	o, err := u.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, order.ErrNotOwner
	}
	return o, nil
}

func (u *OrderUsecase) transition(ctx context.Context, o *order.Order, next order.Status) (*order.Order, error) {
	if err := o.Transition(next, u.clock.Now()); err != nil {
		return nil, err
	}
	if err := u.orders.UpdateStatus(ctx, o.ID, o.Status, o.UpdatedAt); err != nil {
		return nil, err
	}
	log.Printf("[order] %s -> %s", o.ID, o.Status)
	return o, nil
}

func (u *OrderUsecase) get(ctx context.Context, orderID string) (*order.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidArgument
	}
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (u *OrderUsecase) isAdmin(ctx context.Context, userID string) bool {
	usr, err := u.users.GetByID(ctx, userID)
	return err == nil && usr != nil && usr.Role == user.RoleAdmin
}
