// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/membership"
	"storefront/internal/domain/order"
	"storefront/internal/domain/user"
)

type checkoutFixture struct {
	u       *CheckoutUsecase
	items   *fakeItemRepo
	members *fakeMemberRepo
	orders  *fakeOrderRepo
	mail    *mailSpy
}

func newCheckoutFixture() *checkoutFixture {
	items := newFakeItemRepo()
	members := newFakeMemberRepo()
	orders := newFakeOrderRepo()
	users := newFakeUserRepo(user.User{ID: "buyer1", Email: "buyer@example.com", DisplayName: "Buyer One", Role: user.RoleBuyer})
	mail := &mailSpy{}
	store := &fakeCheckoutStore{items: items, members: members, orders: orders}
	return &checkoutFixture{
		u:       NewCheckoutUsecase(store, users, mail, fixedClock{fixedNow}),
		items:   items,
		members: members,
		orders:  orders,
		mail:    mail,
	}
}

func TestCheckoutSplitsBySellerAndClearsCart(t *testing.T) {
	f := newCheckoutFixture()
	seedItem(f.items, "a", "seller1", 30, 10, 5)
	seedItem(f.items, "b", "seller2", 43.99, 0, 5)
	f.members.set("buyer1", membership.ListCart, []string{"a", "b", "a"})

	orders, err := f.u.Checkout(context.Background(), "buyer1")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "seller1", orders[0].SellerID)
	assert.Equal(t, []string{"a", "a"}, orders[0].ItemIDs)
	assert.Equal(t, order.StatusPending, orders[0].Status)
	assert.Equal(t, "seller2", orders[1].SellerID)
	assert.Equal(t, []string{"b"}, orders[1].ItemIDs)

	assert.Empty(t, f.members.get("buyer1", membership.ListCart))
	assert.Equal(t, 3, f.items.byID["a"].StockQuantity)
	assert.Equal(t, 4, f.items.byID["b"].StockQuantity)

	assert.Equal(t, []string{"buyer@example.com"}, f.mail.sent)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.u.Checkout(context.Background(), "buyer1")
	assert.ErrorIs(t, err, order.ErrEmptyCart)
	assert.Empty(t, f.mail.sent)
}

func TestCheckoutInsufficientStockLeavesEverythingUntouched(t *testing.T) {
	f := newCheckoutFixture()
	seedItem(f.items, "a", "seller1", 30, 0, 1)
	f.members.set("buyer1", membership.ListCart, []string{"a", "a"})

	_, err := f.u.Checkout(context.Background(), "buyer1")
	assert.ErrorIs(t, err, order.ErrInsufficientStock)

	assert.Equal(t, []string{"a", "a"}, f.members.get("buyer1", membership.ListCart))
	assert.Equal(t, 1, f.items.byID["a"].StockQuantity)
	assert.Empty(t, f.orders.byID)
}

func TestCheckoutDanglingCartID(t *testing.T) {
	f := newCheckoutFixture()
	seedItem(f.items, "a", "seller1", 30, 0, 5)
	f.members.set("buyer1", membership.ListCart, []string{"a", "ghost"})

	_, err := f.u.Checkout(context.Background(), "buyer1")
	assert.ErrorIs(t, err, order.ErrItemUnavailable)
	assert.Equal(t, 5, f.items.byID["a"].StockQuantity)
}

func TestCheckoutRequiresAuth(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.u.Checkout(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCheckoutMailFailureDoesNotFailCheckout(t *testing.T) {
	f := newCheckoutFixture()
	f.mail.err = errors.New("smtp down")
	seedItem(f.items, "a", "seller1", 30, 0, 5)
	f.members.set("buyer1", membership.ListCart, []string{"a"})

	orders, err := f.u.Checkout(context.Background(), "buyer1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
