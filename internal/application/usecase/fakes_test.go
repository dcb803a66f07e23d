// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"sort"
	"strconv"
	"time"

	"storefront/internal/domain/item"
	"storefront/internal/domain/membership"
	"storefront/internal/domain/order"
	"storefront/internal/domain/review"
	"storefront/internal/domain/user"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ----------------------------
// item.Repository
// ----------------------------

type fakeItemRepo struct {
	byID map[string]item.Item
	seq  int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: map[string]item.Item{}}
}

func (r *fakeItemRepo) put(it item.Item) { r.byID[it.ID] = it }

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*item.Item, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (r *fakeItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]item.Item, error) {
	out := map[string]item.Item{}
	for _, id := range ids {
		if it, ok := r.byID[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListAll(_ context.Context) ([]item.Item, error) {
	out := make([]item.Item, 0, len(r.byID))
	for _, it := range r.byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) ListBySeller(_ context.Context, sellerID string) ([]item.Item, error) {
	var out []item.Item
	for _, it := range r.byID {
		if it.SellerID == sellerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) Create(_ context.Context, sellerID string, attrs item.Attrs) (*item.Item, error) {
	r.seq++
	it, err := item.New("item-"+strconv.Itoa(r.seq), sellerID, attrs, fixedNow)
	if err != nil {
		return nil, err
	}
	r.byID[it.ID] = it
	return &it, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *item.Item) error {
	r.byID[it.ID] = *it
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// ----------------------------
// membership.Repository
// ----------------------------

type fakeMemberRepo struct {
	lists map[string]map[membership.List][]string
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{lists: map[string]map[membership.List][]string{}}
}

func (r *fakeMemberRepo) get(userID string, list membership.List) []string {
	if u, ok := r.lists[userID]; ok {
		return u[list]
	}
	return nil
}

func (r *fakeMemberRepo) set(userID string, list membership.List, ids []string) {
	u, ok := r.lists[userID]
	if !ok {
		u = map[membership.List][]string{}
		r.lists[userID] = u
	}
	u[list] = ids
}

func (r *fakeMemberRepo) Get(_ context.Context, userID string, list membership.List) ([]string, error) {
	return append([]string(nil), r.get(userID, list)...), nil
}

func (r *fakeMemberRepo) Mutate(_ context.Context, userID string, list membership.List, fn func(ids []string) ([]string, error)) ([]string, error) {
	out, err := fn(append([]string(nil), r.get(userID, list)...))
	if err != nil {
		return nil, err
	}
	r.set(userID, list, out)
	return out, nil
}

func (r *fakeMemberRepo) AddUnique(_ context.Context, userID string, list membership.List, itemID string) error {
	out, _, err := membership.AddUnique(r.get(userID, list), itemID)
	if err != nil {
		return err
	}
	r.set(userID, list, out)
	return nil
}

func (r *fakeMemberRepo) RemoveValue(_ context.Context, userID string, list membership.List, itemID string) error {
	out, _ := membership.RemoveAll(r.get(userID, list), itemID)
	r.set(userID, list, out)
	return nil
}

func (r *fakeMemberRepo) Clear(_ context.Context, userID string, list membership.List) error {
	r.set(userID, list, nil)
	return nil
}

// ----------------------------
// order.Repository + order.CheckoutStore
// ----------------------------

type fakeOrderRepo struct {
	byID map[string]order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: map[string]order.Order{}}
}

func (r *fakeOrderRepo) put(o order.Order) { r.byID[o.ID] = o }

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByBuyer(_ context.Context, buyerID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range r.byID {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) ListBySeller(_ context.Context, sellerID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range r.byID {
		if o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status, updatedAt time.Time) error {
	o, ok := r.byID[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.byID[id] = o
	return nil
}

// fakeCheckoutStore mimics the transactional store against the in-memory
// fakes: partition, stock check, decrement, order creation, cart clear.
type fakeCheckoutStore struct {
	items   *fakeItemRepo
	members *fakeMemberRepo
	orders  *fakeOrderRepo
	seq     int
}

func (s *fakeCheckoutStore) Checkout(ctx context.Context, buyerID string, now time.Time) ([]order.Order, error) {
	cart := s.members.get(buyerID, membership.ListCart)
	if len(cart) == 0 {
		return nil, order.ErrEmptyCart
	}
	drafts, missing := order.Partition(buyerID, cart, func(id string) (string, bool) {
		it, ok := s.items.byID[id]
		return it.SellerID, ok
	})
	if len(missing) > 0 {
		return nil, order.ErrItemUnavailable
	}
	for _, d := range drafts {
		for _, q := range d.Quantities() {
			if !s.items.byID[q.ItemID].InStock(q.Qty) {
				return nil, order.ErrInsufficientStock
			}
		}
	}

	var out []order.Order
	for _, d := range drafts {
		for _, q := range d.Quantities() {
			it := s.items.byID[q.ItemID]
			it.StockQuantity -= q.Qty
			s.items.byID[q.ItemID] = it
		}
		s.seq++
		o, err := order.New("order-"+strconv.Itoa(s.seq), d.BuyerID, d.SellerID, d.ItemIDs, now)
		if err != nil {
			return nil, err
		}
		s.orders.put(o)
		out = append(out, o)
	}
	s.members.set(buyerID, membership.ListCart, nil)
	return out, nil
}

// ----------------------------
// user.Repository
// ----------------------------

type fakeUserRepo struct {
	byID map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]user.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

// ----------------------------
// review.Repository
// ----------------------------

type fakeReviewRepo struct {
	byID map[string]review.Review
	ord  []string
	seq  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byID: map[string]review.Review{}}
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (*review.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := rv
	return &cp, nil
}

func (r *fakeReviewRepo) ListByItem(_ context.Context, itemID string) ([]review.Review, error) {
	var out []review.Review
	for _, id := range r.ord {
		if rv := r.byID[id]; rv.ItemID == itemID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Create(_ context.Context, rv review.Review) (*review.Review, error) {
	r.seq++
	rv.ID = "review-" + strconv.Itoa(r.seq)
	r.byID[rv.ID] = rv
	r.ord = append(r.ord, rv.ID)
	return &rv, nil
}

func (r *fakeReviewRepo) SetReply(_ context.Context, rv *review.Review) error {
	if _, ok := r.byID[rv.ID]; !ok {
		return review.ErrNotFound
	}
	r.byID[rv.ID] = *rv
	return nil
}

// ----------------------------
// ConfirmationSender spy
// ----------------------------

type mailSpy struct {
	sent []string
	err  error
}

func (m *mailSpy) SendOrderConfirmation(_ context.Context, toEmail, _ string, _ []order.Order) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

// ----------------------------
// Seed helpers
// ----------------------------

func seedItem(r *fakeItemRepo, id, sellerID string, price, discount float64, stock int) item.Item {
	it, err := item.New(id, sellerID, item.Attrs{
		Title:         "Item " + id,
		Brand:         "Kingston",
		Price:         price,
		Discount:      discount,
		StockQuantity: stock,
	}, fixedNow)
	if err != nil {
		panic(err)
	}
	r.put(it)
	return it
}
