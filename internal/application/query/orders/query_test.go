// internal/application/query/orders/query_test.go
package orders

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/item"
	"storefront/internal/domain/order"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubOrderRepo struct{ orders []order.Order }

func (r stubOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r stubOrderRepo) ListByBuyer(_ context.Context, buyerID string) ([]order.Order, error) {
	return r.filter(func(o order.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r stubOrderRepo) ListBySeller(_ context.Context, sellerID string) ([]order.Order, error) {
	return r.filter(func(o order.Order) bool { return o.SellerID == sellerID }), nil
}

func (r stubOrderRepo) UpdateStatus(_ context.Context, _ string, _ order.Status, _ time.Time) error {
	return nil
}

func (r stubOrderRepo) filter(keep func(order.Order) bool) []order.Order {
	var out []order.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type stubItemRepo struct{ byID map[string]item.Item }

func (r stubItemRepo) GetByID(_ context.Context, id string) (*item.Item, error) {
	if it, ok := r.byID[id]; ok {
		cp := it
		return &cp, nil
	}
	return nil, nil
}

func (r stubItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]item.Item, error) {
	out := map[string]item.Item{}
	for _, id := range ids {
		if it, ok := r.byID[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (r stubItemRepo) ListAll(_ context.Context) ([]item.Item, error) { return nil, nil }

func (r stubItemRepo) ListBySeller(_ context.Context, _ string) ([]item.Item, error) {
	return nil, nil
}

func (r stubItemRepo) Create(_ context.Context, _ string, _ item.Attrs) (*item.Item, error) {
	return nil, nil
}

func (r stubItemRepo) Update(_ context.Context, _ *item.Item) error { return nil }
func (r stubItemRepo) Delete(_ context.Context, _ string) error     { return nil }

func fixture(t *testing.T) (*Query, stubOrderRepo) {
	t.Helper()
	mkItem := func(id string, price, discount float64) item.Item {
		it, err := item.New(id, "seller1", item.Attrs{
			Title: "Item " + id, Brand: "Kingston", Price: price, Discount: discount, StockQuantity: 10,
		}, testNow)
		require.NoError(t, err)
		return it
	}
	items := stubItemRepo{byID: map[string]item.Item{
		"a": mkItem("a", 30, 10), // eff 27.00
		"b": mkItem("b", 43.99, 0),
	}}

	mkOrder := func(id string, itemIDs []string, status order.Status, createdAt time.Time) order.Order {
		o, err := order.New(id, "buyer1", "seller1", itemIDs, createdAt)
		require.NoError(t, err)
		o.Status = status
		return o
	}
	orders := stubOrderRepo{orders: []order.Order{
		mkOrder("o1", []string{"a", "a", "b"}, order.StatusShipped, testNow.Add(-2*time.Hour)),
		mkOrder("o2", []string{"deleted"}, order.StatusPending, testNow.Add(-time.Hour)),
	}}
	return NewQuery(orders, items), orders
}

func TestHistoryForBuyer(t *testing.T) {
	q, _ := fixture(t)

	got, err := q.HistoryForBuyer(context.Background(), "buyer1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest first
	assert.Equal(t, "o2", got[0].ID)
	assert.Equal(t, "pending", got[0].Status)
	require.Len(t, got[0].Lines, 1)
	assert.False(t, got[0].Lines[0].Available)
	assert.Zero(t, got[0].Total)

	assert.Equal(t, "o1", got[1].ID)
	assert.Equal(t, "delivering", got[1].Status)
	require.Len(t, got[1].Lines, 2)
	assert.Equal(t, Line{
		ItemID: "a", Qty: 2, Title: "Item a", Brand: "Kingston",
		UnitPrice: 27, LineTotal: 54, Available: true,
	}, got[1].Lines[0])
	assert.Equal(t, 97.99, got[1].Total)
}

func TestHistoryForBuyerEmpty(t *testing.T) {
	q, _ := fixture(t)
	got, err := q.HistoryForBuyer(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIncomingForSeller(t *testing.T) {
	q, _ := fixture(t)

	got, err := q.IncomingForSeller(context.Background(), "seller1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// seller sees the canonical status, not the collapsed one
	assert.Equal(t, order.StatusPending, got[0].Status)
	assert.Equal(t, order.StatusShipped, got[1].Status)
	assert.Equal(t, "buyer1", got[0].BuyerID)
}
