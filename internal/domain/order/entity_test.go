// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	o, err := New("o1", "buyer1", "seller1", []string{"a", "a", "b"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, []string{"a", "a", "b"}, o.ItemIDs)
	assert.Equal(t, testNow, o.CreatedAt)
}

func TestNewOrderValidation(t *testing.T) {
	_, err := New("", "b", "s", []string{"a"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("o1", "", "s", []string{"a"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidBuyerID)

	_, err = New("o1", "b", "", []string{"a"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidSellerID)

	_, err = New("o1", "b", "s", nil, testNow)
	assert.ErrorIs(t, err, ErrInvalidItems)

	_, err = New("o1", "b", "s", []string{"  ", ""}, testNow)
	assert.ErrorIs(t, err, ErrInvalidItems)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("  shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusTransitions(t *testing.T) {
	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	allowed := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
	for from, nexts := range allowed {
		ok := map[Status]bool{}
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	o, err := New("o1", "b", "s", []string{"a"}, testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	require.NoError(t, o.Transition(StatusProcessing, later))
	assert.Equal(t, StatusProcessing, o.Status)
	assert.Equal(t, later, o.UpdatedAt)
	assert.Equal(t, testNow, o.CreatedAt)

	err = o.Transition(StatusPending, later)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = o.Transition(Status("bogus"), later)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBuyerFacing(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.BuyerFacing())
	assert.Equal(t, "pending", StatusProcessing.BuyerFacing())
	assert.Equal(t, "delivering", StatusShipped.BuyerFacing())
	assert.Equal(t, "arrived", StatusDelivered.BuyerFacing())
	assert.Equal(t, "cancelled", StatusCancelled.BuyerFacing())
}

func TestQuantities(t *testing.T) {
	o := Order{ItemIDs: []string{"a", "b", "a", "a", "c", "b"}}
	assert.Equal(t, []ItemQuantity{
		{ItemID: "a", Qty: 3},
		{ItemID: "b", Qty: 2},
		{ItemID: "c", Qty: 1},
	}, o.Quantities())
}

func TestPartition(t *testing.T) {
	sellers := map[string]string{
		"A": "seller1",
		"B": "seller2",
	}
	sellerOf := func(id string) (string, bool) {
		s, ok := sellers[id]
		return s, ok
	}

	drafts, missing := Partition("buyer1", []string{"A", "B", "A"}, sellerOf)
	require.Empty(t, missing)
	require.Len(t, drafts, 2)

	assert.Equal(t, "seller1", drafts[0].SellerID)
	assert.Equal(t, []string{"A", "A"}, drafts[0].ItemIDs)
	assert.Equal(t, "buyer1", drafts[0].BuyerID)

	assert.Equal(t, "seller2", drafts[1].SellerID)
	assert.Equal(t, []string{"B"}, drafts[1].ItemIDs)
}

func TestPartitionMissing(t *testing.T) {
	drafts, missing := Partition("buyer1", []string{"gone", "A"}, func(id string) (string, bool) {
		if id == "A" {
			return "seller1", true
		}
		return "", false
	})
	assert.Equal(t, []string{"gone"}, missing)
	require.Len(t, drafts, 1)
	assert.Equal(t, []string{"A"}, drafts[0].ItemIDs)
}

func TestPartitionEmpty(t *testing.T) {
	drafts, missing := Partition("buyer1", nil, func(string) (string, bool) { return "", false })
	assert.Empty(t, drafts)
	assert.Empty(t, missing)
}
