// internal/application/query/orders/query.go
package orders

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/item"
	"storefront/internal/domain/order"
	"storefront/internal/domain/pricing"
)

// Line is one materialized order line. Prices reflect the item's CURRENT
// listing; historical price snapshots are out of scope. A deleted item
// keeps its line with Available=false.
type Line struct {
	ItemID    string  `json:"itemId"`
	Qty       int     `json:"qty"`
	Title     string  `json:"title,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	Available bool    `json:"available"`
}

// BuyerOrder is the buyer-history row: collapsed display status plus lines.
type BuyerOrder struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"sellerId"`
	Status    string    `json:"status"`
	Lines     []Line    `json:"lines"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// SellerOrder is the fulfillment row: canonical status, so the seller sees
// the full pipeline state.
type SellerOrder struct {
	ID        string       `json:"id"`
	BuyerID   string       `json:"buyerId"`
	Status    order.Status `json:"status"`
	Lines     []Line       `json:"lines"`
	Total     float64      `json:"total"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Query serves order history read models.
type Query struct {
	orders order.Repository
	items  item.Repository
}

func NewQuery(orders order.Repository, items item.Repository) *Query {
	return &Query{orders: orders, items: items}
}

// HistoryForBuyer returns the buyer's orders, newest first, with the
// canonical status collapsed to the buyer vocabulary.
func (q *Query) HistoryForBuyer(ctx context.Context, buyerID string) ([]BuyerOrder, error) {
	buyerID = strings.TrimSpace(buyerID)
	list, err := q.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	out := make([]BuyerOrder, 0, len(list))
	for _, o := range list {
		lines, total, err := q.materialize(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, BuyerOrder{
			ID:        o.ID,
			SellerID:  o.SellerID,
			Status:    o.Status.BuyerFacing(),
			Lines:     lines,
			Total:     total,
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}

// IncomingForSeller returns the seller's orders, newest first.
func (q *Query) IncomingForSeller(ctx context.Context, sellerID string) ([]SellerOrder, error) {
	sellerID = strings.TrimSpace(sellerID)
	list, err := q.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]SellerOrder, 0, len(list))
	for _, o := range list {
		lines, total, err := q.materialize(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, SellerOrder{
			ID:        o.ID,
			BuyerID:   o.BuyerID,
			Status:    o.Status,
			Lines:     lines,
			Total:     total,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}
	return out, nil
}

func (q *Query) materialize(ctx context.Context, o order.Order) ([]Line, float64, error) {
	quantities := o.Quantities()
	ids := make([]string, 0, len(quantities))
	for _, qty := range quantities {
		ids = append(ids, qty.ItemID)
	}
	found, err := q.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]Line, 0, len(quantities))
	total := 0.0
	for _, qty := range quantities {
		line := Line{ItemID: qty.ItemID, Qty: qty.Qty}
		if it, ok := found[qty.ItemID]; ok {
			line.Title = it.Title
			line.Brand = it.Brand
			line.Available = true
			line.UnitPrice = pricing.Effective(it.Price, it.Discount)
			line.LineTotal = pricing.LineTotal(it.Price, it.Discount, qty.Qty)
			total = pricing.Round2(total + line.LineTotal)
		}
		lines = append(lines, line)
	}
	return lines, total, nil
}
