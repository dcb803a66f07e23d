// internal/application/query/catalog/query.go
package catalog

import (
	"context"
	"math"
	"sort"
	"strings"

	"storefront/internal/domain/item"
	"storefront/internal/domain/pricing"
)

// ImageURLResolver turns a stored object path into a browser-fetchable URL.
// Paths that are already absolute URLs pass through unchanged.
type ImageURLResolver interface {
	PublicURL(objectPath string) string
}

// Source is an optional live catalog feed (snapshot listener). When it has
// a current snapshot the query serves from it instead of hitting storage.
type Source interface {
	Current() ([]item.Item, bool)
}

// Card is one grid entry: the item plus its derived display fields.
type Card struct {
	item.Item
	EffectivePrice float64  `json:"effectivePrice"`
	ImageURLs      []string `json:"imageUrls"`
}

// Facets describes the filter UI ranges derived from the full catalog,
// before any filter is applied.
type Facets struct {
	Brands     []string `json:"brands"`
	Capacities []string `json:"capacities"`
	// MaxPrice is the slider ceiling: the highest effective price in the
	// catalog rounded up to a whole unit.
	MaxPrice float64 `json:"maxPrice"`
}

// Result is a filtered grid page plus the catalog-wide facets.
type Result struct {
	Cards  []Card `json:"cards"`
	Facets Facets `json:"facets"`
	Total  int    `json:"total"`
}

// Query serves the storefront grid.
type Query struct {
	items  item.Repository
	urls   ImageURLResolver
	source Source
}

func NewQuery(items item.Repository, urls ImageURLResolver, source Source) *Query {
	return &Query{items: items, urls: urls, source: source}
}

// Browse loads the catalog, applies f and decorates the survivors.
func (q *Query) Browse(ctx context.Context, f Filter) (*Result, error) {
	all, err := q.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Apply(all, f)
	cards := make([]Card, 0, len(filtered))
	for _, it := range filtered {
		cards = append(cards, q.card(it))
	}
	return &Result{Cards: cards, Facets: facets(all), Total: len(cards)}, nil
}

// GetCard resolves a single item for the detail page. Returns (nil, nil)
// when the id does not resolve.
func (q *Query) GetCard(ctx context.Context, id string) (*Card, error) {
	it, err := q.items.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || it == nil {
		return nil, err
	}
	c := q.card(*it)
	return &c, nil
}

func (q *Query) snapshot(ctx context.Context) ([]item.Item, error) {
	if q.source != nil {
		if items, ok := q.source.Current(); ok {
			return items, nil
		}
	}
	return q.items.ListAll(ctx)
}

func (q *Query) card(it item.Item) Card {
	c := Card{
		Item:           it,
		EffectivePrice: pricing.Effective(it.Price, it.Discount),
		ImageURLs:      make([]string, 0, len(it.Images)),
	}
	for _, path := range it.Images {
		c.ImageURLs = append(c.ImageURLs, q.resolve(path))
	}
	return c
}

func (q *Query) resolve(path string) string {
	if q.urls == nil || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return q.urls.PublicURL(path)
}

func facets(all []item.Item) Facets {
	brandSet := map[string]bool{}
	capacitySet := map[string]bool{}
	maxPrice := 0.0
	for _, it := range all {
		if b := strings.TrimSpace(it.Brand); b != "" {
			brandSet[b] = true
		}
		if c := strings.TrimSpace(it.Capacity); c != "" {
			capacitySet[c] = true
		}
		if eff := pricing.Effective(it.Price, it.Discount); eff > maxPrice {
			maxPrice = eff
		}
	}
	f := Facets{
		Brands:     sortedKeys(brandSet),
		Capacities: sortedKeys(capacitySet),
		MaxPrice:   math.Ceil(maxPrice),
	}
	return f
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
