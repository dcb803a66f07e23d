// internal/application/query/catalog/filter_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/item"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixture() []item.Item {
	mk := func(id, title, brand, speed, capacity string, price, discount, rating float64) item.Item {
		it, err := item.New(id, "seller1", item.Attrs{
			Title: title, Brand: brand, Speed: speed, Capacity: capacity,
			Price: price, Discount: discount, StockQuantity: 10,
		}, testNow)
		if err != nil {
			panic(err)
		}
		it.Rating = rating
		return it
	}
	return []item.Item{
		mk("corsair16", "Corsair Vengeance LPX", "Corsair", "3200MHz", "16GB", 43.99, 10, 4.5), // eff 39.59
		mk("kingston8", "Kingston Fury Beast", "Kingston", "3200MHz", "8GB", 30, 10, 4.0),      // eff 27.00
		mk("crucial32", "Crucial Pro", "Crucial", "3600MHz", "32GB", 89.99, 0, 3.5),            // eff 89.99
		mk("kingston16", "Kingston Fury Renegade", "Kingston", "3600MHz", "16GB", 55, 20, 4.8), // eff 44.00
	}
}

func ids(items []item.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestApplyNoFilterReturnsAll(t *testing.T) {
	got := Apply(fixture(), Filter{})
	assert.Equal(t, []string{"corsair16", "kingston8", "crucial32", "kingston16"}, ids(got))
}

func TestApplyKeywordTokensAnd(t *testing.T) {
	got := Apply(fixture(), Filter{Keyword: "KINGSTON fury"})
	assert.Equal(t, []string{"kingston8", "kingston16"}, ids(got))

	got = Apply(fixture(), Filter{Keyword: "fury renegade"})
	assert.Equal(t, []string{"kingston16"}, ids(got))

	got = Apply(fixture(), Filter{Keyword: "nosuchword"})
	assert.Empty(t, got)
}

func TestApplyKeywordMatchesTitleOnly(t *testing.T) {
	// "Corsair Vengeance LPX" matches through its title, not the brand field
	got := Apply(fixture(), Filter{Keyword: "corsair"})
	assert.Equal(t, []string{"corsair16"}, ids(got))

	// speed and capacity values never satisfy the keyword
	assert.Empty(t, Apply(fixture(), Filter{Keyword: "3600MHz"}))
	assert.Empty(t, Apply(fixture(), Filter{Keyword: "3200"}))
	assert.Empty(t, Apply(fixture(), Filter{Keyword: "32GB"}))
}

func TestApplyHighRatedToggle(t *testing.T) {
	got := Apply(fixture(), Filter{HighRatedOnly: true})
	assert.Equal(t, []string{"corsair16", "kingston8", "kingston16"}, ids(got))
}

func TestApplyMultiSelects(t *testing.T) {
	// empty selection means no restriction
	got := Apply(fixture(), Filter{Brands: nil})
	assert.Len(t, got, 4)

	got = Apply(fixture(), Filter{Brands: []string{"Kingston", "Crucial"}})
	assert.Equal(t, []string{"kingston8", "crucial32", "kingston16"}, ids(got))

	got = Apply(fixture(), Filter{Capacities: []string{"16GB"}})
	assert.Equal(t, []string{"corsair16", "kingston16"}, ids(got))

	got = Apply(fixture(), Filter{Brands: []string{"Kingston"}, Capacities: []string{"16GB"}})
	assert.Equal(t, []string{"kingston16"}, ids(got))
}

func TestApplyEffectivePriceRangeInclusive(t *testing.T) {
	min, max := 27.0, 44.0
	got := Apply(fixture(), Filter{MinPrice: &min, MaxPrice: &max})
	assert.Equal(t, []string{"corsair16", "kingston8", "kingston16"}, ids(got))

	// bounds compare against the discounted price, not the list price
	tight := 39.59
	got = Apply(fixture(), Filter{MinPrice: &tight, MaxPrice: &tight})
	assert.Equal(t, []string{"corsair16"}, ids(got))
}

func TestApplySortByEffectivePrice(t *testing.T) {
	got := Apply(fixture(), Filter{Sort: SortPriceAsc})
	assert.Equal(t, []string{"kingston8", "corsair16", "kingston16", "crucial32"}, ids(got))

	got = Apply(fixture(), Filter{Sort: SortPriceDesc})
	assert.Equal(t, []string{"crucial32", "kingston16", "corsair16", "kingston8"}, ids(got))
}

func TestApplySortByRating(t *testing.T) {
	got := Apply(fixture(), Filter{Sort: SortRatingDesc})
	assert.Equal(t, []string{"kingston16", "corsair16", "kingston8", "crucial32"}, ids(got))
}

func TestApplySortIsStableOnTies(t *testing.T) {
	items := fixture()
	clone := items[0]
	clone.ID = "corsair16b"
	items = append(items, clone)

	got := Apply(items, Filter{Sort: SortPriceAsc})
	assert.Equal(t, []string{"kingston8", "corsair16", "corsair16b", "kingston16", "crucial32"}, ids(got))
}

func TestApplyComposition(t *testing.T) {
	max := 50.0
	got := Apply(fixture(), Filter{
		Keyword:       "fury",
		HighRatedOnly: true,
		Brands:        []string{"Kingston"},
		MaxPrice:      &max,
		Sort:          SortPriceDesc,
	})
	assert.Equal(t, []string{"kingston16", "kingston8"}, ids(got))
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSort("ASC"))
	assert.Equal(t, SortPriceDesc, ParseSort("price_desc"))
	assert.Equal(t, SortRatingDesc, ParseSort("rating"))
	assert.Equal(t, SortNone, ParseSort("bogus"))
	assert.Equal(t, SortNone, ParseSort(""))
}

// ----------------------------
// Query
// ----------------------------

type stubItemRepo struct{ items []item.Item }

func (r stubItemRepo) GetByID(_ context.Context, id string) (*item.Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r stubItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]item.Item, error) {
	out := map[string]item.Item{}
	for _, it := range r.items {
		out[it.ID] = it
	}
	return out, nil
}

func (r stubItemRepo) ListAll(_ context.Context) ([]item.Item, error) { return r.items, nil }

func (r stubItemRepo) ListBySeller(_ context.Context, _ string) ([]item.Item, error) {
	return nil, nil
}

func (r stubItemRepo) Create(_ context.Context, _ string, _ item.Attrs) (*item.Item, error) {
	return nil, nil
}

func (r stubItemRepo) Update(_ context.Context, _ *item.Item) error { return nil }
func (r stubItemRepo) Delete(_ context.Context, _ string) error     { return nil }

type stubResolver struct{}

func (stubResolver) PublicURL(path string) string { return "https://cdn.example.com/" + path }

type stubSource struct {
	items []item.Item
	ok    bool
}

func (s stubSource) Current() ([]item.Item, bool) { return s.items, s.ok }

func TestBrowseFacetsAndCards(t *testing.T) {
	q := NewQuery(stubItemRepo{items: fixture()}, stubResolver{}, nil)

	res, err := q.Browse(context.Background(), Filter{Brands: []string{"Corsair"}})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, 39.59, res.Cards[0].EffectivePrice)

	// facets come from the full catalog, not the filtered page
	assert.Equal(t, []string{"Corsair", "Crucial", "Kingston"}, res.Facets.Brands)
	assert.Equal(t, []string{"16GB", "32GB", "8GB"}, res.Facets.Capacities)
	assert.Equal(t, 90.0, res.Facets.MaxPrice)
	assert.Equal(t, 1, res.Total)
}

func TestBrowseKeywordAndBrandShowsDiscountedPrice(t *testing.T) {
	mk := func(id, title, brand string, price, discount float64) item.Item {
		it, err := item.New(id, "seller1", item.Attrs{
			Title: title, Brand: brand, Price: price, Discount: discount, StockQuantity: 10,
		}, testNow)
		require.NoError(t, err)
		return it
	}
	catalog := []item.Item{
		mk("c1", "Corsair RAM", "Corsair", 40, 0),
		mk("k1", "Kingston RAM", "Kingston", 30, 10),
	}

	q := NewQuery(stubItemRepo{items: catalog}, stubResolver{}, nil)
	res, err := q.Browse(context.Background(), Filter{Keyword: "ram", Brands: []string{"Kingston"}})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "k1", res.Cards[0].ID)
	assert.Equal(t, 27.0, res.Cards[0].EffectivePrice)
}

func TestBrowsePrefersLiveSource(t *testing.T) {
	live := fixture()[:1]
	q := NewQuery(stubItemRepo{items: fixture()}, nil, stubSource{items: live, ok: true})

	res, err := q.Browse(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, res.Cards, 1)

	// a stale source falls back to storage
	q = NewQuery(stubItemRepo{items: fixture()}, nil, stubSource{ok: false})
	res, err = q.Browse(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, res.Cards, 4)
}

func TestGetCardResolvesImageURLs(t *testing.T) {
	items := fixture()
	items[0].Images = []string{"items/corsair.png", "https://elsewhere.example.com/x.png"}
	q := NewQuery(stubItemRepo{items: items}, stubResolver{}, nil)

	card, err := q.GetCard(context.Background(), "corsair16")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, []string{
		"https://cdn.example.com/items/corsair.png",
		"https://elsewhere.example.com/x.png",
	}, card.ImageURLs)

	missing, err := q.GetCard(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
