// internal/application/query/catalog/filter.go
package catalog

import (
	"sort"
	"strings"

	"storefront/internal/domain/item"
	"storefront/internal/domain/pricing"
)

// HighRatingFloor is the rating threshold behind the "4 stars & up" toggle.
const HighRatingFloor = 4.0

// Sort orders the filtered grid. Sorting is stable: items with equal
// effective prices keep their catalog order.
type Sort string

const (
	SortNone       Sort = ""
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortRatingDesc Sort = "rating_desc"
)

// ParseSort accepts the wire spellings, defaulting to no sort.
func ParseSort(s string) Sort {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_asc", "asc":
		return SortPriceAsc
	case "price_desc", "desc":
		return SortPriceDesc
	case "rating_desc", "rating":
		return SortRatingDesc
	}
	return SortNone
}

// Filter is the composable grid filter. All populated criteria must match
// (AND); an empty multi-select means "no restriction", not "match nothing".
type Filter struct {
	// Keyword matches when every whitespace-separated token is a
	// case-insensitive substring of the item's title. Brand and spec
	// fields have their own multi-selects and stay out of the search.
	Keyword string

	// HighRatedOnly keeps items rated HighRatingFloor or above.
	HighRatedOnly bool

	// Brands / Capacities are multi-selects over exact field values.
	Brands     []string
	Capacities []string

	// MinPrice / MaxPrice bound the effective (discounted) price,
	// inclusive on both ends. nil means unbounded.
	MinPrice *float64
	MaxPrice *float64

	Sort Sort
}

// Apply filters and sorts a catalog snapshot. The input slice is not
// modified.
func Apply(items []item.Item, f Filter) []item.Item {
	tokens := keywordTokens(f.Keyword)
	brands := toSet(f.Brands)
	capacities := toSet(f.Capacities)

	out := make([]item.Item, 0, len(items))
	for _, it := range items {
		if !matchKeyword(it, tokens) {
			continue
		}
		if f.HighRatedOnly && it.Rating < HighRatingFloor {
			continue
		}
		if len(brands) > 0 && !brands[strings.ToLower(it.Brand)] {
			continue
		}
		if len(capacities) > 0 && !capacities[strings.ToLower(it.Capacity)] {
			continue
		}
		eff := pricing.Effective(it.Price, it.Discount)
		if f.MinPrice != nil && eff < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && eff > *f.MaxPrice {
			continue
		}
		out = append(out, it)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return pricing.Effective(out[i].Price, out[i].Discount) < pricing.Effective(out[j].Price, out[j].Discount)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return pricing.Effective(out[i].Price, out[i].Discount) > pricing.Effective(out[j].Price, out[j].Discount)
		})
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}
	return out
}

func keywordTokens(keyword string) []string {
	return strings.Fields(strings.ToLower(keyword))
}

func matchKeyword(it item.Item, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(it.Title)
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		set[v] = true
	}
	return set
}
