// internal/domain/membership/entity.go
package membership

import (
	"errors"
	"strings"
)

var (
	ErrInvalidItemID = errors.New("membership: invalid item id")
	ErrCompareFull   = errors.New("membership: compare list is full")
	ErrUnknownList   = errors.New("membership: unknown list")
)

// CompareLimit bounds the side-by-side comparison set.
const CompareLimit = 4

// List names the three per-user membership lists. Each is persisted as an
// array field of the same name on the user doc.
type List string

const (
	ListCart     List = "cart"
	ListWishlist List = "wishlist"
	ListCompare  List = "compare"
)

// ParseList accepts the list field names case-insensitively.
func ParseList(s string) (List, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cart":
		return ListCart, nil
	case "wishlist":
		return ListWishlist, nil
	case "compare":
		return ListCompare, nil
	}
	return "", ErrUnknownList
}

// Field returns the user-doc field holding this list's id array.
func (l List) Field() string { return string(l) }

// AllowsDuplicates reports the list's duplicate policy: the cart is a
// multiset (repetition encodes quantity), wishlist and compare are sets.
func (l List) AllowsDuplicates() bool { return l == ListCart }

// ----------------------------
// Pure id-array operations
// ----------------------------

// Append adds id to the cart multiset (+1 quantity).
func Append(ids []string, id string) ([]string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidItemID
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id), nil
}

// AddUnique adds id if absent. The second return reports whether the
// array changed (false = idempotent no-op).
func AddUnique(ids []string, id string) ([]string, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false, ErrInvalidItemID
	}
	for _, v := range ids {
		if v == id {
			return ids, false, nil
		}
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id), true, nil
}

// AddCompare is AddUnique with the CompareLimit cap.
func AddCompare(ids []string, id string) ([]string, bool, error) {
	out, changed, err := AddUnique(ids, id)
	if err != nil {
		return nil, false, err
	}
	if changed && len(out) > CompareLimit {
		return nil, false, ErrCompareFull
	}
	return out, changed, nil
}

// RemoveOne removes the first occurrence of id (-1 quantity for the cart).
// Removing an absent id is a no-op, not an error.
func RemoveOne(ids []string, id string) ([]string, bool) {
	id = strings.TrimSpace(id)
	for i, v := range ids {
		if v == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}

// RemoveAll removes every occurrence of id.
func RemoveAll(ids []string, id string) ([]string, bool) {
	id = strings.TrimSpace(id)
	out := make([]string, 0, len(ids))
	removed := false
	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}

// Contains reports membership of id in the raw array.
func Contains(ids []string, id string) bool {
	id = strings.TrimSpace(id)
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Entry is one aggregated line of a materialized multiset: a distinct item
// id with its occurrence count, ordered by first appearance.
type Entry struct {
	ItemID string
	Qty    int
}

// Quantities aggregates a raw id array into entries.
func Quantities(ids []string) []Entry {
	out := make([]Entry, 0, len(ids))
	index := make(map[string]int, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if i, ok := index[id]; ok {
			out[i].Qty++
			continue
		}
		index[id] = len(out)
		out = append(out, Entry{ItemID: id, Qty: 1})
	}
	return out
}
