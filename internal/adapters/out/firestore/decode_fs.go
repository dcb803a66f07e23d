// internal/adapters/out/firestore/decode_fs.go
package firestore

import (
	"strings"
	"time"
)

// Loose decoding helpers. Doc fields written by older clients may carry a
// different numeric type or be missing entirely; readers go through these
// instead of DataTo so a shape drift never turns into a 500.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		s := strings.TrimSpace(asString(e))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}
