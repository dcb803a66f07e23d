// internal/adapters/in/http/storefront/handler/helper_handler.go
package storefrontHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	usecase "storefront/internal/application/usecase"
	itemdom "storefront/internal/domain/item"
	memdom "storefront/internal/domain/membership"
	orderdom "storefront/internal/domain/order"
	reviewdom "storefront/internal/domain/review"
	userdom "storefront/internal/domain/user"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func parseFloatPtr(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// lastSegment returns the final non-empty path segment, or "".
func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(path[i+1:])
}

// ============================================================
// Error mapping
// ============================================================

// writeDomainErr maps domain and usecase errors onto HTTP statuses. Anything
// unmapped is a 500 with the error text.
func writeDomainErr(w http.ResponseWriter, err error) {
	if err == nil {
		writeErr(w, http.StatusInternalServerError, "unknown error")
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotAuthenticated):
		writeErr(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, itemdom.ErrNotOwner),
		errors.Is(err, orderdom.ErrNotOwner):
		writeErr(w, http.StatusForbidden, err.Error())

	case errors.Is(err, itemdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, reviewdom.ErrNotFound),
		errors.Is(err, userdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())

	case errors.Is(err, orderdom.ErrInsufficientStock),
		errors.Is(err, orderdom.ErrItemUnavailable):
		writeErr(w, http.StatusConflict, err.Error())

	case errors.Is(err, orderdom.ErrEmptyCart),
		errors.Is(err, orderdom.ErrInvalidTransition),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, memdom.ErrCompareFull),
		errors.Is(err, memdom.ErrInvalidItemID),
		errors.Is(err, memdom.ErrUnknownList),
		errors.Is(err, reviewdom.ErrInvalidRating),
		errors.Is(err, reviewdom.ErrInvalidReply),
		errors.Is(err, usecase.ErrInvalidArgument),
		itemdom.IsValidation(err):
		writeErr(w, http.StatusBadRequest, err.Error())

	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
