// internal/adapters/in/http/storefront/handler/catalog_handler.go
package storefrontHandler

import (
	"log"
	"net/http"
	"strings"

	catalogq "storefront/internal/application/query/catalog"
)

// CatalogHandler serves the public storefront grid. No auth required.
//
// Routes (suffix-matched under the mount point):
//
//	GET .../catalog             grid with filters
//	GET .../catalog/items/{id}  detail card
type CatalogHandler struct {
	query *catalogq.Query
}

func NewCatalogHandler(query *catalogq.Query) http.Handler {
	return &CatalogHandler{query: query}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.query == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	if strings.Contains(path, "/catalog/items/") {
		h.handleDetail(w, r, lastSegment(path))
		return
	}
	if strings.HasSuffix(path, "/catalog") || path == "" {
		h.handleBrowse(w, r)
		return
	}
	notFound(w)
}

func (h *CatalogHandler) handleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalogq.Filter{
		Keyword:       q.Get("q"),
		HighRatedOnly: q.Get("highRated") == "true" || q.Get("highRated") == "1",
		Brands:        q["brand"],
		Capacities:    q["capacity"],
		MinPrice:      parseFloatPtr(q.Get("minPrice")),
		MaxPrice:      parseFloatPtr(q.Get("maxPrice")),
		Sort:          catalogq.ParseSort(q.Get("sort")),
	}

	res, err := h.query.Browse(r.Context(), filter)
	if err != nil {
		log.Printf("[catalog_handler] browse failed: %v", err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) handleDetail(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		writeErr(w, http.StatusBadRequest, "item id is required")
		return
	}
	card, err := h.query.GetCard(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if card == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
