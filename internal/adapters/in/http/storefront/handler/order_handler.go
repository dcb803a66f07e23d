// internal/adapters/in/http/storefront/handler/order_handler.go
package storefrontHandler

import (
	"log"
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	ordersq "storefront/internal/application/query/orders"
	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
)

// OrderHandler serves buyer order history and seller fulfillment.
//
// Routes (suffix-matched under the mount point):
//
//	GET   .../me/orders                  buyer history
//	POST  .../me/orders/{id}/cancel      buyer cancel
//	GET   .../seller/orders              incoming orders
//	PATCH .../seller/orders/{id}/status  advance {"status": ...}
type OrderHandler struct {
	uc    *usecase.OrderUsecase
	query *ordersq.Query
}

func NewOrderHandler(uc *usecase.OrderUsecase, query *ordersq.Query) http.Handler {
	return &OrderHandler{uc: uc, query: query}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil || h.query == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}
	usr, ok := middleware.CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	isSeller := strings.Contains(path, "/seller/orders")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/me/orders"):
		h.handleBuyerHistory(w, r, usr.ID)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/cancel") && !isSeller:
		h.handleCancel(w, r, usr.ID, orderIDFromPath(path, "/cancel"))

	case r.Method == http.MethodGet && strings.HasSuffix(path, "/seller/orders"):
		h.handleSellerOrders(w, r, usr.ID)

	case r.Method == http.MethodPatch && strings.HasSuffix(path, "/status") && isSeller:
		h.handleAdvance(w, r, usr.ID, orderIDFromPath(path, "/status"))

	default:
		notFound(w)
	}
}

func (h *OrderHandler) handleBuyerHistory(w http.ResponseWriter, r *http.Request, buyerID string) {
	history, err := h.query.HistoryForBuyer(r.Context(), buyerID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": history})
}

func (h *OrderHandler) handleCancel(w http.ResponseWriter, r *http.Request, buyerID, orderID string) {
	if orderID == "" {
		writeErr(w, http.StatusBadRequest, "order id is required")
		return
	}
	o, err := h.uc.Cancel(r.Context(), buyerID, orderID)
	if err != nil {
		log.Printf("[order_handler] cancel failed order=%s buyer=%s err=%v", orderID, buyerID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleSellerOrders(w http.ResponseWriter, r *http.Request, sellerID string) {
	incoming, err := h.query.IncomingForSeller(r.Context(), sellerID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": incoming})
}

func (h *OrderHandler) handleAdvance(w http.ResponseWriter, r *http.Request, sellerID, orderID string) {
	if orderID == "" {
		writeErr(w, http.StatusBadRequest, "order id is required")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	next, err := orderdom.ParseStatus(req.Status)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	o, err := h.uc.Advance(r.Context(), sellerID, orderID, next)
	if err != nil {
		log.Printf("[order_handler] advance failed order=%s seller=%s next=%s err=%v", orderID, sellerID, next, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// orderIDFromPath extracts {id} from ".../orders/{id}<suffix>".
func orderIDFromPath(path, suffix string) string {
	return lastSegment(strings.TrimSuffix(path, suffix))
}
