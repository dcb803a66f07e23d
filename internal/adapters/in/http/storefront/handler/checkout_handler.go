// internal/adapters/in/http/storefront/handler/checkout_handler.go
package storefrontHandler

import (
	"log"
	"net/http"
	"time"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

// CheckoutHandler converts the authenticated user's cart into orders.
//
//	POST .../checkout
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	usr, ok := middleware.CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	start := time.Now()
	orders, err := h.uc.Checkout(r.Context(), usr.ID)
	if err != nil {
		log.Printf("[checkout_handler] checkout failed user=%s err=%v elapsed=%s", usr.ID, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[checkout_handler] checkout ok user=%s orders=%d elapsed=%s", usr.ID, len(orders), time.Since(start))
	writeJSON(w, http.StatusCreated, map[string]any{"orders": orders})
}
