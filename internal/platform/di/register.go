// internal/platform/di/register.go
package di

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront/internal/adapters/in/http/middleware"
	storefronthttp "storefront/internal/adapters/in/http/storefront"
	storefrontHandler "storefront/internal/adapters/in/http/storefront/handler"
)

// notImplemented returns a non-nil handler (so deps are never nil) for
// endpoints that are not wired yet.
func notImplemented(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "not_implemented",
			"name":  name,
		})
	})
}

// requireAuth wraps h with the auth middleware (fail-closed).
// If the middleware is not initialized, it returns 503 so the bug is obvious.
func requireAuth(mw *middleware.Auth, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[di.register] ERROR: auth middleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// authForMutations leaves GET requests public and requires auth for
// everything else. Used for review routes: listing is public, submitting
// and replying are not.
func authForMutations(mw *middleware.Auth, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	authed := requireAuth(mw, h, name)
	public := h
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			public.ServeHTTP(w, r)
			return
		}
		authed.ServeHTTP(w, r)
	})
}

// Register registers storefront routes onto mux.
// Pure DI: construct handlers and pass into the storefront router.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	// ------------------------------------------------------------
	// Auth middleware
	// ------------------------------------------------------------
	authMW := &middleware.Auth{Users: cont.UserRepo}
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		authMW.FirebaseAuth = cont.Infra.FirebaseAuth
	} else {
		// fail-closed in requireAuth
		log.Printf("[di.register] WARN: FirebaseAuth is nil (protected endpoints will return 503)")
	}

	// ----------------------------
	// Handlers (construct only)
	// ----------------------------
	catalogH := notImplemented("Catalog")
	membershipH := notImplemented("Membership")
	checkoutH := notImplemented("Checkout")
	ordersH := notImplemented("Order")
	inventoryH := notImplemented("Inventory")
	reviewsH := notImplemented("Review")

	if cont.CatalogQ != nil {
		catalogH = storefrontHandler.NewCatalogHandler(cont.CatalogQ)
	}
	if cont.MembershipUC != nil {
		membershipH = storefrontHandler.NewMembershipHandler(cont.MembershipUC)
	}
	if cont.CheckoutUC != nil {
		checkoutH = storefrontHandler.NewCheckoutHandler(cont.CheckoutUC)
	}
	if cont.OrderUC != nil && cont.OrdersQ != nil {
		ordersH = storefrontHandler.NewOrderHandler(cont.OrderUC, cont.OrdersQ)
	}
	if cont.InventoryUC != nil {
		inventoryH = storefrontHandler.NewInventoryHandler(cont.InventoryUC)
	}
	if cont.ReviewUC != nil {
		reviewsH = storefrontHandler.NewReviewHandler(cont.ReviewUC)
	}

	// ------------------------------------------------------------
	// Apply auth to all protected handlers
	// ------------------------------------------------------------
	membershipH = requireAuth(authMW, membershipH, "Membership")
	checkoutH = requireAuth(authMW, checkoutH, "Checkout")
	ordersH = requireAuth(authMW, ordersH, "Order")
	inventoryH = requireAuth(authMW, inventoryH, "Inventory")
	reviewsH = authForMutations(authMW, reviewsH, "Review")

	// ----------------------------
	// Router deps
	// ----------------------------
	deps := storefronthttp.Deps{
		Catalog: catalogH,

		Membership: membershipH,
		Checkout:   checkoutH,
		Orders:     ordersH,

		Inventory:    inventoryH,
		SellerOrders: ordersH,

		Reviews: reviewsH,
	}

	storefronthttp.Register(mux, deps)
	log.Printf("[boot] storefront routes registered")
}
