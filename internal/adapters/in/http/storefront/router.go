// internal/adapters/in/http/storefront/router.go
package storefront

import (
	"log"
	"net/http"
)

// Deps is the buyer/seller-facing handler set.
type Deps struct {
	// public
	Catalog http.Handler

	// authenticated (buyer side)
	Membership http.Handler
	Checkout   http.Handler
	Orders     http.Handler

	// authenticated (seller side)
	Inventory    http.Handler
	SellerOrders http.Handler

	// mixed: list is public, submit/reply require auth
	Reviews http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[storefront.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// catalog (public)
	handleSafe(mux, "/storefront/catalog", deps.Catalog, "Catalog")
	handleSafe(mux, "/storefront/catalog/", deps.Catalog, "Catalog")

	// cart / wishlist / compare
	handleSafe(mux, "/storefront/me/cart", deps.Membership, "Membership(cart)")
	handleSafe(mux, "/storefront/me/cart/", deps.Membership, "Membership(cart)")
	handleSafe(mux, "/storefront/me/wishlist", deps.Membership, "Membership(wishlist)")
	handleSafe(mux, "/storefront/me/wishlist/", deps.Membership, "Membership(wishlist)")
	handleSafe(mux, "/storefront/me/compare", deps.Membership, "Membership(compare)")
	handleSafe(mux, "/storefront/me/compare/", deps.Membership, "Membership(compare)")

	// checkout
	handleSafe(mux, "/storefront/me/checkout", deps.Checkout, "Checkout")

	// buyer order history
	handleSafe(mux, "/storefront/me/orders", deps.Orders, "Order(me)")
	handleSafe(mux, "/storefront/me/orders/", deps.Orders, "Order(me)")

	// seller item CRUD + fulfillment
	handleSafe(mux, "/storefront/seller/items", deps.Inventory, "Inventory")
	handleSafe(mux, "/storefront/seller/items/", deps.Inventory, "Inventory")
	handleSafe(mux, "/storefront/seller/orders", deps.SellerOrders, "Order(seller)")
	handleSafe(mux, "/storefront/seller/orders/", deps.SellerOrders, "Order(seller)")

	// reviews: /storefront/items/{id}/reviews and /storefront/reviews/{id}/reply
	handleSafe(mux, "/storefront/items/", deps.Reviews, "Review")
	handleSafe(mux, "/storefront/reviews/", deps.Reviews, "Review(reply)")

	log.Printf("[storefront.router] routes registered")
}
