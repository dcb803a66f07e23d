// internal/adapters/in/http/storefront/handler/membership_handler.go
package storefrontHandler

import (
	"log"
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	memdom "storefront/internal/domain/membership"
)

// MembershipHandler serves the authenticated cart / wishlist / compare
// endpoints. The user id always comes from the verified token, never from
// the payload.
//
// Routes (suffix-matched under the mount point):
//
//	GET    .../me/{cart|wishlist|compare}        materialized view
//	DELETE .../me/{cart|wishlist|compare}        clear the list
//	POST   .../me/{cart|wishlist|compare}/items  add {"itemId": ...}
//	DELETE .../me/{cart|wishlist|compare}/items  remove {"itemId": ..., "all": bool}
//	PUT    .../me/wishlist/items                 toggle {"itemId": ...}
type MembershipHandler struct {
	uc *usecase.MembershipUsecase
}

func NewMembershipHandler(uc *usecase.MembershipUsecase) http.Handler {
	return &MembershipHandler{uc: uc}
}

type membershipItemReq struct {
	ItemID string `json:"itemId"`
	All    bool   `json:"all,omitempty"`
}

func (h *MembershipHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "membership handler is not configured")
		return
	}
	usr, ok := middleware.CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	list, isItems, ok := parseListPath(path)
	if !ok {
		notFound(w)
		return
	}

	if !isItems {
		switch r.Method {
		case http.MethodGet:
		case http.MethodDelete:
			if err := h.uc.Clear(r.Context(), usr.ID, list); err != nil {
				log.Printf("[membership_handler] clear %s list=%s err=%v", path, list, err)
				writeDomainErr(w, err)
				return
			}
		default:
			methodNotAllowed(w)
			return
		}
		view, err := h.uc.View(r.Context(), usr.ID, list)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
		return
	}

	var req membershipItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "itemId is required")
		return
	}

	var err error
	switch {
	case r.Method == http.MethodPost:
		err = h.add(r, usr.ID, list, itemID)
	case r.Method == http.MethodDelete:
		err = h.remove(r, usr.ID, list, itemID, req.All)
	case r.Method == http.MethodPut && list == memdom.ListWishlist:
		_, err = h.uc.ToggleWishlist(r.Context(), usr.ID, itemID)
	default:
		methodNotAllowed(w)
		return
	}
	if err != nil {
		log.Printf("[membership_handler] %s %s list=%s item=%s err=%v", r.Method, path, list, itemID, err)
		writeDomainErr(w, err)
		return
	}

	view, err := h.uc.View(r.Context(), usr.ID, list)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *MembershipHandler) add(r *http.Request, userID string, list memdom.List, itemID string) error {
	switch list {
	case memdom.ListCart:
		return h.uc.AddToCart(r.Context(), userID, itemID)
	case memdom.ListWishlist:
		return h.uc.AddToWishlist(r.Context(), userID, itemID)
	case memdom.ListCompare:
		return h.uc.AddToCompare(r.Context(), userID, itemID)
	}
	return memdom.ErrUnknownList
}

func (h *MembershipHandler) remove(r *http.Request, userID string, list memdom.List, itemID string, all bool) error {
	switch list {
	case memdom.ListCart:
		if all {
			return h.uc.RemoveLineFromCart(r.Context(), userID, itemID)
		}
		return h.uc.RemoveFromCart(r.Context(), userID, itemID)
	case memdom.ListWishlist:
		return h.uc.RemoveFromWishlist(r.Context(), userID, itemID)
	case memdom.ListCompare:
		return h.uc.RemoveFromCompare(r.Context(), userID, itemID)
	}
	return memdom.ErrUnknownList
}

// parseListPath maps ".../me/<list>" and ".../me/<list>/items" onto the
// list name and whether the items subresource was addressed.
func parseListPath(path string) (memdom.List, bool, bool) {
	isItems := false
	if strings.HasSuffix(path, "/items") {
		isItems = true
		path = strings.TrimSuffix(path, "/items")
	}
	list, err := memdom.ParseList(lastSegment(path))
	if err != nil {
		return "", false, false
	}
	return list, isItems, true
}
