// internal/adapters/in/http/storefront/handler/review_handler.go
package storefrontHandler

import (
	"log"
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

// ReviewHandler serves item reviews and seller replies.
//
// Routes (suffix-matched under the mount point):
//
//	GET  .../items/{id}/reviews     list (public)
//	POST .../items/{id}/reviews     submit {"rating": ..., "comment": ...}
//	POST .../reviews/{id}/reply     seller reply {"reply": ...}
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) http.Handler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "review handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/reviews"):
		h.handleList(w, r, itemIDFromReviewPath(path))

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/reviews"):
		h.handleSubmit(w, r, itemIDFromReviewPath(path))

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/reply"):
		h.handleReply(w, r, lastSegment(strings.TrimSuffix(path, "/reply")))

	default:
		notFound(w)
	}
}

func (h *ReviewHandler) handleList(w http.ResponseWriter, r *http.Request, itemID string) {
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "item id is required")
		return
	}
	reviews, err := h.uc.ListByItem(r.Context(), itemID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *ReviewHandler) handleSubmit(w http.ResponseWriter, r *http.Request, itemID string) {
	usr, ok := middleware.CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "item id is required")
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rv, err := h.uc.Submit(r.Context(), usr.ID, itemID, req.Rating, req.Comment)
	if err != nil {
		log.Printf("[review_handler] submit failed item=%s buyer=%s err=%v", itemID, usr.ID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) handleReply(w http.ResponseWriter, r *http.Request, reviewID string) {
	usr, ok := middleware.CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if reviewID == "" {
		writeErr(w, http.StatusBadRequest, "review id is required")
		return
	}
	var req struct {
		Reply string `json:"reply"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rv, err := h.uc.Reply(r.Context(), usr.ID, reviewID, req.Reply)
	if err != nil {
		log.Printf("[review_handler] reply failed review=%s seller=%s err=%v", reviewID, usr.ID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

// itemIDFromReviewPath extracts {id} from ".../items/{id}/reviews".
func itemIDFromReviewPath(path string) string {
	return lastSegment(strings.TrimSuffix(path, "/reviews"))
}
