// internal/adapters/in/http/storefront/handler/inventory_handler.go
package storefrontHandler

import (
	"io"
	"log"
	"net/http"
	"strings"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	itemdom "storefront/internal/domain/item"
)

// InventoryHandler serves the seller item CRUD.
//
// Routes (suffix-matched under the mount point):
//
//	GET    .../seller/items              list own items
//	POST   .../seller/items              create
//	PATCH  .../seller/items/{id}         partial update
//	DELETE .../seller/items/{id}         delete
//	POST   .../seller/items/{id}/images  upload image (multipart "file")
type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

func NewInventoryHandler(uc *usecase.InventoryUsecase) http.Handler {
	return &InventoryHandler{uc: uc}
}

type itemCreateReq struct {
	Title         string   `json:"title"`
	Brand         string   `json:"brand"`
	Speed         string   `json:"speed"`
	Capacity      string   `json:"capacity"`
	Price         float64  `json:"price"`
	Discount      float64  `json:"discount"`
	StockQuantity int      `json:"stockQuantity"`
	Images        []string `json:"images"`
}

type itemPatchReq struct {
	Title         *string   `json:"title"`
	Brand         *string   `json:"brand"`
	Speed         *string   `json:"speed"`
	Capacity      *string   `json:"capacity"`
	Price         *float64  `json:"price"`
	Discount      *float64  `json:"discount"`
	StockQuantity *int      `json:"stockQuantity"`
	Images        *[]string `json:"images"`
}

func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "inventory handler is not configured")
		return
	}
	usr, ok := middleware.CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	onCollection := strings.HasSuffix(path, "/seller/items")

	switch {
	case r.Method == http.MethodGet && onCollection:
		h.handleList(w, r, usr.ID)
	case r.Method == http.MethodPost && onCollection:
		h.handleCreate(w, r, usr.ID)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/images"):
		h.handleUploadImage(w, r, usr.ID, lastSegment(strings.TrimSuffix(path, "/images")))
	case r.Method == http.MethodPatch && !onCollection:
		h.handlePatch(w, r, usr.ID, lastSegment(path))
	case r.Method == http.MethodDelete && !onCollection:
		h.handleDelete(w, r, usr.ID, lastSegment(path))
	default:
		methodNotAllowed(w)
	}
}

func (h *InventoryHandler) handleList(w http.ResponseWriter, r *http.Request, sellerID string) {
	items, err := h.uc.ListMine(r.Context(), sellerID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *InventoryHandler) handleCreate(w http.ResponseWriter, r *http.Request, sellerID string) {
	var req itemCreateReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	it, err := h.uc.Create(r.Context(), sellerID, itemdom.Attrs{
		Title:         req.Title,
		Brand:         req.Brand,
		Speed:         req.Speed,
		Capacity:      req.Capacity,
		Price:         req.Price,
		Discount:      req.Discount,
		StockQuantity: req.StockQuantity,
		Images:        req.Images,
	})
	if err != nil {
		log.Printf("[inventory_handler] create failed seller=%s err=%v", sellerID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *InventoryHandler) handlePatch(w http.ResponseWriter, r *http.Request, sellerID, itemID string) {
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "item id is required")
		return
	}
	var req itemPatchReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	it, err := h.uc.Update(r.Context(), sellerID, itemID, itemdom.Patch{
		Title:         req.Title,
		Brand:         req.Brand,
		Speed:         req.Speed,
		Capacity:      req.Capacity,
		Price:         req.Price,
		Discount:      req.Discount,
		StockQuantity: req.StockQuantity,
		Images:        req.Images,
	})
	if err != nil {
		log.Printf("[inventory_handler] patch failed seller=%s item=%s err=%v", sellerID, itemID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

const maxImageUploadBytes = 8 << 20

func (h *InventoryHandler) handleUploadImage(w http.ResponseWriter, r *http.Request, sellerID, itemID string) {
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "item id is required")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "form field 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeErr(w, http.StatusBadRequest, "empty upload")
		return
	}

	it, err := h.uc.AttachImage(r.Context(), sellerID, itemID, hdr.Filename, hdr.Header.Get("Content-Type"), data)
	if err != nil {
		log.Printf("[inventory_handler] image upload failed seller=%s item=%s err=%v", sellerID, itemID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *InventoryHandler) handleDelete(w http.ResponseWriter, r *http.Request, sellerID, itemID string) {
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "item id is required")
		return
	}
	if err := h.uc.Delete(r.Context(), sellerID, itemID); err != nil {
		log.Printf("[inventory_handler] delete failed seller=%s item=%s err=%v", sellerID, itemID, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": itemID})
}
