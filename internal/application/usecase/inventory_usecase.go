// internal/application/usecase/inventory_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain/item"
	"storefront/internal/domain/user"
)

// ItemImageStore keeps item image binaries in object storage. Upload
// returns the object path the item doc stores in its images array.
type ItemImageStore interface {
	Upload(ctx context.Context, itemID, fileName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// InventoryUsecase is the seller-side catalog surface: create, edit and
// retire items. Every mutation checks ownership against the stored doc,
// never against client input.
type InventoryUsecase struct {
	items  item.Repository
	users  user.Repository
	images ItemImageStore
	clock  Clock
}

func NewInventoryUsecase(items item.Repository, users user.Repository, clock Clock) *InventoryUsecase {
	if clock == nil {
		clock = SystemClock()
	}
	return &InventoryUsecase{items: items, users: users, clock: clock}
}

// WithImages enables image upload/cleanup through store.
func (u *InventoryUsecase) WithImages(store ItemImageStore) *InventoryUsecase {
	u.images = store
	return u
}

// Create registers a new item owned by sellerID.
func (u *InventoryUsecase) Create(ctx context.Context, sellerID string, attrs item.Attrs) (*item.Item, error) {
	seller, err := u.requireSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	it, err := u.items.Create(ctx, seller.ID, attrs)
	if err != nil {
		return nil, err
	}
	log.Printf("[inventory] created item=%s seller=%s", it.ID, seller.ID)
	return it, nil
}

// Update applies a partial edit to an owned item.
func (u *InventoryUsecase) Update(ctx context.Context, sellerID, itemID string, patch item.Patch) (*item.Item, error) {
	seller, err := u.requireSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	it, err := u.owned(ctx, seller, itemID)
	if err != nil {
		return nil, err
	}
	if err := it.Apply(patch, u.clock.Now()); err != nil {
		return nil, err
	}
	if err := u.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// SetStock replaces the absolute stock quantity.
func (u *InventoryUsecase) SetStock(ctx context.Context, sellerID, itemID string, qty int) (*item.Item, error) {
	return u.Update(ctx, sellerID, itemID, item.Patch{StockQuantity: &qty})
}

// Delete removes an owned item. Membership lists keep the dangling id and
// materialize it as unavailable; past orders keep their id snapshots.
func (u *InventoryUsecase) Delete(ctx context.Context, sellerID, itemID string) error {
	seller, err := u.requireSeller(ctx, sellerID)
	if err != nil {
		return err
	}
	it, err := u.owned(ctx, seller, itemID)
	if err != nil {
		return err
	}
	if err := u.items.Delete(ctx, it.ID); err != nil {
		return err
	}
	u.cleanupImages(ctx, it)
	log.Printf("[inventory] deleted item=%s seller=%s", it.ID, seller.ID)
	return nil
}

// AttachImage uploads an image binary and appends its object path to the
// item's images array.
func (u *InventoryUsecase) AttachImage(ctx context.Context, sellerID, itemID, fileName, contentType string, data []byte) (*item.Item, error) {
	if u.images == nil {
		return nil, ErrInvalidArgument
	}
	seller, err := u.requireSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	it, err := u.owned(ctx, seller, itemID)
	if err != nil {
		return nil, err
	}
	objectPath, err := u.images.Upload(ctx, it.ID, fileName, contentType, data)
	if err != nil {
		return nil, err
	}

	images := append(append([]string(nil), it.Images...), objectPath)
	it2, err := u.Update(ctx, sellerID, itemID, item.Patch{Images: &images})
	if err != nil {
		// orphaned object, remove it
		_ = u.images.Delete(ctx, objectPath)
		return nil, err
	}
	log.Printf("[inventory] attached image item=%s path=%s", it.ID, objectPath)
	return it2, nil
}

// cleanupImages is best effort: stored object paths are removed, absolute
// URLs are left alone.
func (u *InventoryUsecase) cleanupImages(ctx context.Context, it *item.Item) {
	if u.images == nil || it == nil {
		return
	}
	for _, img := range it.Images {
		p := strings.TrimSpace(img)
		if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			continue
		}
		if err := u.images.Delete(ctx, p); err != nil {
			log.Printf("[inventory] image cleanup failed item=%s path=%s err=%v", it.ID, p, err)
		}
	}
}

// ListMine returns the seller's own items.
func (u *InventoryUsecase) ListMine(ctx context.Context, sellerID string) ([]item.Item, error) {
	seller, err := u.requireSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return u.items.ListBySeller(ctx, seller.ID)
}

func (u *InventoryUsecase) requireSeller(ctx context.Context, sellerID string) (*user.User, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, ErrNotAuthenticated
	}
	usr, err := u.users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, user.ErrNotFound
	}
	if !usr.CanSell() {
		return nil, ErrForbidden
	}
	return usr, nil
}

func (u *InventoryUsecase) owned(ctx context.Context, seller *user.User, itemID string) (*item.Item, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, ErrInvalidArgument
	}
	it, err := u.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, item.ErrNotFound
	}
	if it.SellerID != seller.ID && seller.Role != user.RoleAdmin {
		return nil, item.ErrNotOwner
	}
	return it, nil
}
