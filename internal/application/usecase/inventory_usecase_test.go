// internal/application/usecase/inventory_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/item"
	"storefront/internal/domain/user"
)

func newInventoryFixture() (*InventoryUsecase, *fakeItemRepo) {
	items := newFakeItemRepo()
	users := newFakeUserRepo(
		user.User{ID: "seller1", Email: "s1@example.com", Role: user.RoleSeller},
		user.User{ID: "seller2", Email: "s2@example.com", Role: user.RoleSeller},
		user.User{ID: "buyer1", Email: "b1@example.com", Role: user.RoleBuyer},
		user.User{ID: "admin1", Email: "a1@example.com", Role: user.RoleAdmin},
	)
	return NewInventoryUsecase(items, users, fixedClock{fixedNow}), items
}

func TestInventoryCreate(t *testing.T) {
	u, items := newInventoryFixture()
	it, err := u.Create(context.Background(), "seller1", item.Attrs{
		Title: "Kingston Fury 8GB", Brand: "Kingston", Price: 30, Discount: 10, StockQuantity: 12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "seller1", it.SellerID)
	assert.Contains(t, items.byID, it.ID)
}

func TestInventoryCreateRejectsBuyer(t *testing.T) {
	u, _ := newInventoryFixture()
	_, err := u.Create(context.Background(), "buyer1", item.Attrs{Title: "x", Price: 1})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestInventoryUpdateOwnershipEnforced(t *testing.T) {
	u, items := newInventoryFixture()
	seedItem(items, "ram1", "seller1", 30, 0, 5)

	price := 25.0
	_, err := u.Update(context.Background(), "seller2", "ram1", item.Patch{Price: &price})
	assert.ErrorIs(t, err, item.ErrNotOwner)

	got, err := u.Update(context.Background(), "seller1", "ram1", item.Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.Price)
	assert.Equal(t, 25.0, items.byID["ram1"].Price)
}

func TestInventoryAdminMayEditAnyItem(t *testing.T) {
	u, items := newInventoryFixture()
	seedItem(items, "ram1", "seller1", 30, 0, 5)

	discount := 50.0
	got, err := u.Update(context.Background(), "admin1", "ram1", item.Patch{Discount: &discount})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Discount)
}

func TestInventorySetStock(t *testing.T) {
	u, items := newInventoryFixture()
	seedItem(items, "ram1", "seller1", 30, 0, 5)

	got, err := u.SetStock(context.Background(), "seller1", "ram1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	_, err = u.SetStock(context.Background(), "seller1", "ram1", -1)
	assert.True(t, item.IsValidation(err))
}

func TestInventoryDelete(t *testing.T) {
	u, items := newInventoryFixture()
	seedItem(items, "ram1", "seller1", 30, 0, 5)

	require.NoError(t, u.Delete(context.Background(), "seller1", "ram1"))
	assert.NotContains(t, items.byID, "ram1")

	err := u.Delete(context.Background(), "seller1", "ram1")
	assert.ErrorIs(t, err, item.ErrNotFound)
}

func TestInventoryListMine(t *testing.T) {
	u, items := newInventoryFixture()
	seedItem(items, "a", "seller1", 30, 0, 5)
	seedItem(items, "b", "seller2", 30, 0, 5)
	seedItem(items, "c", "seller1", 30, 0, 5)

	mine, err := u.ListMine(context.Background(), "seller1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].ID)
	assert.Equal(t, "c", mine[1].ID)
}

func TestInventoryUnknownSeller(t *testing.T) {
	u, _ := newInventoryFixture()
	_, err := u.Create(context.Background(), "ghost", item.Attrs{Title: "x", Price: 1})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

type fakeImageStore struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{uploaded: map[string][]byte{}}
}

func (s *fakeImageStore) Upload(_ context.Context, itemID, fileName, _ string, data []byte) (string, error) {
	p := itemID + "/" + fileName
	s.uploaded[p] = data
	return p, nil
}

func (s *fakeImageStore) Delete(_ context.Context, objectPath string) error {
	s.deleted = append(s.deleted, objectPath)
	return nil
}

func TestInventoryAttachImage(t *testing.T) {
	u, items := newInventoryFixture()
	store := newFakeImageStore()
	u.WithImages(store)
	seedItem(items, "ram1", "seller1", 30, 0, 5)

	it, err := u.AttachImage(context.Background(), "seller1", "ram1", "front.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []string{"ram1/front.png"}, it.Images)
	assert.Contains(t, store.uploaded, "ram1/front.png")
}

func TestInventoryAttachImageRequiresStore(t *testing.T) {
	u, items := newInventoryFixture()
	seedItem(items, "ram1", "seller1", 30, 0, 5)

	_, err := u.AttachImage(context.Background(), "seller1", "ram1", "front.png", "image/png", []byte{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInventoryDeleteCleansUpImages(t *testing.T) {
	u, items := newInventoryFixture()
	store := newFakeImageStore()
	u.WithImages(store)

	it := seedItem(items, "ram1", "seller1", 30, 0, 5)
	it.Images = []string{"ram1/a.png", "https://cdn.example.com/b.png"}
	items.byID["ram1"] = it

	require.NoError(t, u.Delete(context.Background(), "seller1", "ram1"))
	assert.Equal(t, []string{"ram1/a.png"}, store.deleted)
}
