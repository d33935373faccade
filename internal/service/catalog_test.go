package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pricelist/internal/imaging"
	"github.com/Skotchmaster/pricelist/internal/models"
	"github.com/Skotchmaster/pricelist/internal/repo"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3, 4}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Category{}, &models.Item{}, &models.AdminSession{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newCatalogService(t *testing.T) *CatalogService {
	return &CatalogService{
		Repo:         &repo.GormRepo{DB: InitTestDB(t)},
		MaxIconBytes: 1 << 20,
	}
}

func createItemInput(categoryID, name, price string) CreateItemInput {
	return CreateItemInput{
		CategoryID: categoryID,
		Name:       name,
		Price:      price,
		IconBytes:  pngBytes,
		IconMIME:   "image/png",
	}
}

func TestCreateCategory(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "  Hair  ")
	require.NoError(t, err)
	require.Equal(t, "Hair", category.Name)
	require.NotEmpty(t, category.ID)

	_, err = svc.CreateCategory(ctx, "   ")
	require.ErrorIs(t, err, ErrNameRequired)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Hair")
	require.ErrorIs(t, err, ErrDuplicateCategory)

	_, err = svc.CreateCategory(ctx, " Hair ")
	require.ErrorIs(t, err, ErrDuplicateCategory)

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestGetCategoriesSorted(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	for _, name := range []string{"Packs", "Cloaks", "Hair"} {
		_, err := svc.CreateCategory(ctx, name)
		require.NoError(t, err)
	}

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	require.Equal(t, "Cloaks", categories[0].Name)
	require.Equal(t, "Hair", categories[1].Name)
	require.Equal(t, "Packs", categories[2].Name)
}

func TestDeleteCategoryGuard(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, createItemInput(category.ID, "Pacman Hair", "60,000-100,000"))
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, category.ID)
	require.ErrorIs(t, err, ErrCategoryHasItems)
	require.Equal(t, "Category has items. Delete items first.", err.Error())

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	err = svc.DeleteCategory(ctx, category.ID)
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateItem(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, createItemInput(category.ID, " Pacman Hair ", " 60,000-100,000 "))
	require.NoError(t, err)
	require.Equal(t, "Pacman Hair", item.Name)
	require.Equal(t, "60,000-100,000", item.Price)
	require.Equal(t, category.ID, item.CategoryID)

	items, err := svc.GetItems(ctx, category.ID, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, item.ID, items[0].ID)
}

func TestCreateItemValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, createItemInput("", "Pacman Hair", "1"))
	require.ErrorIs(t, err, ErrCategoryRequired)

	_, err = svc.CreateItem(ctx, createItemInput(category.ID, "  ", "1"))
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.CreateItem(ctx, createItemInput(category.ID, "Pacman Hair", ""))
	require.ErrorIs(t, err, ErrPriceRequired)

	in := createItemInput(category.ID, "Pacman Hair", "1")
	in.IconBytes = nil
	_, err = svc.CreateItem(ctx, in)
	require.ErrorIs(t, err, imaging.ErrMissingPayload)

	in = createItemInput(category.ID, "Pacman Hair", "1")
	in.IconMIME = "application/pdf"
	_, err = svc.CreateItem(ctx, in)
	require.ErrorIs(t, err, imaging.ErrUnsupportedMediaType)

	_, err = svc.CreateItem(ctx, createItemInput("no-such-category", "Pacman Hair", "1"))
	require.ErrorIs(t, err, ErrCategoryNotFound)

	items, err := svc.GetItems(ctx, "", "")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestGetItemsFilter(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	hair, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)
	eyes, err := svc.CreateCategory(ctx, "Eyes")
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, createItemInput(hair.ID, "Pacman Hair", "60,000-100,000"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, createItemInput(eyes.ID, "Pacman Eyes", "60,000-100,000"))
	require.NoError(t, err)

	items, err := svc.GetItems(ctx, "", "hair")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Pacman Hair", items[0].Name)

	items, err = svc.GetItems(ctx, "", "HAIR")
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.GetItems(ctx, eyes.ID, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Pacman Eyes", items[0].Name)

	items, err = svc.GetItems(ctx, eyes.ID, "hair")
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = svc.GetItems(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Pacman Eyes", items[0].Name)
	require.Equal(t, "Pacman Hair", items[1].Name)
}

func TestUpdateItem(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	hair, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)
	cloaks, err := svc.CreateCategory(ctx, "Cloaks")
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, createItemInput(hair.ID, "Pacman Hair", "60,000-100,000"))
	require.NoError(t, err)
	originalIcon := item.IconDataURL

	updated, err := svc.UpdateItem(ctx, item.ID, CreateItemInput{
		CategoryID: cloaks.ID,
		Name:       "Pacman Cloak",
		Price:      "120,000",
	})
	require.NoError(t, err)
	require.Equal(t, "Pacman Cloak", updated.Name)
	require.Equal(t, "120,000", updated.Price)
	require.Equal(t, cloaks.ID, updated.CategoryID)
	require.Equal(t, originalIcon, updated.IconDataURL)

	newIcon := []byte{0xff, 0xd8, 0xff, 0xe0, 9, 9}
	updated, err = svc.UpdateItem(ctx, item.ID, CreateItemInput{
		CategoryID: cloaks.ID,
		Name:       "Pacman Cloak",
		Price:      "120,000",
		IconBytes:  newIcon,
		IconMIME:   "image/jpeg",
	})
	require.NoError(t, err)
	require.NotEqual(t, originalIcon, updated.IconDataURL)
	require.True(t, strings.HasPrefix(updated.IconDataURL, "data:image/jpeg;base64,"))

	_, err = svc.UpdateItem(ctx, "no-such-item", CreateItemInput{
		CategoryID: cloaks.ID,
		Name:       "x",
		Price:      "1",
	})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestIconRoundTrip(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, createItemInput(category.ID, "Pacman Hair", "1"))
	require.NoError(t, err)

	payload := strings.TrimPrefix(item.IconDataURL, "data:image/png;base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	require.True(t, bytes.Equal(pngBytes, decoded))
}

func TestDeleteItem(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Hair")
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, createItemInput(category.ID, "Pacman Hair", "1"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	require.ErrorIs(t, svc.DeleteItem(ctx, item.ID), ErrItemNotFound)
}
