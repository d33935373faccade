package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pricelist/internal/imaging"
	"github.com/Skotchmaster/pricelist/internal/models"
	"github.com/Skotchmaster/pricelist/internal/repo"
)

type CatalogService struct {
	Repo         *repo.GormRepo
	MaxIconBytes int64
}

type CreateItemInput struct {
	CategoryID string
	Name       string
	Price      string
	IconBytes  []byte
	IconMIME   string
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category := models.Category{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	return &category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrCategoryHasItems):
			return ErrCategoryHasItems
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrCategoryNotFound
		default:
			return err
		}
	}
	return nil
}

func (s *CatalogService) GetItems(ctx context.Context, categoryID, nameContains string) ([]models.Item, error) {
	return s.Repo.GetItems(ctx, categoryID, nameContains)
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)

	if in.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Price == "" {
		return nil, ErrPriceRequired
	}

	icon, err := imaging.Ingest(in.IconBytes, in.IconMIME, s.MaxIconBytes)
	if err != nil {
		return nil, err
	}

	item := models.Item{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Price:       in.Price,
		IconDataURL: icon.DataURL,
	}
	if err := s.Repo.CreateItem(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return &item, nil
}

// UpdateItem replaces name/price/category; the icon stays untouched
// when no new file was uploaded.
func (s *CatalogService) UpdateItem(ctx context.Context, id string, in CreateItemInput) (*models.Item, error) {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)

	if in.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Price == "" {
		return nil, ErrPriceRequired
	}

	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item.CategoryID = in.CategoryID
	item.Name = in.Name
	item.Price = in.Price

	if len(in.IconBytes) > 0 {
		icon, err := imaging.Ingest(in.IconBytes, in.IconMIME, s.MaxIconBytes)
		if err != nil {
			return nil, err
		}
		item.IconDataURL = icon.DataURL
	}

	if err := s.Repo.SaveItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}
