package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pricelist/internal/models"
)

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory relies on the unique index on name; a concurrent insert
// of the same name surfaces as gorm.ErrDuplicatedKey.
func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

// DeleteCategory deletes the category only if no item references it.
// The guard and the delete are a single conditional statement, so a
// concurrent item insert cannot slip in between them.
func (r *GormRepo) DeleteCategory(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND NOT EXISTS (SELECT 1 FROM items WHERE items.category_id = categories.id)", id).
		Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.Item{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryHasItems
		}
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormRepo) GetItems(ctx context.Context, categoryID, nameContains string) ([]models.Item, error) {
	q := r.DB.WithContext(ctx).Model(&models.Item{})
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if nameContains != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nameContains)+"%")
	}

	items := make([]models.Item, 0)
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item := models.Item{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem checks the category reference and inserts inside one
// transaction so a half-written item never survives a failure.
func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", item.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(item).Error
	})
}

func (r *GormRepo) SaveItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", item.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Save(item).Error
	})
}

func (r *GormRepo) DeleteItem(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
