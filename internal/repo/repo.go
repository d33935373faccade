package repo

import (
	"errors"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

// ErrCategoryHasItems is returned by DeleteCategory when at least one
// item still references the category.
var ErrCategoryHasItems = errors.New("category has items")
