package service

import "errors"

// Messages are returned verbatim in the {"error": ...} body, so they
// are written for the admin panel, not for logs.
var (
	ErrNameRequired      = errors.New("Name is required.")
	ErrPriceRequired     = errors.New("Price is required.")
	ErrCategoryRequired  = errors.New("Category is required.")
	ErrDuplicateCategory = errors.New("Category already exists.")
	ErrCategoryHasItems  = errors.New("Category has items. Delete items first.")
	ErrCategoryNotFound  = errors.New("Category not found.")
	ErrItemNotFound      = errors.New("Item not found.")
	ErrBadCredentials    = errors.New("Incorrect username or password.")
	ErrUnauthorized      = errors.New("Admin session required.")
)
