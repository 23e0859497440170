package domain

import (
	"context"

	"gorm.io/gorm"
)

type ListFilter struct {
	Limit      int
	CategoryID *int64
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	// FindActiveByScanCode matches code against the active product set only.
	FindActiveByScanCode(ctx context.Context, db *gorm.DB, kind ScanKind, code string) (*Product, error)
	// ListActive returns active products newest-first, bounded by filter.Limit.
	ListActive(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, error)

	CreateCategory(ctx context.Context, db *gorm.DB, category *Category) error
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
}
