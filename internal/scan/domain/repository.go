package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, scan *ProductScan) error
	// ListByProduct returns a product's scan history newest-first.
	ListByProduct(ctx context.Context, db *gorm.DB, productID int64, limit int) ([]ProductScan, error)
}
