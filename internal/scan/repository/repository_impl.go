package repository

import (
	"context"

	"github.com/smallharvest/herbport/internal/scan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, scan *domain.ProductScan) error {
	return db.WithContext(ctx).Create(scan).Error
}

func (r *repo) ListByProduct(ctx context.Context, db *gorm.DB, productID int64, limit int) ([]domain.ProductScan, error) {
	stmt := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("scanned_at DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var scans []domain.ProductScan
	if err := stmt.Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}
