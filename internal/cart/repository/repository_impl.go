package repository

import (
	"context"
	"errors"

	"github.com/smallharvest/herbport/internal/cart/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, item *domain.CartItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByOwnerAndProduct(ctx context.Context, db *gorm.DB, ownerID, productID int64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := db.WithContext(ctx).
		Where("business_id = ? AND product_id = ?", ownerID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListByOwner(ctx context.Context, db *gorm.DB, ownerID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := db.WithContext(ctx).
		Where("business_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateQuantity(ctx context.Context, db *gorm.DB, id int64, quantity int) error {
	return db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.CartItem{}, "id = ?", id).Error
}

func (r *repo) DeleteByOwner(ctx context.Context, db *gorm.DB, ownerID int64) error {
	return db.WithContext(ctx).Delete(&domain.CartItem{}, "business_id = ?", ownerID).Error
}
