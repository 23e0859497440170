package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, item *CartItem) error
	FindByOwnerAndProduct(ctx context.Context, db *gorm.DB, ownerID, productID int64) (*CartItem, error)
	// ListByOwner returns cart lines most recently touched first.
	ListByOwner(ctx context.Context, db *gorm.DB, ownerID int64) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, db *gorm.DB, id int64, quantity int) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	// DeleteByOwner removes every line for the owner in one statement.
	DeleteByOwner(ctx context.Context, db *gorm.DB, ownerID int64) error
}
