package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	CreateItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	FindByOwnerAndID(ctx context.Context, db *gorm.DB, ownerID, id int64) (*Order, error)
	// ListByOwner returns the owner's orders newest-first.
	ListByOwner(ctx context.Context, db *gorm.DB, ownerID int64) ([]Order, error)
	ListItems(ctx context.Context, db *gorm.DB, orderID int64) ([]OrderItem, error)
}
