package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, business *Business) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Business, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Business, error)
}
