package domain

import "time"

// CartItem is one product line in a business's cart. A business holds at
// most one line per product; adding the same product again merges
// quantities.
type CartItem struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	BusinessID int64     `json:"business_id" gorm:"not null;index:idx_cart_business_product,unique"`
	ProductID  int64     `json:"product_id" gorm:"not null;index:idx_cart_business_product,unique"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null"`
}

func (CartItem) TableName() string { return "cart_items" }
