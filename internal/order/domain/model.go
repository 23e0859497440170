package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type Order struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	BusinessID      int64           `json:"business_id" gorm:"not null;index"`
	OrderNumber     string          `json:"order_number" gorm:"type:text;not null;uniqueIndex"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status          Status          `json:"status" gorm:"type:text;not null;default:pending"`
	ShippingAddress *string         `json:"shipping_address,omitempty" gorm:"type:text"`
	BillingAddress  *string         `json:"billing_address,omitempty" gorm:"type:text"`
	Notes           *string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots a product at checkout time. Later catalog edits do
// not rewrite history.
type OrderItem struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	OrderID     int64           `json:"order_id" gorm:"not null;index"`
	ProductID   int64           `json:"product_id" gorm:"not null"`
	ProductName string          `json:"product_name" gorm:"type:text;not null"`
	Unit        string          `json:"unit" gorm:"type:text;not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }
