package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Add puts a product in the caller's cart, merging quantities when the
	// product is already present.
	Add(ctx context.Context, req AddRequest) (*ItemResponse, error)
	// UpdateQuantity sets the line for a product to an absolute quantity.
	// A quantity of zero or less removes the line; it never creates one.
	UpdateQuantity(ctx context.Context, req UpdateRequest) error
	Remove(ctx context.Context, productID string) error
	List(ctx context.Context) ([]ItemResponse, error)
	Summary(ctx context.Context) (*SummaryResponse, error)
	Clear(ctx context.Context) error
}

type AddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type UpdateRequest struct {
	ProductID string
	Quantity  int `json:"quantity"`
}

type ItemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Product detail joined in at read time.
	ProductName      string          `json:"product_name"`
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
	ImageURL         *string         `json:"image_url,omitempty"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	StockQuantity    int             `json:"stock_quantity"`
}

type SummaryResponse struct {
	ItemCount             int             `json:"item_count"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Tax                   decimal.Decimal `json:"tax"`
	ShippingFee           decimal.Decimal `json:"shipping_fee"`
	Total                 decimal.Decimal `json:"total"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
}

var (
	ErrOwnerRequired      = errors.New("owner_required")
	ErrItemNotFound       = errors.New("cart_item_not_found")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrMinimumOrderNotMet = errors.New("minimum_order_not_met")
	ErrInsufficientStock  = errors.New("insufficient_stock")
)
