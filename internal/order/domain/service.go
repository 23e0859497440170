package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Checkout turns the caller's cart into a pending order. The order, its
	// line items and the cart wipe commit in one transaction.
	Checkout(ctx context.Context, req CheckoutRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type CheckoutRequest struct {
	ShippingAddress *string `json:"shipping_address,omitempty"`
	BillingAddress  *string `json:"billing_address,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type Response struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          Status          `json:"status"`
	ShippingAddress *string         `json:"shipping_address,omitempty"`
	BillingAddress  *string         `json:"billing_address,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Items           []ItemResponse  `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

var (
	ErrOwnerRequired       = errors.New("owner_required")
	ErrInvalidID           = errors.New("invalid_order_id")
	ErrNotFound            = errors.New("order_not_found")
	ErrEmptyCart           = errors.New("cart_empty")
	ErrOrderCreationFailed = errors.New("order_creation_failed")
)
