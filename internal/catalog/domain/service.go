package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	// GetByScanCode resolves an active product from a QR or barcode value.
	GetByScanCode(ctx context.Context, code string, kind ScanKind) (*Response, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
}

type ListRequest struct {
	Limit      int
	CategoryID string
}

type Response struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	CategoryID       string          `json:"category_id"`
	FarmerID         string          `json:"farmer_id"`
	Price            decimal.Decimal `json:"price"`
	Unit             string          `json:"unit"`
	StockQuantity    int             `json:"stock_quantity"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	ImageURL         *string         `json:"image_url,omitempty"`
	BatchNumber      string          `json:"batch_number"`
	HarvestDate      time.Time       `json:"harvest_date"`
	ExpiryDate       time.Time       `json:"expiry_date"`
	OrganicCertified bool            `json:"organic_certified"`
	LabReportURL     *string         `json:"lab_report_url,omitempty"`
	QRCode           string          `json:"qr_code"`
	Barcode          string          `json:"barcode"`
	Status           Status          `json:"status"`
	Metadata         map[string]any  `json:"metadata,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	ErrNotFound        = errors.New("product_not_found")
	ErrInvalidID       = errors.New("invalid_product_id")
	ErrInvalidScanType = errors.New("invalid_scan_type")
)
