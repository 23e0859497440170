package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ScanKind identifies which printed code was scanned.
type ScanKind string

const (
	ScanKindQR      ScanKind = "qr"
	ScanKindBarcode ScanKind = "barcode"
)

func (k ScanKind) Valid() bool {
	return k == ScanKindQR || k == ScanKindBarcode
}

type Product struct {
	ID               int64             `json:"id" gorm:"primaryKey"`
	Name             string            `json:"name" gorm:"type:text;not null"`
	Description      string            `json:"description" gorm:"type:text;not null"`
	CategoryID       int64             `json:"category_id" gorm:"not null;index"`
	FarmerID         int64             `json:"farmer_id" gorm:"not null;index"`
	Price            decimal.Decimal   `json:"price" gorm:"type:decimal(12,2);not null"`
	Unit             string            `json:"unit" gorm:"type:text;not null"`
	StockQuantity    int               `json:"stock_quantity" gorm:"not null;default:0"`
	MinOrderQuantity int               `json:"min_order_quantity" gorm:"not null;default:1"`
	ImageURL         *string           `json:"image_url,omitempty" gorm:"type:text"`
	BatchNumber      string            `json:"batch_number" gorm:"type:text;not null"`
	HarvestDate      time.Time         `json:"harvest_date" gorm:"not null"`
	ExpiryDate       time.Time         `json:"expiry_date" gorm:"not null"`
	OrganicCertified bool              `json:"organic_certified" gorm:"not null;default:false"`
	LabReportURL     *string           `json:"lab_report_url,omitempty" gorm:"type:text"`
	QRCode           string            `json:"qr_code" gorm:"column:qr_code;type:text;not null;index"`
	Barcode          string            `json:"barcode" gorm:"type:text;not null;index"`
	Status           Status            `json:"status" gorm:"type:text;not null;default:active;index"`
	Metadata         datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time         `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time         `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }

func (p *Product) Active() bool { return p.Status == StatusActive }

type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }
