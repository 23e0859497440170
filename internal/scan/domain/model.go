package domain

import (
	"time"

	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
)

// ProductScan is an append-only audit record of an authenticity check.
type ProductScan struct {
	ID         string                 `json:"id" gorm:"type:text;primaryKey"`
	ProductID  int64                  `json:"product_id" gorm:"not null;index"`
	BusinessID int64                  `json:"business_id" gorm:"not null;index"`
	ScanType   catalogdomain.ScanKind `json:"scan_type" gorm:"type:text;not null"`
	Code       string                 `json:"code" gorm:"type:text;not null"`
	Verified   bool                   `json:"verified" gorm:"not null"`
	Location   *string                `json:"location,omitempty" gorm:"type:text"`
	IPAddress  *string                `json:"ip_address,omitempty" gorm:"type:text"`
	UserAgent  *string                `json:"user_agent,omitempty" gorm:"type:text"`
	ScannedAt  time.Time              `json:"scanned_at" gorm:"not null;index"`
}

func (ProductScan) TableName() string { return "product_scans" }
