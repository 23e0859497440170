package domain

import (
	"context"
	"errors"
	"time"

	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
)

type Service interface {
	// Record resolves a scanned code to an active product and appends an
	// audit record. The audit write never blocks or fails the response.
	Record(ctx context.Context, req RecordRequest) (*Response, error)
	// History returns recent scans of a product.
	History(ctx context.Context, productID string, limit int) ([]HistoryEntry, error)
}

type RecordRequest struct {
	Code     string                 `json:"code" binding:"required"`
	Type     catalogdomain.ScanKind `json:"type" binding:"required"`
	Location *string                `json:"location,omitempty"`
}

type Response struct {
	Product      catalogdomain.Response `json:"product"`
	Authenticity Authenticity           `json:"authenticity"`
}

type Authenticity struct {
	Verified      bool                   `json:"verified"`
	ScanTimestamp time.Time              `json:"scan_timestamp"`
	ScanType      catalogdomain.ScanKind `json:"scan_type"`
}

type HistoryEntry struct {
	ID        string                 `json:"id"`
	ProductID string                 `json:"product_id"`
	ScanType  catalogdomain.ScanKind `json:"scan_type"`
	ScannedAt time.Time              `json:"scanned_at"`
}

var ErrInvalidCode = errors.New("invalid_scan_code")
