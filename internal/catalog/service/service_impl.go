package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallharvest/herbport/internal/cache"
	"github.com/smallharvest/herbport/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// Scan lookups are the hot path for in-store verification; entries are
	// short-lived so a deactivated product stops resolving quickly.
	scanCacheTTL = 30 * time.Second
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	scanCache cache.Cache[string, domain.Product]
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("catalog.service"),
		repo:      p.Repo,
		scanCache: cache.NewTTLCache[string, domain.Product](),
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	filter := domain.ListFilter{Limit: clampLimit(req.Limit)}

	if categoryID := strings.TrimSpace(req.CategoryID); categoryID != "" {
		parsed, err := snowflake.ParseString(categoryID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		id := parsed.Int64()
		filter.CategoryID = &id
	}

	items, err := s.repo.ListActive(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) GetByScanCode(ctx context.Context, code string, kind domain.ScanKind) (*domain.Response, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	if !kind.Valid() {
		return nil, domain.ErrInvalidScanType
	}

	key := string(kind) + ":" + code
	if cached, ok := s.scanCache.Get(key); ok {
		resp := toResponse(&cached)
		return &resp, nil
	}

	item, err := s.repo.FindActiveByScanCode(ctx, s.db, kind, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	s.scanCache.Set(key, *item, scanCacheTTL)

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	items, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.CategoryResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, domain.CategoryResponse{
			ID:          snowflake.ID(item.ID).String(),
			Name:        item.Name,
			Description: item.Description,
		})
	}
	return resp, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:               snowflake.ID(p.ID).String(),
		Name:             p.Name,
		Description:      p.Description,
		CategoryID:       snowflake.ID(p.CategoryID).String(),
		FarmerID:         snowflake.ID(p.FarmerID).String(),
		Price:            p.Price,
		Unit:             p.Unit,
		StockQuantity:    p.StockQuantity,
		MinOrderQuantity: p.MinOrderQuantity,
		ImageURL:         p.ImageURL,
		BatchNumber:      p.BatchNumber,
		HarvestDate:      p.HarvestDate,
		ExpiryDate:       p.ExpiryDate,
		OrganicCertified: p.OrganicCertified,
		LabReportURL:     p.LabReportURL,
		QRCode:           p.QRCode,
		Barcode:          p.Barcode,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if len(p.Metadata) > 0 {
		resp.Metadata = map[string]any(p.Metadata)
	}
	return resp
}
