package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	"github.com/smallharvest/herbport/internal/clock"
	"github.com/smallharvest/herbport/internal/ownerctx"
	"github.com/smallharvest/herbport/internal/reqctx"
	"github.com/smallharvest/herbport/internal/scan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Catalog catalogdomain.Service
	Clock   clock.Clock
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	catalog catalogdomain.Service
	clock   clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("scan.service"),
		repo:    p.Repo,
		catalog: p.Catalog,
		clock:   p.Clock,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) (*domain.Response, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, domain.ErrInvalidCode
	}

	product, err := s.catalog.GetByScanCode(ctx, code, req.Type)
	if err != nil {
		return nil, err
	}

	scannedAt := s.clock.Now()

	scan := domain.ProductScan{
		ID:        ulid.Make().String(),
		ScanType:  req.Type,
		Code:      code,
		Verified:  true,
		Location:  req.Location,
		ScannedAt: scannedAt,
	}
	if productID, err := snowflake.ParseString(product.ID); err == nil {
		scan.ProductID = productID.Int64()
	}
	if ownerID, ok := ownerctx.OwnerIDFromContext(ctx); ok {
		scan.BusinessID = ownerID.Int64()
	}
	if ip := reqctx.IPAddressFromContext(ctx); ip != "" {
		scan.IPAddress = &ip
	}
	if ua := reqctx.UserAgentFromContext(ctx); ua != "" {
		scan.UserAgent = &ua
	}

	// The audit insert is best-effort. A storage hiccup must not turn a
	// genuine product into an unverified one.
	auditCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.repo.Create(auditCtx, s.db, &scan); err != nil {
			s.log.Error("product scan audit write failed",
				zap.String("scan_id", scan.ID),
				zap.String("product_id", product.ID),
				zap.Error(err),
			)
		}
	}()

	return &domain.Response{
		Product: *product,
		Authenticity: domain.Authenticity{
			Verified:      true,
			ScanTimestamp: scannedAt,
			ScanType:      req.Type,
		},
	}, nil
}

func (s *Service) History(ctx context.Context, productID string, limit int) ([]domain.HistoryEntry, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}

	scans, err := s.repo.ListByProduct(ctx, s.db, parsed.Int64(), limit)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(scans))
	for _, scan := range scans {
		entries = append(entries, domain.HistoryEntry{
			ID:        scan.ID,
			ProductID: snowflake.ID(scan.ProductID).String(),
			ScanType:  scan.ScanType,
			ScannedAt: scan.ScannedAt,
		})
	}
	return entries, nil
}
