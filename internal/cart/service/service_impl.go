package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallharvest/herbport/internal/cart/domain"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	"github.com/smallharvest/herbport/internal/config"
	"github.com/smallharvest/herbport/internal/ownerctx"
	"github.com/smallharvest/herbport/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Products catalogdomain.Repository
	Pricing  *config.PricingConfigHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products catalogdomain.Repository
	pricing  *config.PricingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("cart.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		pricing:  p.Pricing,
	}
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (*domain.ItemResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}

	product, err := s.products.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, catalogdomain.ErrNotFound
	}

	// The requested quantity is what gets validated. A top-up onto an
	// existing line is still held to the product minimum.
	if err := validateQuantity(product, req.Quantity); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByOwnerAndProduct(ctx, s.db, ownerID.Int64(), productID.Int64())
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}

	var item *domain.CartItem
	if existing != nil {
		if err := s.repo.UpdateQuantity(ctx, s.db, existing.ID, quantity); err != nil {
			return nil, err
		}
		existing.Quantity = quantity
		item = existing
	} else {
		item = &domain.CartItem{
			ID:         s.genID.Generate().Int64(),
			BusinessID: ownerID.Int64(),
			ProductID:  productID.Int64(),
			Quantity:   quantity,
		}
		if err := s.repo.Create(ctx, s.db, item); err != nil {
			if !db.IsDuplicateKeyErr(err) {
				return nil, err
			}
			// A concurrent add won the insert on (business_id, product_id).
			// Merge onto the line that landed.
			winner, ferr := s.repo.FindByOwnerAndProduct(ctx, s.db, ownerID.Int64(), productID.Int64())
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, err
			}
			quantity += winner.Quantity
			if err := s.repo.UpdateQuantity(ctx, s.db, winner.ID, quantity); err != nil {
				return nil, err
			}
			winner.Quantity = quantity
			item = winner
		}
	}

	resp := toItemResponse(item, product)
	return &resp, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, req domain.UpdateRequest) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.ErrOwnerRequired
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return catalogdomain.ErrInvalidID
	}

	item, err := s.repo.FindByOwnerAndProduct(ctx, s.db, ownerID.Int64(), productID.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	if req.Quantity <= 0 {
		return s.repo.Delete(ctx, s.db, item.ID)
	}

	product, err := s.products.FindByID(ctx, s.db, item.ProductID)
	if err != nil {
		return err
	}
	if product != nil {
		if err := validateQuantity(product, req.Quantity); err != nil {
			return err
		}
	}

	return s.repo.UpdateQuantity(ctx, s.db, item.ID, req.Quantity)
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.ErrOwnerRequired
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return catalogdomain.ErrInvalidID
	}

	item, err := s.repo.FindByOwnerAndProduct(ctx, s.db, ownerID.Int64(), parsed.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		// Removing an absent line is a no-op.
		return nil
	}

	return s.repo.Delete(ctx, s.db, item.ID)
}

func (s *Service) List(ctx context.Context) ([]domain.ItemResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	return s.listDecorated(ctx, ownerID.Int64())
}

func (s *Service) Summary(ctx context.Context) (*domain.SummaryResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	items, err := s.listDecorated(ctx, ownerID.Int64())
	if err != nil {
		return nil, err
	}

	pricing := s.pricing.Get()

	subtotal := decimal.Zero
	itemCount := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
		itemCount += item.Quantity
	}

	tax := subtotal.Mul(pricing.TaxRateDecimal()).Round(2)

	shipping := decimal.Zero
	if itemCount > 0 && subtotal.LessThan(pricing.FreeShippingThresholdDecimal()) {
		shipping = pricing.ShippingFeeDecimal()
	}

	return &domain.SummaryResponse{
		ItemCount:             itemCount,
		Subtotal:              subtotal,
		Tax:                   tax,
		ShippingFee:           shipping,
		Total:                 subtotal.Add(tax).Add(shipping),
		FreeShippingThreshold: pricing.FreeShippingThresholdDecimal(),
	}, nil
}

func (s *Service) Clear(ctx context.Context) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.ErrOwnerRequired
	}

	return s.repo.DeleteByOwner(ctx, s.db, ownerID.Int64())
}

// listDecorated joins each cart line with its product. Lines whose product
// no longer exists are left out; checkout drops them the same way.
func (s *Service) listDecorated(ctx context.Context, ownerID int64) ([]domain.ItemResponse, error) {
	items, err := s.repo.ListByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ItemResponse, 0, len(items))
	for i := range items {
		product, err := s.products.FindByID(ctx, s.db, items[i].ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			s.log.Warn("cart line references missing product",
				zap.String("cart_item_id", snowflake.ID(items[i].ID).String()),
				zap.String("product_id", snowflake.ID(items[i].ProductID).String()),
			)
			continue
		}
		resp = append(resp, toItemResponse(&items[i], product))
	}
	return resp, nil
}

func validateQuantity(product *catalogdomain.Product, quantity int) error {
	if quantity < product.MinOrderQuantity {
		return domain.ErrMinimumOrderNotMet
	}
	if quantity > product.StockQuantity {
		return domain.ErrInsufficientStock
	}
	return nil
}

func toItemResponse(item *domain.CartItem, product *catalogdomain.Product) domain.ItemResponse {
	qty := decimal.NewFromInt(int64(item.Quantity))
	return domain.ItemResponse{
		ID:               snowflake.ID(item.ID).String(),
		ProductID:        snowflake.ID(item.ProductID).String(),
		Quantity:         item.Quantity,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
		ProductName:      product.Name,
		Unit:             product.Unit,
		UnitPrice:        product.Price,
		LineTotal:        product.Price.Mul(qty),
		ImageURL:         product.ImageURL,
		MinOrderQuantity: product.MinOrderQuantity,
		StockQuantity:    product.StockQuantity,
	}
}
