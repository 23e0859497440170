package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	cartdomain "github.com/smallharvest/herbport/internal/cart/domain"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	"github.com/smallharvest/herbport/internal/order/domain"
	"github.com/smallharvest/herbport/internal/ownerctx"
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
	Cart     cartdomain.Repository
	Products catalogdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	cart     cartdomain.Repository
	products catalogdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		cart:     p.Cart,
		products: p.Products,
	}
}

func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Response, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	lines, err := s.cart.ListByOwner(ctx, s.db, ownerID.Int64())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	orderID := s.genID.Generate()
	order := domain.Order{
		ID:              orderID.Int64(),
		BusinessID:      ownerID.Int64(),
		OrderNumber:     orderNumber(orderID, ownerID),
		Status:          domain.StatusPending,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.FindByID(ctx, s.db, line.ProductID)
		if err != nil {
			s.log.Error("checkout product lookup failed",
				zap.String("business_id", ownerID.String()),
				zap.String("product_id", snowflake.ID(line.ProductID).String()),
				zap.Error(err),
			)
			return nil, domain.ErrOrderCreationFailed
		}
		if product == nil {
			// Products removed since the line was added are dropped from the
			// order rather than failing the whole checkout.
			s.log.Warn("checkout dropped cart line for missing product",
				zap.String("business_id", ownerID.String()),
				zap.String("product_id", snowflake.ID(line.ProductID).String()),
			)
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, domain.OrderItem{
			ID:          s.genID.Generate().Int64(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order.TotalAmount = total

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}
		if err := s.repo.CreateItems(ctx, tx, items); err != nil {
			return err
		}
		return s.cart.DeleteByOwner(ctx, tx, ownerID.Int64())
	})
	if err != nil {
		s.log.Error("checkout transaction failed",
			zap.String("business_id", ownerID.String()),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
		return nil, domain.ErrOrderCreationFailed
	}

	resp := toResponse(&order, items)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	orders, err := s.repo.ListByOwner(ctx, s.db, ownerID.Int64())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(orders))
	for i := range orders {
		items, err := s.repo.ListItems(ctx, s.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, toResponse(&orders[i], items))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	// The owner filter doubles as the existence check, so callers cannot
	// probe for other businesses' order IDs.
	order, err := s.repo.FindByOwnerAndID(ctx, s.db, ownerID.Int64(), orderID.Int64())
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, order.ID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(order, items)
	return &resp, nil
}

// orderNumber derives a human-readable, unique reference from the order's
// snowflake ID plus the tail of the owner ID.
func orderNumber(orderID, ownerID snowflake.ID) string {
	owner := ownerID.String()
	if len(owner) > 6 {
		owner = owner[len(owner)-6:]
	}
	return "ORD-" + strings.ToUpper(strconv.FormatInt(orderID.Int64(), 36)) + "-" + owner
}

func toResponse(order *domain.Order, items []domain.OrderItem) domain.Response {
	resp := domain.Response{
		ID:              snowflake.ID(order.ID).String(),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Notes:           order.Notes,
		Items:           make([]domain.ItemResponse, 0, len(items)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, domain.ItemResponse{
			ID:          snowflake.ID(item.ID).String(),
			ProductID:   snowflake.ID(item.ProductID).String(),
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return resp
}
