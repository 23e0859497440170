package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	cartdomain "github.com/smallharvest/herbport/internal/cart/domain"
	cartrepository "github.com/smallharvest/herbport/internal/cart/repository"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	catalogrepository "github.com/smallharvest/herbport/internal/catalog/repository"
	"github.com/smallharvest/herbport/internal/order/domain"
	"github.com/smallharvest/herbport/internal/order/repository"
	"github.com/smallharvest/herbport/internal/ownerctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  domain.Service
	node *snowflake.Node
	cart cartdomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&cartdomain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cartRepo := cartrepository.Provide()
	svc := New(Params{
		DB:       db,
		Log:      zaptest.NewLogger(t),
		GenID:    node,
		Repo:     repository.Provide(),
		Cart:     cartRepo,
		Products: catalogrepository.Provide(),
	})

	return &fixture{db: db, svc: svc, node: node, cart: cartRepo}
}

func (f *fixture) ownerCtx(t *testing.T) (context.Context, snowflake.ID) {
	t.Helper()

	owner := f.node.Generate()
	return ownerctx.WithOwnerID(context.Background(), owner.Int64()), owner
}

func (f *fixture) seedProduct(t *testing.T, price string) catalogdomain.Product {
	t.Helper()

	id := f.node.Generate()
	p := catalogdomain.Product{
		ID:               id.Int64(),
		Name:             "Lavender Oil",
		Description:      "Steam distilled",
		CategoryID:       f.node.Generate().Int64(),
		FarmerID:         f.node.Generate().Int64(),
		Price:            decimal.RequireFromString(price),
		Unit:             "liter",
		StockQuantity:    100,
		MinOrderQuantity: 1,
		BatchNumber:      "LAV-001",
		QRCode:           "QR-" + id.String(),
		Barcode:          "BC-" + id.String(),
		Status:           catalogdomain.StatusActive,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) addCartLine(t *testing.T, owner snowflake.ID, productID int64, quantity int) {
	t.Helper()

	require.NoError(t, f.cart.Create(context.Background(), f.db, &cartdomain.CartItem{
		ID:         f.node.Generate().Int64(),
		BusinessID: owner.Int64(),
		ProductID:  productID,
		Quantity:   quantity,
	}))
}

func TestCheckout(t *testing.T) {
	t.Run("empty cart rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx, _ := f.ownerCtx(t)

		_, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		assert.ErrorIs(t, err, domain.ErrEmptyCart)

		var count int64
		require.NoError(t, f.db.Model(&domain.Order{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("totals use the current catalog price", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		product := f.seedProduct(t, "10.00")
		f.addCartLine(t, owner, product.ID, 2)

		// Reprice after the line was added; checkout must pick this up.
		require.NoError(t, f.db.Model(&catalogdomain.Product{}).
			Where("id = ?", product.ID).
			Update("price", decimal.RequireFromString("12.50")).Error)

		resp, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		require.NoError(t, err)
		assert.Equal(t, "25", resp.TotalAmount.String())
		assert.Equal(t, domain.StatusPending, resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "12.5", resp.Items[0].UnitPrice.String())
		assert.Equal(t, 2, resp.Items[0].Quantity)
	})

	t.Run("addresses and notes persist", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		product := f.seedProduct(t, "10.00")
		f.addCartLine(t, owner, product.ID, 1)

		shipping := "12 Dockside Rd, Portland"
		billing := "PO Box 88, Portland"
		notes := "deliver to loading bay"
		resp, err := f.svc.Checkout(ctx, domain.CheckoutRequest{
			ShippingAddress: &shipping,
			BillingAddress:  &billing,
			Notes:           &notes,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.ShippingAddress)
		assert.Equal(t, shipping, *resp.ShippingAddress)
		require.NotNil(t, resp.BillingAddress)
		assert.Equal(t, billing, *resp.BillingAddress)

		var stored domain.Order
		require.NoError(t, f.db.First(&stored, "order_number = ?", resp.OrderNumber).Error)
		require.NotNil(t, stored.ShippingAddress)
		assert.Equal(t, shipping, *stored.ShippingAddress)
		require.NotNil(t, stored.BillingAddress)
		assert.Equal(t, billing, *stored.BillingAddress)
		require.NotNil(t, stored.Notes)
		assert.Equal(t, notes, *stored.Notes)
	})

	t.Run("store failure during pricing", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		product := f.seedProduct(t, "10.00")
		f.addCartLine(t, owner, product.ID, 1)

		require.NoError(t, f.db.Migrator().DropTable(&catalogdomain.Product{}))

		_, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		assert.ErrorIs(t, err, domain.ErrOrderCreationFailed)
	})

	t.Run("multi-line totals", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		chamomile := f.seedProduct(t, "10.00")
		elderberry := f.seedProduct(t, "5.00")
		f.addCartLine(t, owner, chamomile.ID, 2)
		f.addCartLine(t, owner, elderberry.ID, 1)

		resp, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		require.NoError(t, err)
		assert.Equal(t, "25", resp.TotalAmount.String())
		require.Len(t, resp.Items, 2)

		totals := map[string]string{}
		for _, item := range resp.Items {
			totals[item.ProductID] = item.LineTotal.String()
		}
		assert.Equal(t, "20", totals[snowflake.ID(chamomile.ID).String()])
		assert.Equal(t, "5", totals[snowflake.ID(elderberry.ID).String()])
	})

	t.Run("cart is cleared", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		product := f.seedProduct(t, "10.00")
		f.addCartLine(t, owner, product.ID, 3)

		_, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		require.NoError(t, err)

		lines, err := f.cart.ListByOwner(context.Background(), f.db, owner.Int64())
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("missing products are dropped", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		product := f.seedProduct(t, "20.00")
		f.addCartLine(t, owner, product.ID, 1)
		f.addCartLine(t, owner, f.node.Generate().Int64(), 4)

		resp, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		require.NoError(t, err)
		assert.Equal(t, "20", resp.TotalAmount.String())
		assert.Len(t, resp.Items, 1)
	})

	t.Run("cart of only missing products rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx, owner := f.ownerCtx(t)

		f.addCartLine(t, owner, f.node.Generate().Int64(), 4)

		_, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("order numbers are distinct", func(t *testing.T) {
		f := newFixture(t)

		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			ctx, owner := f.ownerCtx(t)
			product := f.seedProduct(t, "10.00")
			f.addCartLine(t, owner, product.ID, 1)

			resp, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(resp.OrderNumber, "ORD-"))
			assert.False(t, seen[resp.OrderNumber])
			seen[resp.OrderNumber] = true
		}
	})
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	ctx, owner := f.ownerCtx(t)
	otherCtx, _ := f.ownerCtx(t)

	for i := 0; i < 3; i++ {
		product := f.seedProduct(t, "10.00")
		f.addCartLine(t, owner, product.ID, 1)
		_, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
		require.NoError(t, err)
	}

	resp, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, resp, 3)
	for _, o := range resp {
		assert.Len(t, o.Items, 1)
	}

	other, err := f.svc.List(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGetOrder(t *testing.T) {
	f := newFixture(t)
	ctx, owner := f.ownerCtx(t)
	otherCtx, _ := f.ownerCtx(t)

	product := f.seedProduct(t, "10.00")
	f.addCartLine(t, owner, product.ID, 2)
	created, err := f.svc.Checkout(ctx, domain.CheckoutRequest{})
	require.NoError(t, err)

	t.Run("owner reads own order", func(t *testing.T) {
		resp, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.OrderNumber, resp.OrderNumber)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		_, err := f.svc.Get(otherCtx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.svc.Get(ctx, "bogus")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}
