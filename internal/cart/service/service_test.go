package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallharvest/herbport/internal/cart/domain"
	"github.com/smallharvest/herbport/internal/cart/repository"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	catalogrepository "github.com/smallharvest/herbport/internal/catalog/repository"
	"github.com/smallharvest/herbport/internal/config"
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
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CartItem{}, &catalogdomain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zaptest.NewLogger(t),
		GenID:    node,
		Repo:     repository.Provide(),
		Products: catalogrepository.Provide(),
		Pricing:  config.NewStaticPricingConfigHolder(config.DefaultPricingConfig()),
	})

	return &fixture{db: db, svc: svc, node: node}
}

func (f *fixture) ownerCtx(t *testing.T) (context.Context, snowflake.ID) {
	t.Helper()

	owner := f.node.Generate()
	return ownerctx.WithOwnerID(context.Background(), owner.Int64()), owner
}

func (f *fixture) seedProduct(t *testing.T, price string, stock, minOrder int) catalogdomain.Product {
	t.Helper()

	id := f.node.Generate()
	p := catalogdomain.Product{
		ID:               id.Int64(),
		Name:             "Peppermint Leaf",
		Description:      "Cut and sifted",
		CategoryID:       f.node.Generate().Int64(),
		FarmerID:         f.node.Generate().Int64(),
		Price:            decimal.RequireFromString(price),
		Unit:             "kg",
		StockQuantity:    stock,
		MinOrderQuantity: minOrder,
		BatchNumber:      "PEPP-001",
		QRCode:           "QR-" + id.String(),
		Barcode:          "BC-" + id.String(),
		Status:           catalogdomain.StatusActive,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func TestAddCartItem(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx(t)
	product := f.seedProduct(t, "10.00", 50, 2)
	productID := snowflake.ID(product.ID).String()

	t.Run("creates a line", func(t *testing.T) {
		resp, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Quantity)
		assert.Equal(t, "30", resp.LineTotal.String())
	})

	t.Run("same product merges quantities", func(t *testing.T) {
		resp, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, 7, resp.Quantity)

		items, err := f.svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Quantity)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("below minimum order", func(t *testing.T) {
		other := f.seedProduct(t, "5.00", 50, 10)
		_, err := f.svc.Add(ctx, domain.AddRequest{
			ProductID: snowflake.ID(other.ID).String(),
			Quantity:  3,
		})
		assert.ErrorIs(t, err, domain.ErrMinimumOrderNotMet)
	})

	t.Run("top-up below minimum order", func(t *testing.T) {
		other := f.seedProduct(t, "5.00", 50, 5)
		otherID := snowflake.ID(other.ID).String()

		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: otherID, Quantity: 5})
		require.NoError(t, err)

		// The minimum applies to each add, not the merged line.
		_, err = f.svc.Add(ctx, domain.AddRequest{ProductID: otherID, Quantity: 2})
		assert.ErrorIs(t, err, domain.ErrMinimumOrderNotMet)
	})

	t.Run("requested quantity exceeding stock", func(t *testing.T) {
		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 51})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		// A request within stock merges even when the merged line ends up
		// above it.
		resp, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 44})
		require.NoError(t, err)
		assert.Equal(t, 51, resp.Quantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.svc.Add(ctx, domain.AddRequest{
			ProductID: f.node.Generate().String(),
			Quantity:  2,
		})
		assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
	})

	t.Run("owner required", func(t *testing.T) {
		_, err := f.svc.Add(context.Background(), domain.AddRequest{ProductID: productID, Quantity: 2})
		assert.ErrorIs(t, err, domain.ErrOwnerRequired)
	})
}

// racingCartRepo hides the cart line from the first lookup and lands a
// competing insert right before Create, reproducing two adds of the same
// product interleaving on an empty cart.
type racingCartRepo struct {
	domain.Repository
	node   *snowflake.Node
	hidden bool
}

func (r *racingCartRepo) FindByOwnerAndProduct(ctx context.Context, db *gorm.DB, ownerID, productID int64) (*domain.CartItem, error) {
	if !r.hidden {
		r.hidden = true
		return nil, nil
	}
	return r.Repository.FindByOwnerAndProduct(ctx, db, ownerID, productID)
}

func (r *racingCartRepo) Create(ctx context.Context, db *gorm.DB, item *domain.CartItem) error {
	winner := &domain.CartItem{
		ID:         r.node.Generate().Int64(),
		BusinessID: item.BusinessID,
		ProductID:  item.ProductID,
		Quantity:   2,
	}
	if err := r.Repository.Create(ctx, db, winner); err != nil {
		return err
	}
	return r.Repository.Create(ctx, db, item)
}

func TestAddCartItemInsertRace(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "10.00", 50, 1)

	racing := &racingCartRepo{Repository: repository.Provide(), node: f.node}
	svc := New(Params{
		DB:       f.db,
		Log:      zaptest.NewLogger(t),
		GenID:    f.node,
		Repo:     racing,
		Products: catalogrepository.Provide(),
		Pricing:  config.NewStaticPricingConfigHolder(config.DefaultPricingConfig()),
	})

	ctx, _ := f.ownerCtx(t)
	resp, err := svc.Add(ctx, domain.AddRequest{
		ProductID: snowflake.ID(product.ID).String(),
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Quantity)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx(t)
	product := f.seedProduct(t, "10.00", 50, 1)
	productID := snowflake.ID(product.ID).String()

	_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 5})
	require.NoError(t, err)

	t.Run("sets quantity", func(t *testing.T) {
		require.NoError(t, f.svc.UpdateQuantity(ctx, domain.UpdateRequest{ProductID: productID, Quantity: 8}))

		items, err := f.svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 8, items[0].Quantity)
	})

	t.Run("quantity beyond stock rejected", func(t *testing.T) {
		err := f.svc.UpdateQuantity(ctx, domain.UpdateRequest{ProductID: productID, Quantity: 51})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		require.NoError(t, f.svc.UpdateQuantity(ctx, domain.UpdateRequest{ProductID: productID, Quantity: 0}))

		items, err := f.svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("never creates a line", func(t *testing.T) {
		err := f.svc.UpdateQuantity(ctx, domain.UpdateRequest{ProductID: productID, Quantity: 2})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("malformed product id", func(t *testing.T) {
		err := f.svc.UpdateQuantity(ctx, domain.UpdateRequest{ProductID: "not-a-snowflake", Quantity: 2})
		assert.ErrorIs(t, err, catalogdomain.ErrInvalidID)
	})

	t.Run("other owner's line invisible", func(t *testing.T) {
		otherCtx, _ := f.ownerCtx(t)
		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 2})
		require.NoError(t, err)

		err = f.svc.UpdateQuantity(otherCtx, domain.UpdateRequest{ProductID: productID, Quantity: 4})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestRemoveCartItem(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx(t)
	product := f.seedProduct(t, "10.00", 50, 1)
	productID := snowflake.ID(product.ID).String()

	_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: productID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(ctx, productID))

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Second remove is a no-op, not an error.
	assert.NoError(t, f.svc.Remove(ctx, productID))
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx(t)
	otherCtx, _ := f.ownerCtx(t)

	for i := 0; i < 3; i++ {
		p := f.seedProduct(t, "10.00", 50, 1)
		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: snowflake.ID(p.ID).String(), Quantity: 1})
		require.NoError(t, err)
		_, err = f.svc.Add(otherCtx, domain.AddRequest{ProductID: snowflake.ID(p.ID).String(), Quantity: 1})
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.Clear(ctx))
	require.NoError(t, f.svc.Clear(ctx))

	mine, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := f.svc.List(otherCtx)
	require.NoError(t, err)
	assert.Len(t, theirs, 3)
}

func TestCartSummary(t *testing.T) {
	f := newFixture(t)

	t.Run("below free shipping threshold", func(t *testing.T) {
		ctx, _ := f.ownerCtx(t)
		p := f.seedProduct(t, "12.50", 50, 1)
		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: snowflake.ID(p.ID).String(), Quantity: 2})
		require.NoError(t, err)

		summary, err := f.svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.ItemCount)
		assert.Equal(t, "25", summary.Subtotal.String())
		assert.Equal(t, "2", summary.Tax.String())
		assert.Equal(t, "15", summary.ShippingFee.String())
		assert.Equal(t, "42", summary.Total.String())
	})

	t.Run("free shipping above threshold", func(t *testing.T) {
		ctx, _ := f.ownerCtx(t)
		p := f.seedProduct(t, "60.00", 50, 1)
		_, err := f.svc.Add(ctx, domain.AddRequest{ProductID: snowflake.ID(p.ID).String(), Quantity: 2})
		require.NoError(t, err)

		summary, err := f.svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "120", summary.Subtotal.String())
		assert.Equal(t, "0", summary.ShippingFee.String())
		assert.Equal(t, "129.6", summary.Total.String())
	})

	t.Run("empty cart", func(t *testing.T) {
		ctx, _ := f.ownerCtx(t)

		summary, err := f.svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.ItemCount)
		assert.Equal(t, "0", summary.Subtotal.String())
		assert.Equal(t, "0", summary.ShippingFee.String())
		assert.Equal(t, "0", summary.Total.String())
	})
}
