package seed

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	businessdomain "github.com/smallharvest/herbport/internal/business/domain"
	cartdomain "github.com/smallharvest/herbport/internal/cart/domain"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&businessdomain.Business{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&cartdomain.CartItem{},
	))
	return db
}

func TestEnsureDemoData(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDemoData(db))

	var products, categories, businesses int64
	require.NoError(t, db.Model(&catalogdomain.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&catalogdomain.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&businessdomain.Business{}).Count(&businesses).Error)
	assert.EqualValues(t, len(productSeeds), products)
	assert.EqualValues(t, len(categorySeeds), categories)
	assert.EqualValues(t, 2, businesses)

	// Every seeded product is scannable and active.
	var byQR catalogdomain.Product
	require.NoError(t, db.Where("qr_code = ?", productSeeds[0].qrCode).First(&byQR).Error)
	assert.Equal(t, catalogdomain.StatusActive, byQR.Status)

	// Second run leaves everything untouched.
	require.NoError(t, EnsureDemoData(db))
	var again int64
	require.NoError(t, db.Model(&catalogdomain.Product{}).Count(&again).Error)
	assert.Equal(t, products, again)

	// A wiped catalog reseeds without duplicating the demo businesses.
	require.NoError(t, db.Where("1 = 1").Delete(&catalogdomain.Category{}).Error)
	require.NoError(t, db.Where("1 = 1").Delete(&catalogdomain.Product{}).Error)
	require.NoError(t, EnsureDemoData(db))
	require.NoError(t, db.Model(&businessdomain.Business{}).Count(&businesses).Error)
	assert.EqualValues(t, 2, businesses)
}
