package migration

import (
	"errors"

	businessdomain "github.com/smallharvest/herbport/internal/business/domain"
	cartdomain "github.com/smallharvest/herbport/internal/cart/domain"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	orderdomain "github.com/smallharvest/herbport/internal/order/domain"
	scandomain "github.com/smallharvest/herbport/internal/scan/domain"
	"gorm.io/gorm"
)

// RunMigrations creates the storefront schema on startup so local and
// self-hosted deployments work out of the box.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&businessdomain.Business{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&cartdomain.CartItem{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&scandomain.ProductScan{},
	)
}
