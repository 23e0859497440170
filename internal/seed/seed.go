package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	businessdomain "github.com/smallharvest/herbport/internal/business/domain"
	businessrepository "github.com/smallharvest/herbport/internal/business/repository"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	"gorm.io/gorm"
)

const (
	demoBuyerEmail  = "demo@herbport.dev"
	demoFarmerEmail = "fields@greenvalley.example"
)

type productSeed struct {
	name        string
	description string
	category    string
	price       string
	unit        string
	stock       int
	minOrder    int
	batch       string
	qrCode      string
	barcode     string
	organic     bool
}

var categorySeeds = []catalogdomain.Category{
	{Name: "Dried Herbs", Description: "Whole and cut dried botanicals"},
	{Name: "Essential Oils", Description: "Steam-distilled single oils"},
	{Name: "Teas & Infusions", Description: "Loose-leaf blends and tisanes"},
	{Name: "Spices", Description: "Whole and ground culinary spices"},
}

var productSeeds = []productSeed{
	{
		name:        "Organic Chamomile Flowers",
		description: "Whole dried chamomile heads, shade-dried within 24h of harvest.",
		category:    "Dried Herbs",
		price:       "18.50",
		unit:        "kg",
		stock:       120,
		minOrder:    5,
		batch:       "CHAM-2026-014",
		qrCode:      "QR-CHAM-2026-014",
		barcode:     "8901234010147",
		organic:     true,
	},
	{
		name:        "Peppermint Leaf, Cut & Sifted",
		description: "High-menthol peppermint leaf for tea and extraction.",
		category:    "Dried Herbs",
		price:       "14.00",
		unit:        "kg",
		stock:       200,
		minOrder:    10,
		batch:       "PEPP-2026-031",
		qrCode:      "QR-PEPP-2026-031",
		barcode:     "8901234020313",
		organic:     true,
	},
	{
		name:        "Lavender Essential Oil",
		description: "Lavandula angustifolia, steam-distilled, GC/MS tested.",
		category:    "Essential Oils",
		price:       "95.00",
		unit:        "liter",
		stock:       40,
		minOrder:    1,
		batch:       "LAV-2026-007",
		qrCode:      "QR-LAV-2026-007",
		barcode:     "8901234030077",
		organic:     false,
	},
	{
		name:        "Hibiscus Petal Infusion",
		description: "Deep red hibiscus calyces for tart, caffeine-free infusions.",
		category:    "Teas & Infusions",
		price:       "12.25",
		unit:        "kg",
		stock:       150,
		minOrder:    5,
		batch:       "HIBI-2026-022",
		qrCode:      "QR-HIBI-2026-022",
		barcode:     "8901234040226",
		organic:     true,
	},
	{
		name:        "Ceylon Cinnamon Quills",
		description: "True cinnamon quills, hand-rolled, Alba grade.",
		category:    "Spices",
		price:       "32.00",
		unit:        "kg",
		stock:       80,
		minOrder:    2,
		batch:       "CINN-2026-009",
		qrCode:      "QR-CINN-2026-009",
		barcode:     "8901234050096",
		organic:     false,
	},
}

// EnsureDemoData seeds a browsable catalog plus a demo buyer account. It
// is idempotent; a non-empty catalog leaves the database untouched.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		farmerID, err := ensureBusinessTx(ctx, tx, node, businessdomain.Business{
			Name:        "Green Valley Botanicals",
			Email:       demoFarmerEmail,
			ContactName: "Amara Osei",
		}, "farmer")
		if err != nil {
			return err
		}

		if _, err := ensureBusinessTx(ctx, tx, node, businessdomain.Business{
			Name:        "Herbal Wellness Co.",
			Email:       demoBuyerEmail,
			ContactName: "Jordan Lee",
		}, "retailer"); err != nil {
			return err
		}

		categories := make(map[string]int64, len(categorySeeds))
		for _, c := range categorySeeds {
			category := c
			category.ID = node.Generate().Int64()
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			categories[category.Name] = category.ID
		}

		now := time.Now().UTC()
		for _, p := range productSeeds {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return err
			}

			product := catalogdomain.Product{
				ID:               node.Generate().Int64(),
				Name:             p.name,
				Description:      p.description,
				CategoryID:       categories[p.category],
				FarmerID:         farmerID,
				Price:            price,
				Unit:             p.unit,
				StockQuantity:    p.stock,
				MinOrderQuantity: p.minOrder,
				BatchNumber:      p.batch,
				HarvestDate:      now.AddDate(0, -2, 0),
				ExpiryDate:       now.AddDate(1, 0, 0),
				OrganicCertified: p.organic,
				QRCode:           p.qrCode,
				Barcode:          p.barcode,
				Status:           catalogdomain.StatusActive,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func ensureBusinessTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, b businessdomain.Business, businessType string) (int64, error) {
	businesses := businessrepository.Provide()

	existing, err := businesses.FindByEmail(ctx, tx, b.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	b.ID = node.Generate().Int64()
	b.BusinessType = &businessType
	b.Status = businessdomain.StatusActive
	if err := businesses.Create(ctx, tx, &b); err != nil {
		return 0, err
	}
	return b.ID, nil
}
