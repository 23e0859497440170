package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// PricingConfig is the checkout pricing policy shown to buyers: sales tax
// rate, flat shipping fee and the subtotal above which shipping is free.
// Order totals are not derived from it; only the cart summary is.
type PricingConfig struct {
	TaxRate               float64 `mapstructure:"taxRate"`
	ShippingFee           float64 `mapstructure:"shippingFee"`
	FreeShippingThreshold float64 `mapstructure:"freeShippingThreshold"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		TaxRate:               0.08,
		ShippingFee:           15,
		FreeShippingThreshold: 100,
	}
}

func (c PricingConfig) TaxRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRate)
}

func (c PricingConfig) ShippingFeeDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.ShippingFee)
}

func (c PricingConfig) FreeShippingThresholdDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FreeShippingThreshold)
}

// PricingConfigHolder serves the current pricing policy and hot-reloads it
// when the backing file changes.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder(logger *zap.Logger) (*PricingConfigHolder, error) {
	log := logger.Named("config.pricing")
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/herbport/config")
	v.AddConfigPath("/etc/herbport")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HERBPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingConfig()
	v.SetDefault("pricing.taxRate", defaults.TaxRate)
	v.SetDefault("pricing.shippingFee", defaults.ShippingFee)
	v.SetDefault("pricing.freeShippingThreshold", defaults.FreeShippingThreshold)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Error("pricing config reload failed", zap.Error(err))
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Warn("invalid pricing config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("pricing config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticPricingConfigHolder returns a holder pinned to cfg. Used by tests.
func NewStaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return errors.New("pricing.taxRate must be in [0, 1)")
	}
	if cfg.ShippingFee < 0 {
		return errors.New("pricing.shippingFee cannot be negative")
	}
	if cfg.FreeShippingThreshold < 0 {
		return errors.New("pricing.freeShippingThreshold cannot be negative")
	}
	return nil
}
