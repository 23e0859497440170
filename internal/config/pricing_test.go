package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPricingConfig(t *testing.T) {
	cfg := DefaultPricingConfig()

	assert.Equal(t, "0.08", cfg.TaxRateDecimal().String())
	assert.Equal(t, "15", cfg.ShippingFeeDecimal().String())
	assert.Equal(t, "100", cfg.FreeShippingThresholdDecimal().String())
	assert.NoError(t, validatePricingConfig(cfg))
}

func TestValidatePricingConfig(t *testing.T) {
	base := DefaultPricingConfig()

	t.Run("negative tax rate", func(t *testing.T) {
		cfg := base
		cfg.TaxRate = -0.01
		assert.Error(t, validatePricingConfig(cfg))
	})

	t.Run("tax rate of one", func(t *testing.T) {
		cfg := base
		cfg.TaxRate = 1
		assert.Error(t, validatePricingConfig(cfg))
	})

	t.Run("negative shipping fee", func(t *testing.T) {
		cfg := base
		cfg.ShippingFee = -1
		assert.Error(t, validatePricingConfig(cfg))
	})

	t.Run("negative threshold", func(t *testing.T) {
		cfg := base
		cfg.FreeShippingThreshold = -5
		assert.Error(t, validatePricingConfig(cfg))
	})
}

func TestStaticPricingConfigHolder(t *testing.T) {
	cfg := PricingConfig{TaxRate: 0.1, ShippingFee: 20, FreeShippingThreshold: 250}
	holder := NewStaticPricingConfigHolder(cfg)
	assert.Equal(t, cfg, holder.Get())
}
