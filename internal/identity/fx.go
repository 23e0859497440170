package identity

import (
	"github.com/smallharvest/herbport/internal/clock"
	"github.com/smallharvest/herbport/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("identity",
	fx.Provide(func(cfg config.Config, clk clock.Clock) (Verifier, error) {
		return NewJWTVerifier(cfg.AuthJWTSecret, clk)
	}),
)
