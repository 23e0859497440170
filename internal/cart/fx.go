package cart

import (
	"github.com/smallharvest/herbport/internal/cart/repository"
	"github.com/smallharvest/herbport/internal/cart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cart.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
