package order

import (
	"github.com/smallharvest/herbport/internal/order/repository"
	"github.com/smallharvest/herbport/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
