package business

import (
	"github.com/smallharvest/herbport/internal/business/repository"
	"github.com/smallharvest/herbport/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
