package catalog

import (
	"github.com/smallharvest/herbport/internal/catalog/repository"
	"github.com/smallharvest/herbport/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
