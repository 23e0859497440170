package scan

import (
	"github.com/smallharvest/herbport/internal/scan/repository"
	"github.com/smallharvest/herbport/internal/scan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("scan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
