package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallharvest/herbport/internal/clock"
	"github.com/smallharvest/herbport/internal/migration"
	"github.com/smallharvest/herbport/internal/observability"
	"github.com/smallharvest/herbport/internal/server"
	"github.com/smallharvest/herbport/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
