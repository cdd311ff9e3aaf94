package main

import (
	"context"

	"overlayapi/internal/configuration"
	"overlayapi/internal/core"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	ctx := context.Background()

	shutdownTracing := core.StartTracing(ctx, config.Tracing)
	stopProfiling := core.StartProfiling(config.Profiling)

	recordStore := core.NewRecordStore(ctx, config.Store)
	cache := core.NewCache(config.Cache)

	core.StartHTTPServer(config, recordStore, cache)

	stopProfiling()
	if err := shutdownTracing(ctx); err != nil {
		zap.L().Error("Failed to flush traces", zap.Error(err))
	}
	_ = zap.L().Sync()
}
