// cmd/api-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/server"
	"mergington-activities/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting activities api",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// The registry is seeded exactly once; the activity set is fixed for the
	// life of the process and every record lives in memory only.
	reg, err := registry.Load(cfg.Registry.CatalogPath)
	if err != nil {
		zapLog.Fatal("registry seed failed", zap.Error(err))
	}
	zapLog.Info("registry seeded", zap.Int("activities", reg.Len()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(*cfg, reg, log, obs)
	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("server stopped with error", zap.Error(err))
	}

	zapLog.Info("server stopped")
}
