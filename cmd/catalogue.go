package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/config"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/health"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/catalogue"
)

// initCatalogue serves actions from Postgres when a DSN is configured and
// from the YAML seed otherwise. The database is registered as a readiness check.
func initCatalogue(ctx context.Context, cfg *config.CatalogueConfig, checker *health.Checker) (domain.ActionCatalogue, func() error, error) {
	noop := func() error { return nil }

	if !cfg.UseDatabase() {
		actions, err := catalogue.LoadSeed(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("action catalogue loaded",
			slog.String("type", "yaml"),
			slog.String("file", cfg.File),
			slog.Int("action_count", len(actions)),
		)
		return catalogue.NewStaticCatalogue(actions), noop, nil
	}

	db, err := catalogue.OpenPostgres(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("catalogue connection pool: %w", err)
	}

	if cfg.SeedOnStart {
		actions, err := catalogue.LoadSeed(cfg.File)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		if err := catalogue.Seed(ctx, db, actions); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
	}

	checker.AddCheck("catalogue", sqlDB.PingContext)

	slog.Info("action catalogue loaded", slog.String("type", "postgres"))

	return catalogue.NewPostgresCatalogue(db), sqlDB.Close, nil
}
