//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/config"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if !cfg.TaskQueue.Enabled() {
		slog.Warn("PRIMIND_TASKS_URL not set, notification dispatch disabled")

		return nil, nil, nil
	}

	tq := taskqueue.NewHTTPTasksClient(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
	)

	return tq, nil, nil
}

func initObservability(ctx context.Context, level slog.Leveler) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "slot-scheduler"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      level,
	})
}
