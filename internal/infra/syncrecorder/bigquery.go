//go:build gcloud

package syncrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt             time.Time `bigquery:"recorded_at"`
	SyncedAt               time.Time `bigquery:"synced_at"`
	UserID                 string    `bigquery:"user_id"`
	IntegrationID          string    `bigquery:"integration_id"`
	EventsFound            int64     `bigquery:"events_found"`
	SlotsDetected          int64     `bigquery:"slots_detected"`
	NotificationsScheduled int64     `bigquery:"notifications_scheduled"`
	SlotsPurged            int64     `bigquery:"slots_purged"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SyncResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "sync result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, sync result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, sync result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "sync result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordSyncResult(ctx context.Context, result domain.SyncResult) error {
	record := &bigQueryRecord{
		RecordedAt:             time.Now(),
		SyncedAt:               result.SyncedAt,
		UserID:                 result.UserID,
		IntegrationID:          result.IntegrationID,
		EventsFound:            int64(result.EventsFound),
		SlotsDetected:          int64(result.SlotsDetected),
		NotificationsScheduled: int64(result.NotificationsScheduled),
		SlotsPurged:            int64(result.SlotsPurged),
	}

	if err := r.inserter.Put(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to insert sync result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("user_id", result.UserID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
