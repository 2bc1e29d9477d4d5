//go:build !gcloud

package syncrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

const syncMeasurement = "slot_sync"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SyncResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "sync result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, sync result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "sync result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func syncPoint(result domain.SyncResult) *write.Point {
	return influxdb2.NewPoint(
		syncMeasurement,
		map[string]string{
			"user_id":        result.UserID,
			"integration_id": result.IntegrationID,
		},
		map[string]any{
			"events_found":            result.EventsFound,
			"slots_detected":          result.SlotsDetected,
			"notifications_scheduled": result.NotificationsScheduled,
			"slots_purged":            result.SlotsPurged,
		},
		result.SyncedAt,
	)
}

// RecordSyncResult writes one point per sync. Write failures are logged, not returned.
func (r *influxDBRecorder) RecordSyncResult(ctx context.Context, result domain.SyncResult) error {
	if err := r.writeAPI.WritePoint(ctx, syncPoint(result)); err != nil {
		slog.WarnContext(ctx, "failed to write sync result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("user_id", result.UserID),
			slog.String("integration_id", result.IntegrationID),
		)
	}

	return nil
}

// Flush is a no-op: the blocking write API sends each point immediately.
func (r *influxDBRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
