package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	schedulerMeterName = "slot.scheduler"
)

type SchedulerMetrics struct {
	syncRuns               metric.Int64Counter
	syncDuration           metric.Float64Histogram
	calendarFetchDuration  metric.Float64Histogram
	slotsDetected          metric.Int64Counter
	slotsPurged            metric.Int64Counter
	notificationsScheduled metric.Int64Counter
	notificationsDispatch  metric.Int64Counter
}

func NewSchedulerMetrics() (*SchedulerMetrics, error) {
	meter := otel.Meter(schedulerMeterName)

	syncRuns, err := meter.Int64Counter(
		"slot_sync_runs_total",
		metric.WithDescription("Total number of calendar sync runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	syncDuration, err := meter.Float64Histogram(
		"slot_sync_duration_seconds",
		metric.WithDescription("End-to-end duration of a calendar sync"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	calendarFetchDuration, err := meter.Float64Histogram(
		"slot_calendar_fetch_duration_seconds",
		metric.WithDescription("Time spent fetching events from a calendar provider"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	slotsDetected, err := meter.Int64Counter(
		"slot_detected_total",
		metric.WithDescription("Total number of free slots detected"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	slotsPurged, err := meter.Int64Counter(
		"slot_purged_total",
		metric.WithDescription("Total number of expired slots removed"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsScheduled, err := meter.Int64Counter(
		"slot_notifications_scheduled_total",
		metric.WithDescription("Free-slot notifications handled by the scheduler"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsDispatch, err := meter.Int64Counter(
		"slot_notifications_dispatched_total",
		metric.WithDescription("Due notifications handed to the push queue"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerMetrics{
		syncRuns:               syncRuns,
		syncDuration:           syncDuration,
		calendarFetchDuration:  calendarFetchDuration,
		slotsDetected:          slotsDetected,
		slotsPurged:            slotsPurged,
		notificationsScheduled: notificationsScheduled,
		notificationsDispatch:  notificationsDispatch,
	}, nil
}

func (m *SchedulerMetrics) RecordSyncRun(ctx context.Context, provider, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	m.syncRuns.Add(ctx, 1, attrs)
	m.syncDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *SchedulerMetrics) RecordCalendarFetch(ctx context.Context, provider string, duration time.Duration) {
	m.calendarFetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

func (m *SchedulerMetrics) RecordSlotsDetected(ctx context.Context, count int) {
	m.slotsDetected.Add(ctx, int64(count))
}

func (m *SchedulerMetrics) RecordSlotsPurged(ctx context.Context, count int) {
	m.slotsPurged.Add(ctx, int64(count))
}

// RecordNotificationScheduled counts one slot with outcome created, duplicate or failed.
func (m *SchedulerMetrics) RecordNotificationScheduled(ctx context.Context, outcome string) {
	m.notificationsScheduled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulerMetrics) RecordNotificationDispatched(ctx context.Context, outcome string) {
	m.notificationsDispatch.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
