package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const schedulerTracerName = "github.com/KasumiMercury/primind-slot-scheduler/internal/service/syncer"

func SchedulerTracer() trace.Tracer {
	return otel.Tracer(schedulerTracerName)
}

func StartSyncSpan(ctx context.Context, userID, integrationID, provider string) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "slot.sync",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.String("integration_id", integrationID),
			attribute.String("provider", provider),
		),
	)
}

func StartCalendarFetchSpan(ctx context.Context, provider string, from, to time.Time) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "slot.calendar_fetch."+provider,
		trace.WithAttributes(
			attribute.String("range.start", from.Format(time.RFC3339)),
			attribute.String("range.end", to.Format(time.RFC3339)),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartDispatchSpan(ctx context.Context, limit int) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "slot.dispatch",
		trace.WithAttributes(
			attribute.Int("dispatch.limit", limit),
		),
	)
}

func RecordSyncResult(span trace.Span, eventsFound, slotsDetected, scheduled, purged int, err error) {
	span.SetAttributes(
		attribute.Int("sync.events_found", eventsFound),
		attribute.Int("sync.slots_detected", slotsDetected),
		attribute.Int("sync.notifications_scheduled", scheduled),
		attribute.Int("sync.slots_purged", purged),
	)
	RecordError(span, err)
}

func RecordDispatchResult(span trace.Span, dispatched, failed int, err error) {
	span.SetAttributes(
		attribute.Int("dispatch.dispatched_count", dispatched),
		attribute.Int("dispatch.failed_count", failed),
	)
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
