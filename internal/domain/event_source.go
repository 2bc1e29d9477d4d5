package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=event_source.go -destination=event_source_mock.go -package=domain

// EventSource fetches the raw events of a connected calendar for [from, to).
// Failures are reported as *UpstreamError.
type EventSource interface {
	FetchEvents(ctx context.Context, integration *Integration, from, to time.Time) ([]CalendarEvent, error)
}
