package calendar

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

//go:generate mockgen -source=source.go -destination=mock.go -package=calendar

// Provider fetches events from one kind of calendar backend.
type Provider interface {
	FetchEvents(ctx context.Context, integration *domain.Integration, from, to time.Time) ([]domain.CalendarEvent, error)
}

// Router dispatches a fetch to the provider registered for the integration.
type Router struct {
	providers map[domain.CalendarProvider]Provider
}

func NewRouter(providers map[domain.CalendarProvider]Provider) *Router {
	return &Router{providers: providers}
}

var _ domain.EventSource = (*Router)(nil)

func (r *Router) FetchEvents(ctx context.Context, integration *domain.Integration, from, to time.Time) ([]domain.CalendarEvent, error) {
	p, ok := r.providers[integration.Provider]
	if !ok {
		return nil, domain.NewValidationError("provider", "no calendar provider configured for "+integration.Provider.String())
	}
	return p.FetchEvents(ctx, integration, from, to)
}

func eventTime(t time.Time) domain.EventTime {
	return domain.EventTime{DateTime: t.Format(time.RFC3339)}
}

func allDayTime(t time.Time) domain.EventTime {
	return domain.EventTime{Date: t.Format(time.DateOnly)}
}
