package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

const (
	defaultMaxResults      = 100
	googleStatusCancelled  = "cancelled"
	googleTransparencyFree = "transparent"
)

type GoogleConfig struct {
	MaxResults int64
	// Endpoint overrides the API base URL.
	Endpoint string
}

// GoogleProvider lists events through the Calendar API with the
// integration's access token. Recurring events come back expanded.
type GoogleProvider struct {
	maxResults int64
	endpoint   string
}

func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &GoogleProvider{
		maxResults: maxResults,
		endpoint:   cfg.Endpoint,
	}
}

func (p *GoogleProvider) FetchEvents(ctx context.Context, integration *domain.Integration, from, to time.Time) ([]domain.CalendarEvent, error) {
	svc, err := p.service(ctx, integration.AccessToken)
	if err != nil {
		return nil, domain.NewUpstreamError(domain.ProviderGoogleCalendar.String(), err)
	}

	calendarID := integration.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	call := svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(p.maxResults)

	var events []domain.CalendarEvent
	err = call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			if ev, ok := convertGoogleEvent(item); ok {
				events = append(events, ev)
			}
		}
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "google calendar list failed",
			slog.String("integration_id", integration.ID),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewUpstreamError(domain.ProviderGoogleCalendar.String(), err)
	}

	slog.DebugContext(ctx, "google calendar events fetched",
		slog.String("integration_id", integration.ID),
		slog.Int("event_count", len(events)),
	)

	return events, nil
}

func (p *GoogleProvider) service(ctx context.Context, accessToken string) (*gcal.Service, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("missing access token")
	}

	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		})),
	}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return svc, nil
}

func convertGoogleEvent(item *gcal.Event) (domain.CalendarEvent, bool) {
	if item == nil || item.Start == nil || item.End == nil {
		return domain.CalendarEvent{}, false
	}
	if item.Status == googleStatusCancelled || item.Transparency == googleTransparencyFree {
		return domain.CalendarEvent{}, false
	}

	return domain.CalendarEvent{
		Title:       item.Summary,
		Description: item.Description,
		Start:       domain.EventTime{Date: item.Start.Date, DateTime: item.Start.DateTime},
		End:         domain.EventTime{Date: item.End.Date, DateTime: item.End.DateTime},
	}, true
}
