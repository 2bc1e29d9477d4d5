package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/tracing"
)

const (
	maxFeedBytes            = 5 << 20
	maxOccurrencesPerEvent  = 500
	propertyRecurrenceID    = "RECURRENCE-ID"
	statusCancelled         = "CANCELLED"
	transparencyTransparent = "TRANSPARENT"
	icsDateTimeLayoutUTC    = "20060102T150405Z"
	icsDateTimeLayoutFloat  = "20060102T150405"
	icsDateLayout           = "20060102"
)

// ICSProvider reads a subscribed iCalendar feed and expands recurring events.
type ICSProvider struct {
	httpClient *http.Client
}

func NewICSProvider(timeout time.Duration) *ICSProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ICSProvider{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *ICSProvider) FetchEvents(ctx context.Context, integration *domain.Integration, from, to time.Time) ([]domain.CalendarEvent, error) {
	body, err := p.download(ctx, integration.FeedURL)
	if err != nil {
		return nil, domain.NewUpstreamError(domain.ProviderICS.String(), err)
	}

	events, err := ParseFeed(body, from, to)
	if err != nil {
		return nil, domain.NewUpstreamError(domain.ProviderICS.String(), err)
	}

	slog.DebugContext(ctx, "ics feed fetched",
		slog.String("integration_id", integration.ID),
		slog.Int("event_count", len(events)),
	)

	return events, nil
}

func (p *ICSProvider) download(ctx context.Context, feedURL string) ([]byte, error) {
	// webcal:// is the same feed served over https
	if rest, ok := strings.CutPrefix(feedURL, "webcal://"); ok {
		feedURL = "https://" + rest
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/calendar")
	req.Header.Set(logging.RequestIDHeader, logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch ics feed",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "unexpected status code from ics feed",
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxFeedBytes {
		return nil, fmt.Errorf("feed exceeds %d bytes", maxFeedBytes)
	}

	return body, nil
}

type feedEvent struct {
	uid          string
	summary      string
	description  string
	start        time.Time
	end          time.Time
	allDay       bool
	rrule        string
	exDates      []time.Time
	recurrenceID *time.Time
}

// ParseFeed returns the events of an iCalendar document overlapping [from, to).
// Recurring events are expanded into one event per occurrence; cancelled and
// transparent events are dropped.
func ParseFeed(body []byte, from, to time.Time) ([]domain.CalendarEvent, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ics body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var bases []feedEvent
	overrides := make(map[string][]feedEvent)

	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(ve)
		if !ok {
			continue
		}
		if ev.recurrenceID != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
			continue
		}
		bases = append(bases, ev)
	}

	events := make([]domain.CalendarEvent, 0, len(bases))
	for _, ev := range bases {
		if ev.rrule == "" {
			if overlaps(ev.start, ev.end, from, to) {
				events = append(events, ev.toDomain(ev.start, ev.end))
			}
			continue
		}
		events = append(events, expand(ev, overrides[ev.uid], from, to)...)
	}

	// overrides replace their occurrence, wherever they were moved to
	for _, list := range overrides {
		for _, ov := range list {
			if overlaps(ov.start, ov.end, from, to) {
				events = append(events, ov.toDomain(ov.start, ov.end))
			}
		}
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (feedEvent, bool) {
	var ev feedEvent

	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil && strings.EqualFold(p.Value, statusCancelled) {
		return ev, false
	}
	if p := ve.GetProperty(ical.ComponentPropertyTransp); p != nil && strings.EqualFold(p.Value, transparencyTransparent) {
		return ev, false
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, false
	}

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.uid = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.description = p.Value
	}

	ev.allDay = isDateValue(dtStart)

	var err error
	if ev.allDay {
		ev.start, err = ve.GetAllDayStartAt()
		if err != nil {
			return ev, false
		}
		ev.end, err = ve.GetAllDayEndAt()
		if err != nil || !ev.end.After(ev.start) {
			ev.end = ev.start.AddDate(0, 0, 1)
		}
	} else {
		ev.start, err = ve.GetStartAt()
		if err != nil {
			return ev, false
		}
		ev.end, err = ve.GetEndAt()
		if err != nil || ev.end.Before(ev.start) {
			ev.end = ev.start
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.rrule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for part := range strings.SplitSeq(p.Value, ",") {
			if t, err := parseICSTime(strings.TrimSpace(part), tzidLocation(p, ev.start.Location())); err == nil {
				ev.exDates = append(ev.exDates, t)
			}
		}
	}

	if p := ve.GetProperty(propertyRecurrenceID); p != nil {
		if t, err := parseICSTime(strings.TrimSpace(p.Value), tzidLocation(p, ev.start.Location())); err == nil {
			ev.recurrenceID = &t
		}
	}

	return ev, true
}

func expand(ev feedEvent, overrides []feedEvent, from, to time.Time) []domain.CalendarEvent {
	r, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		slog.Warn("skipping event with invalid RRULE",
			slog.String("uid", ev.uid),
			slog.String("rrule", ev.rrule),
			slog.String("error", err.Error()),
		)
		return nil
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}
	for _, ov := range overrides {
		set.ExDate(ov.recurrenceID.In(ev.start.Location()))
	}

	duration := ev.end.Sub(ev.start)
	loc := ev.start.Location()
	// occurrences that began before from can still overlap the range
	starts := set.Between(from.Add(-duration).In(loc), to.In(loc), true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	out := make([]domain.CalendarEvent, 0, len(starts))
	for _, s := range starts {
		e := s.Add(duration)
		if overlaps(s, e, from, to) {
			out = append(out, ev.toDomain(s, e))
		}
	}
	return out
}

func (ev feedEvent) toDomain(start, end time.Time) domain.CalendarEvent {
	out := domain.CalendarEvent{
		Title:       ev.summary,
		Description: ev.description,
	}
	if ev.allDay {
		out.Start = allDayTime(start)
		out.End = allDayTime(end)
	} else {
		out.Start = eventTime(start)
		out.End = eventTime(end)
	}
	return out
}

func overlaps(start, end, from, to time.Time) bool {
	if end.Equal(start) {
		return !start.Before(from) && start.Before(to)
	}
	return end.After(from) && start.Before(to)
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func tzidLocation(p *ical.IANAProperty, fallback *time.Location) *time.Location {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if loc, err := time.LoadLocation(tzs[0]); err == nil {
			return loc
		}
	}
	return fallback
}

func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse(icsDateTimeLayoutUTC, v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation(icsDateTimeLayoutFloat, v, loc)
	default:
		return time.ParseInLocation(icsDateLayout, v, loc)
	}
}
