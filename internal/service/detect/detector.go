package detect

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/normalize"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/timewindow"
)

type gap struct {
	start time.Time
	end   time.Time
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// DetectFreeSlots normalizes events in the settings' timezone and returns the
// free slots remaining after now.
func (d *Detector) DetectFreeSlots(
	ctx context.Context,
	events []domain.CalendarEvent,
	settings domain.DetectionSettings,
	now time.Time,
) ([]*domain.FreeSlot, error) {
	if !settings.SlotDetectionEnabled {
		return []*domain.FreeSlot{}, nil
	}

	loc, err := Location(settings.Timezone)
	if err != nil {
		return nil, err
	}

	intervals := normalize.NewNormalizer(loc).Normalize(events, settings.ExcludedKeywords)

	slots, err := DetectGaps(intervals, settings, now.In(loc))
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "free slots detected",
		slog.Int("event_count", len(events)),
		slog.Int("busy_interval_count", len(intervals)),
		slog.Int("slot_count", len(slots)),
		slog.String("timezone", loc.String()),
	)

	return slots, nil
}

// DetectGaps computes free slots from intervals sorted by start. Window
// checks use the wall clock of now and of each interval as given.
//
// Candidate gaps run from the latest end seen so far (starting at now) to the
// next interval's start, plus a trailing gap from the latest end to the window
// end on that day.
func DetectGaps(intervals []domain.BusyInterval, settings domain.DetectionSettings, now time.Time) ([]*domain.FreeSlot, error) {
	if !settings.SlotDetectionEnabled {
		return []*domain.FreeSlot{}, nil
	}

	window, err := timewindow.ParseWindow(settings.DetectionWindowStart, settings.DetectionWindowEnd)
	if err != nil {
		return nil, err
	}

	slots := make([]*domain.FreeSlot, 0)
	for _, g := range candidateGaps(intervals, window, now) {
		if !g.end.After(now) {
			continue
		}

		start := g.start
		if start.Before(now) {
			start = now
		}
		if !g.end.After(start) {
			continue
		}
		if !window.Contains(start) {
			continue
		}

		duration := int(g.end.Sub(start) / time.Minute)
		if duration < settings.MinSlotDuration || duration > settings.MaxSlotDuration {
			continue
		}

		category := settings.CategoryForHour(start.Hour())
		slots = append(slots, domain.NewFreeSlot(start, g.end, duration, category, now))
	}

	return slots, nil
}

func candidateGaps(intervals []domain.BusyInterval, window timewindow.Window, now time.Time) []gap {
	gaps := make([]gap, 0, len(intervals)+1)

	// boundary is the latest end seen so far, so a nested interval never
	// reopens time its enclosing one still covers.
	boundary := now
	for _, iv := range intervals {
		gaps = append(gaps, gap{start: boundary, end: iv.Start})
		if iv.End.After(boundary) {
			boundary = iv.End
		}
	}

	gaps = append(gaps, gap{start: boundary, end: window.EndOn(boundary)})
	return gaps
}

// Location resolves an IANA timezone name. Empty means UTC.
func Location(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewValidationError("timezone", "unknown timezone "+name)
	}
	return loc, nil
}
