package normalize

import (
	"slices"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

// Normalizer turns raw calendar events into sorted busy intervals.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a Normalizer that converts interval instants into loc.
// A nil loc keeps each instant in the offset it was given with.
func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Normalize drops all-day, malformed and keyword-excluded events and returns
// the rest ordered by start. Overlapping intervals are kept as-is.
func (n *Normalizer) Normalize(events []domain.CalendarEvent, excludedKeywords []string) []domain.BusyInterval {
	keywords := lowerKeywords(excludedKeywords)
	intervals := make([]domain.BusyInterval, 0, len(events))

	for _, event := range events {
		if event.IsAllDay() {
			continue
		}

		start, ok := parseInstant(event.Start.DateTime)
		if !ok {
			continue
		}
		end, ok := parseInstant(event.End.DateTime)
		if !ok {
			continue
		}

		if hasExcludedKeyword(event, keywords) {
			continue
		}

		if n.loc != nil {
			start = start.In(n.loc)
			end = end.In(n.loc)
		}

		intervals = append(intervals, domain.BusyInterval{
			Start: start,
			End:   end,
			Title: event.Title,
		})
	}

	slices.SortStableFunc(intervals, func(a, b domain.BusyInterval) int {
		return a.Start.Compare(b.Start)
	})

	return intervals
}

func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func lowerKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}

func hasExcludedKeyword(event domain.CalendarEvent, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	title := strings.ToLower(event.Title)
	description := strings.ToLower(event.Description)

	for _, k := range keywords {
		if strings.Contains(title, k) || strings.Contains(description, k) {
			return true
		}
	}
	return false
}
