package timewindow

import (
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

// TimeOfDay is an "HH:MM" value. Hour and Minute are not range-checked.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On returns the instant at t on the calendar day of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, ref.Location())
}

// ParseTimeOfDay parses "HH:MM". Only integer syntax is enforced.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, domain.NewValidationError("time_of_day", "expected HH:MM, got "+strconv.Quote(s))
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, domain.NewValidationError("time_of_day", "invalid hour in "+strconv.Quote(s))
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, domain.NewValidationError("time_of_day", "invalid minute in "+strconv.Quote(s))
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Window is a daily time-of-day range, inclusive on both ends.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func ParseWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether instant's wall-clock hour and minute fall within
// the window. The instant is read in its own location.
func (w Window) Contains(instant time.Time) bool {
	return IsWithinWindow(instant, w.Start, w.End)
}

// EndOn returns the window end on the calendar day of ref.
func (w Window) EndOn(ref time.Time) time.Time {
	return w.End.On(ref)
}

func IsWithinWindow(instant time.Time, start, end TimeOfDay) bool {
	m := instant.Hour()*60 + instant.Minute()
	return start.Minutes() <= m && m <= end.Minutes()
}
