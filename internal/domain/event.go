package domain

import "time"

// EventTime mirrors a calendar provider's start/end field: Date is set for
// all-day events, DateTime (RFC 3339) for timed ones.
type EventTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
}

func (t EventTime) IsAllDay() bool {
	return t.Date != ""
}

type CalendarEvent struct {
	Title       string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
}

func (e CalendarEvent) IsAllDay() bool {
	return e.Start.IsAllDay() || e.End.IsAllDay()
}

// BusyInterval is an occupied period derived from a calendar event for a
// single detection run. It is never persisted.
type BusyInterval struct {
	Start time.Time
	End   time.Time
	Title string
}
