package domain

import "time"

type CalendarProvider string

const (
	ProviderGoogleCalendar CalendarProvider = "google_calendar"
	ProviderICS            CalendarProvider = "ics"
)

func (p CalendarProvider) String() string {
	return string(p)
}

func (p CalendarProvider) IsValid() bool {
	return p == ProviderGoogleCalendar || p == ProviderICS
}

// Integration is a user's connected calendar source.
type Integration struct {
	ID          string           `json:"integration_id"`
	UserID      string           `json:"user_id"`
	Provider    CalendarProvider `json:"provider"`
	CalendarID  string           `json:"calendar_id,omitempty"`
	FeedURL     string           `json:"feed_url,omitempty"`
	AccessToken string           `json:"-"`
	Enabled     bool             `json:"enabled"`
	CreatedAt   time.Time        `json:"created_at"`
	LastSyncAt  *time.Time       `json:"last_sync_at"`
}

type SyncResult struct {
	IntegrationID          string    `json:"integration_id"`
	UserID                 string    `json:"user_id"`
	EventsFound            int       `json:"events_found"`
	SlotsDetected          int       `json:"slots_detected"`
	NotificationsScheduled int       `json:"notifications_scheduled"`
	SlotsPurged            int       `json:"slots_purged"`
	SyncedAt               time.Time `json:"last_sync"`
}
