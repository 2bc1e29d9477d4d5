package config

import "time"

const (
	syncHorizonHoursEnv   = "SYNC_HORIZON_HOURS"
	syncTimeoutSecondsEnv = "SYNC_TIMEOUT_SECONDS"
	calendarMaxResultsEnv = "CALENDAR_MAX_RESULTS"

	defaultSyncHorizonHours   = 24
	defaultSyncTimeoutSeconds = 30
	defaultCalendarMaxResults = 100
)

type SyncConfig struct {
	HorizonHours       int
	TimeoutSeconds     int // applied to every calendar provider call
	CalendarMaxResults int
}

func LoadSyncConfig() *SyncConfig {
	return &SyncConfig{
		HorizonHours:       positiveIntEnv(syncHorizonHoursEnv, defaultSyncHorizonHours),
		TimeoutSeconds:     positiveIntEnv(syncTimeoutSecondsEnv, defaultSyncTimeoutSeconds),
		CalendarMaxResults: positiveIntEnv(calendarMaxResultsEnv, defaultCalendarMaxResults),
	}
}

func (c *SyncConfig) Horizon() time.Duration {
	return time.Duration(c.HorizonHours) * time.Hour
}

func (c *SyncConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
