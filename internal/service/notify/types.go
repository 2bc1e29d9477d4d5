package notify

import "github.com/KasumiMercury/primind-slot-scheduler/internal/domain"

type ScheduleResult struct {
	ScheduledCount int `json:"scheduled_count"`
	SkippedCount   int `json:"skipped_count"`
	FailedCount    int `json:"failed_count"`
}

type PushAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// PushPayload is the web-push body delivered for a notification.
type PushPayload struct {
	Title              string                  `json:"title"`
	Body               string                  `json:"body"`
	Icon               string                  `json:"icon"`
	Badge              string                  `json:"badge"`
	Tag                string                  `json:"tag"`
	Data               domain.NotificationData `json:"data"`
	Actions            []PushAction            `json:"actions"`
	Vibrate            []int                   `json:"vibrate"`
	RequireInteraction bool                    `json:"requireInteraction"`
}
