package domain

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeFreeSlot NotificationType = "free_slot"
)

type NotificationData struct {
	URL          string    `json:"url"`
	SlotDuration int       `json:"slot_duration"`
	SlotStart    time.Time `json:"slot_start"`
}

type Notification struct {
	ID                string           `json:"notification_id"`
	UserID            string           `json:"user_id"`
	Type              NotificationType `json:"type"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Icon              string           `json:"icon"`
	SlotID            string           `json:"slot_id"`
	SuggestedActionID *string          `json:"suggested_action_id"`
	ScheduledFor      time.Time        `json:"scheduled_for"`
	Sent              bool             `json:"sent"`
	SentAt            *time.Time       `json:"sent_at,omitempty"`
	Read              bool             `json:"read"`
	CreatedAt         time.Time        `json:"created_at"`
	Data              NotificationData `json:"data"`
}

// NewSlotNotification builds the free_slot notification for slot. action may be nil.
func NewSlotNotification(userID string, slot *FreeSlot, action *MicroAction, advanceMinutes int, scheduledFor, now time.Time) *Notification {
	actionName := "a micro-action"
	url := "/dashboard"
	var actionID *string
	if action != nil {
		actionName = action.Title
		id := action.ID
		actionID = &id
		url = "/session/start/" + id
	}

	return &Notification{
		ID:                NewNotificationID(),
		UserID:            userID,
		Type:              NotificationTypeFreeSlot,
		Title:             fmt.Sprintf("Free slot in %d minutes", advanceMinutes),
		Message:           fmt.Sprintf("You have %d min - Suggestion: %s", slot.DurationMinutes, actionName),
		Icon:              "clock",
		SlotID:            slot.ID,
		SuggestedActionID: actionID,
		ScheduledFor:      scheduledFor,
		CreatedAt:         now,
		Data: NotificationData{
			URL:          url,
			SlotDuration: slot.DurationMinutes,
			SlotStart:    slot.Start,
		},
	}
}

func (n *Notification) IsDue(now time.Time) bool {
	return !n.Sent && !n.ScheduledFor.After(now)
}

func (n *Notification) MarkSent(now time.Time) {
	n.Sent = true
	n.SentAt = &now
}
