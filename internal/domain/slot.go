package domain

import "time"

type SlotStatus string

const (
	SlotStatusCreated     SlotStatus = "created"
	SlotStatusNotified    SlotStatus = "notified"
	SlotStatusDismissed   SlotStatus = "dismissed"
	SlotStatusActionTaken SlotStatus = "action_taken"
)

// FreeSlot is an unoccupied interval eligible for a micro-action suggestion.
type FreeSlot struct {
	ID                string     `json:"slot_id"`
	UserID            string     `json:"user_id,omitempty"`
	Start             time.Time  `json:"start_time"`
	End               time.Time  `json:"end_time"`
	DurationMinutes   int        `json:"duration_minutes"`
	SuggestedCategory string     `json:"suggested_category"`
	SuggestedActionID *string    `json:"suggested_action_id"`
	NotificationSent  bool       `json:"notification_sent"`
	ActionTaken       bool       `json:"action_taken"`
	Dismissed         bool       `json:"dismissed"`
	CreatedAt         time.Time  `json:"created_at"`
	DismissedAt       *time.Time `json:"dismissed_at,omitempty"`
	ActionTakenAt     *time.Time `json:"action_taken_at,omitempty"`
}

func NewFreeSlot(start, end time.Time, durationMinutes int, category string, now time.Time) *FreeSlot {
	return &FreeSlot{
		ID:                NewSlotID(),
		Start:             start,
		End:               end,
		DurationMinutes:   durationMinutes,
		SuggestedCategory: category,
		CreatedAt:         now,
	}
}

func (s *FreeSlot) Status() SlotStatus {
	switch {
	case s.Dismissed:
		return SlotStatusDismissed
	case s.ActionTaken:
		return SlotStatusActionTaken
	case s.NotificationSent:
		return SlotStatusNotified
	default:
		return SlotStatusCreated
	}
}

func (s *FreeSlot) IsTerminal() bool {
	return s.Dismissed || s.ActionTaken
}

func (s *FreeSlot) Dismiss(now time.Time) error {
	if s.IsTerminal() {
		return ErrSlotTerminal
	}
	s.Dismissed = true
	s.DismissedAt = &now
	return nil
}

func (s *FreeSlot) TakeAction(now time.Time) error {
	if s.IsTerminal() {
		return ErrSlotTerminal
	}
	s.ActionTaken = true
	s.ActionTakenAt = &now
	return nil
}

// Continues reports whether detected is this stored slot seen again later:
// it ends at the same time and starts no earlier, since a re-detection
// clamps the start to the current time.
func (s *FreeSlot) Continues(detected *FreeSlot) bool {
	return s.End.Equal(detected.End) && !s.Start.After(detected.Start)
}
