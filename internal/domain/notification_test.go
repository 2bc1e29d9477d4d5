package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewSlotNotification(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	slot := &FreeSlot{ID: "slot_abc", Start: now.Add(10 * time.Minute), End: now.Add(25 * time.Minute), DurationMinutes: 15}

	t.Run("with action", func(t *testing.T) {
		action := &MicroAction{ID: "action_breathe", Title: "Box breathing"}
		n := NewSlotNotification("user_1", slot, action, 5, now.Add(5*time.Minute), now)

		if !strings.HasPrefix(n.ID, "notif_") {
			t.Errorf("ID = %q, want notif_ prefix", n.ID)
		}
		if n.Type != NotificationTypeFreeSlot {
			t.Errorf("Type = %v", n.Type)
		}
		if n.Title != "Free slot in 5 minutes" {
			t.Errorf("Title = %q", n.Title)
		}
		if n.Message != "You have 15 min - Suggestion: Box breathing" {
			t.Errorf("Message = %q", n.Message)
		}
		if n.SuggestedActionID == nil || *n.SuggestedActionID != "action_breathe" {
			t.Errorf("SuggestedActionID = %v", n.SuggestedActionID)
		}
		if n.Data.URL != "/session/start/action_breathe" {
			t.Errorf("Data.URL = %q", n.Data.URL)
		}
		if n.Sent {
			t.Error("new notification must be unsent")
		}
	})

	t.Run("without action", func(t *testing.T) {
		n := NewSlotNotification("user_1", slot, nil, 5, now, now)
		if n.SuggestedActionID != nil {
			t.Errorf("SuggestedActionID = %v, want nil", *n.SuggestedActionID)
		}
		if n.Data.URL != "/dashboard" {
			t.Errorf("Data.URL = %q, want /dashboard", n.Data.URL)
		}
		if !strings.HasSuffix(n.Message, "a micro-action") {
			t.Errorf("Message = %q", n.Message)
		}
	})
}

func TestNotification_IsDue(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		n    Notification
		want bool
	}{
		{name: "scheduled in past", n: Notification{ScheduledFor: now.Add(-time.Minute)}, want: true},
		{name: "scheduled now", n: Notification{ScheduledFor: now}, want: true},
		{name: "scheduled in future", n: Notification{ScheduledFor: now.Add(time.Minute)}, want: false},
		{name: "already sent", n: Notification{ScheduledFor: now.Add(-time.Minute), Sent: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}
