package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/testutil"
)

// Slot documents expire relative to their end, so fixtures sit in the future.
var baseTime = time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)

func newSlot(userID, id string, startOffset, minutes int) *domain.FreeSlot {
	start := baseTime.Add(time.Duration(startOffset) * time.Minute)
	return &domain.FreeSlot{
		ID:                id,
		UserID:            userID,
		Start:             start,
		End:               start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes:   minutes,
		SuggestedCategory: "learning",
		CreatedAt:         baseTime,
	}
}

func TestSlotRepository_SaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSlotRepository(client)

	actionID := "act_stretch"
	slot := newSlot("user_1", "slot_a", 60, 15)
	slot.SuggestedActionID = &actionID

	if err := repo.SaveSlots(ctx, []*domain.FreeSlot{slot}); err != nil {
		t.Fatalf("SaveSlots() error = %v", err)
	}

	got, err := repo.GetSlot(ctx, "user_1", "slot_a")
	if err != nil {
		t.Fatalf("GetSlot() error = %v", err)
	}
	if !got.Start.Equal(slot.Start) || !got.End.Equal(slot.End) || got.DurationMinutes != 15 {
		t.Errorf("GetSlot() = %+v", got)
	}
	if got.SuggestedActionID == nil || *got.SuggestedActionID != actionID {
		t.Errorf("SuggestedActionID = %v", got.SuggestedActionID)
	}

	if _, err := repo.GetSlot(ctx, "user_2", "slot_a"); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("GetSlot(other user) error = %v, want ErrSlotNotFound", err)
	}
}

func TestSlotRepository_ListSlotsInRange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSlotRepository(client)

	slots := []*domain.FreeSlot{
		newSlot("user_1", "slot_c", 300, 10),
		newSlot("user_1", "slot_a", 0, 10),
		newSlot("user_1", "slot_b", 120, 10),
		newSlot("user_2", "slot_x", 60, 10),
	}
	if err := repo.SaveSlots(ctx, slots); err != nil {
		t.Fatalf("SaveSlots() error = %v", err)
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want []string
	}{
		{"all ordered by start", baseTime, baseTime.Add(24 * time.Hour), []string{"slot_a", "slot_b", "slot_c"}},
		{"end is exclusive", baseTime, baseTime.Add(120 * time.Minute), []string{"slot_a"}},
		{"start is inclusive", baseTime.Add(120 * time.Minute), baseTime.Add(121 * time.Minute), []string{"slot_b"}},
		{"empty range", baseTime.Add(-time.Hour), baseTime, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListSlotsInRange(ctx, "user_1", tt.from, tt.to)
			if err != nil {
				t.Fatalf("ListSlotsInRange() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d slots, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("slot[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSlotRepository_DeleteSlotsEndedBefore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSlotRepository(client)

	if err := repo.SaveSlots(ctx, []*domain.FreeSlot{
		newSlot("user_1", "slot_old", 0, 10),
		newSlot("user_1", "slot_edge", 20, 10),
		newSlot("user_1", "slot_new", 60, 10),
	}); err != nil {
		t.Fatalf("SaveSlots() error = %v", err)
	}

	// slot_edge ends exactly at the cutoff and is kept
	purged, err := repo.DeleteSlotsEndedBefore(ctx, "user_1", baseTime.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("DeleteSlotsEndedBefore() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	if _, err := repo.GetSlot(ctx, "user_1", "slot_old"); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("slot_old still present: %v", err)
	}
	remaining, err := repo.ListSlotsInRange(ctx, "user_1", baseTime, baseTime.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ListSlotsInRange() error = %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("remaining = %d, want 2", len(remaining))
	}
}

func TestSlotRepository_DeleteSlotsByUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSlotRepository(client)

	if err := repo.SaveSlots(ctx, []*domain.FreeSlot{
		newSlot("user_1", "slot_a", 0, 10),
		newSlot("user_1", "slot_b", 60, 10),
		newSlot("user_2", "slot_x", 0, 10),
	}); err != nil {
		t.Fatalf("SaveSlots() error = %v", err)
	}

	purged, err := repo.DeleteSlotsByUser(ctx, "user_1")
	if err != nil {
		t.Fatalf("DeleteSlotsByUser() error = %v", err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}

	if _, err := repo.GetSlot(ctx, "user_2", "slot_x"); err != nil {
		t.Errorf("other user's slot removed: %v", err)
	}
}

func TestSlotRepository_SaveSlotsRejectsInvalid(t *testing.T) {
	repo := NewSlotRepository(nil)

	err := repo.SaveSlots(context.Background(), []*domain.FreeSlot{{ID: "slot_a"}})
	if !errors.Is(err, ErrInvalidSlotData) {
		t.Errorf("SaveSlots() error = %v, want ErrInvalidSlotData", err)
	}
}
