package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=slot_repository.go -destination=slot_repository_mock.go -package=domain

type SlotRepository interface {
	SaveSlots(ctx context.Context, slots []*FreeSlot) error
	GetSlot(ctx context.Context, userID, slotID string) (*FreeSlot, error)
	// ListSlotsInRange returns the user's slots starting in [from, to), ordered by start.
	ListSlotsInRange(ctx context.Context, userID string, from, to time.Time) ([]*FreeSlot, error)
	DeleteSlotsEndedBefore(ctx context.Context, userID string, cutoff time.Time) (int, error)
	DeleteSlotsByUser(ctx context.Context, userID string) (int, error)
}
