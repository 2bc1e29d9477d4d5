package slots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/detect"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/settings"
)

const (
	todayLimit = 20
	weekLimit  = 50
	weekSpan   = 7 * 24 * time.Hour
)

// SlotView is a stored slot with its suggested action resolved.
type SlotView struct {
	*domain.FreeSlot
	Status          domain.SlotStatus   `json:"status"`
	SuggestedAction *domain.MicroAction `json:"suggested_action,omitempty"`
}

type Service struct {
	slotRepo        domain.SlotRepository
	catalogue       domain.ActionCatalogue
	settingsService *settings.Service
	now             func() time.Time
}

func NewService(slotRepo domain.SlotRepository, catalogue domain.ActionCatalogue, settingsService *settings.Service) *Service {
	return &Service{
		slotRepo:        slotRepo,
		catalogue:       catalogue,
		settingsService: settingsService,
		now:             time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today lists the user's slots from now until midnight in the user's timezone.
func (s *Service) Today(ctx context.Context, userID string) ([]SlotView, error) {
	userSettings, err := s.settingsService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc, err := detect.Location(userSettings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	now := s.now().In(loc)
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, loc)

	return s.list(ctx, userID, now, midnight, todayLimit)
}

func (s *Service) Week(ctx context.Context, userID string) ([]SlotView, error) {
	now := s.now()
	return s.list(ctx, userID, now, now.Add(weekSpan), weekLimit)
}

// Next returns the earliest upcoming slot still open to the user, or nil.
func (s *Service) Next(ctx context.Context, userID string) (*SlotView, error) {
	now := s.now()
	stored, err := s.slotRepo.ListSlotsInRange(ctx, userID, now, now.Add(weekSpan))
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	for _, slot := range stored {
		if slot.IsTerminal() {
			continue
		}
		view := s.enrich(ctx, slot)
		return &view, nil
	}
	return nil, nil
}

func (s *Service) Dismiss(ctx context.Context, userID, slotID string) (*domain.FreeSlot, error) {
	return s.transition(ctx, userID, slotID, (*domain.FreeSlot).Dismiss)
}

func (s *Service) MarkActionTaken(ctx context.Context, userID, slotID string) (*domain.FreeSlot, error) {
	return s.transition(ctx, userID, slotID, (*domain.FreeSlot).TakeAction)
}

func (s *Service) transition(ctx context.Context, userID, slotID string, apply func(*domain.FreeSlot, time.Time) error) (*domain.FreeSlot, error) {
	slot, err := s.slotRepo.GetSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}
	if err := apply(slot, s.now()); err != nil {
		return nil, err
	}
	if err := s.slotRepo.SaveSlots(ctx, []*domain.FreeSlot{slot}); err != nil {
		return nil, fmt.Errorf("save slot: %w", err)
	}

	slog.InfoContext(ctx, "slot status changed",
		slog.String("user_id", userID),
		slog.String("slot_id", slotID),
		slog.String("status", string(slot.Status())),
	)
	return slot, nil
}

func (s *Service) list(ctx context.Context, userID string, from, to time.Time, limit int) ([]SlotView, error) {
	stored, err := s.slotRepo.ListSlotsInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	if len(stored) > limit {
		stored = stored[:limit]
	}

	views := make([]SlotView, 0, len(stored))
	for _, slot := range stored {
		views = append(views, s.enrich(ctx, slot))
	}
	return views, nil
}

// enrich resolves the suggested action. An action removed from the catalogue
// is reported as no suggestion.
func (s *Service) enrich(ctx context.Context, slot *domain.FreeSlot) SlotView {
	view := SlotView{FreeSlot: slot, Status: slot.Status()}
	if slot.SuggestedActionID == nil {
		return view
	}

	action, err := s.catalogue.GetAction(ctx, *slot.SuggestedActionID)
	switch {
	case errors.Is(err, domain.ErrActionNotFound):
	case err != nil:
		slog.WarnContext(ctx, "failed to resolve suggested action",
			slog.String("slot_id", slot.ID),
			slog.String("action_id", *slot.SuggestedActionID),
			slog.String("error", err.Error()),
		)
	default:
		view.SuggestedAction = action
	}
	return view
}
