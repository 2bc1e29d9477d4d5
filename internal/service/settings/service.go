package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type Service struct {
	settingsRepo domain.SettingsRepository
}

func NewService(settingsRepo domain.SettingsRepository) *Service {
	return &Service{settingsRepo: settingsRepo}
}

// Get returns the user's stored settings merged over the defaults.
func (s *Service) Get(ctx context.Context, userID string) (domain.DetectionSettings, error) {
	override, err := s.settingsRepo.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return domain.DefaultDetectionSettings(), nil
		}
		return domain.DetectionSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return domain.DefaultDetectionSettings().Merge(override), nil
}

// Update applies patch over the current settings, validates the result and
// stores it. Nothing is written when validation fails.
func (s *Service) Update(ctx context.Context, userID string, patch *domain.SettingsOverride) (domain.DetectionSettings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return domain.DetectionSettings{}, err
	}

	updated := current.Merge(patch)
	if err := Validate(updated); err != nil {
		return domain.DetectionSettings{}, err
	}

	if err := s.settingsRepo.SaveSettings(ctx, userID, domain.OverrideFrom(updated)); err != nil {
		return domain.DetectionSettings{}, fmt.Errorf("save settings: %w", err)
	}

	slog.InfoContext(ctx, "slot settings updated",
		slog.String("user_id", userID),
		slog.Bool("slot_detection_enabled", updated.SlotDetectionEnabled),
		slog.Int("min_slot_duration", updated.MinSlotDuration),
		slog.Int("max_slot_duration", updated.MaxSlotDuration),
	)

	return updated, nil
}
