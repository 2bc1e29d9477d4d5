package integration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/validation"
)

type RegisterInput struct {
	Provider    domain.CalendarProvider `json:"provider" validate:"required,oneof=google_calendar ics"`
	CalendarID  string                  `json:"calendar_id"`
	FeedURL     string                  `json:"feed_url" validate:"required_if=Provider ics"`
	AccessToken string                  `json:"access_token" validate:"required_if=Provider google_calendar"`
}

type Service struct {
	integrationRepo domain.IntegrationRepository
	slotRepo        domain.SlotRepository
	now             func() time.Time
}

func NewService(integrationRepo domain.IntegrationRepository, slotRepo domain.SlotRepository) *Service {
	return &Service{
		integrationRepo: integrationRepo,
		slotRepo:        slotRepo,
		now:             time.Now,
	}
}

func (s *Service) Register(ctx context.Context, userID string, in RegisterInput) (*domain.Integration, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.FeedURL != "" {
		if err := validation.Var("feed_url", in.FeedURL, "http_url"); err != nil {
			return nil, err
		}
	}

	calendarID := in.CalendarID
	if calendarID == "" && in.Provider == domain.ProviderGoogleCalendar {
		calendarID = "primary"
	}

	integration := &domain.Integration{
		ID:          domain.NewIntegrationID(),
		UserID:      userID,
		Provider:    in.Provider,
		CalendarID:  calendarID,
		FeedURL:     in.FeedURL,
		AccessToken: in.AccessToken,
		Enabled:     true,
		CreatedAt:   s.now(),
	}

	if err := s.integrationRepo.SaveIntegration(ctx, integration); err != nil {
		return nil, fmt.Errorf("save integration: %w", err)
	}

	slog.InfoContext(ctx, "calendar integration registered",
		slog.String("user_id", userID),
		slog.String("integration_id", integration.ID),
		slog.String("provider", integration.Provider.String()),
	)

	return integration, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*domain.Integration, error) {
	return s.integrationRepo.ListIntegrations(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, integrationID string) (*domain.Integration, error) {
	return s.integrationRepo.GetIntegration(ctx, userID, integrationID)
}

// Remove deletes the integration and every slot stored for the user.
func (s *Service) Remove(ctx context.Context, userID, integrationID string) error {
	if _, err := s.integrationRepo.GetIntegration(ctx, userID, integrationID); err != nil {
		return err
	}

	if err := s.integrationRepo.DeleteIntegration(ctx, userID, integrationID); err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}

	purged, err := s.slotRepo.DeleteSlotsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete slots: %w", err)
	}

	slog.InfoContext(ctx, "calendar integration removed",
		slog.String("user_id", userID),
		slog.String("integration_id", integrationID),
		slog.Int("slots_purged", purged),
	)

	return nil
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
