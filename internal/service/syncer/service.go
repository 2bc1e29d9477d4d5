package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/detect"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/notify"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/settings"
)

const (
	DefaultHorizon = 24 * time.Hour
	DefaultTimeout = 30 * time.Second

	outcomeSuccess  = "success"
	outcomeUpstream = "upstream_error"
	outcomeFailed   = "failed"
)

type Config struct {
	Horizon      time.Duration
	FetchTimeout time.Duration
}

type Service struct {
	integrationRepo  domain.IntegrationRepository
	slotRepo         domain.SlotRepository
	eventSource      domain.EventSource
	catalogue        domain.ActionCatalogue
	settingsService  *settings.Service
	detector         *detect.Detector
	notifyService    *notify.Service
	recorder         domain.SyncResultRecorder
	schedulerMetrics *metrics.SchedulerMetrics
	cfg              Config
	now              func() time.Time
}

func NewService(
	integrationRepo domain.IntegrationRepository,
	slotRepo domain.SlotRepository,
	eventSource domain.EventSource,
	catalogue domain.ActionCatalogue,
	settingsService *settings.Service,
	detector *detect.Detector,
	notifyService *notify.Service,
	recorder domain.SyncResultRecorder,
	schedulerMetrics *metrics.SchedulerMetrics,
	cfg Config,
) *Service {
	if cfg.Horizon <= 0 {
		cfg.Horizon = DefaultHorizon
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultTimeout
	}
	return &Service{
		integrationRepo:  integrationRepo,
		slotRepo:         slotRepo,
		eventSource:      eventSource,
		catalogue:        catalogue,
		settingsService:  settingsService,
		detector:         detector,
		notifyService:    notifyService,
		recorder:         recorder,
		schedulerMetrics: schedulerMetrics,
		cfg:              cfg,
		now:              time.Now,
	}
}

// Sync fetches the integration's upcoming events, detects free slots and
// schedules their notifications. A provider failure aborts the run before
// anything is written.
func (s *Service) Sync(ctx context.Context, userID, integrationID string, tier domain.SubscriptionTier) (result *domain.SyncResult, err error) {
	started := time.Now()
	now := s.now()
	result = &domain.SyncResult{IntegrationID: integrationID, UserID: userID}

	integration, err := s.integrationRepo.GetIntegration(ctx, userID, integrationID)
	if err != nil {
		return nil, err
	}
	provider := integration.Provider.String()

	ctx, span := tracing.StartSyncSpan(ctx, userID, integrationID, provider)
	defer func() {
		tracing.RecordSyncResult(span, result.EventsFound, result.SlotsDetected, result.NotificationsScheduled, result.SlotsPurged, err)
		span.End()
		s.recordRun(ctx, provider, err, time.Since(started))
	}()

	if !integration.Enabled {
		return result, domain.NewValidationError("integration_id", "integration is disabled")
	}

	userSettings, err := s.settingsService.Get(ctx, userID)
	if err != nil {
		return result, err
	}
	if err := settings.Validate(userSettings); err != nil {
		return result, err
	}

	events, err := s.fetchEvents(ctx, integration, now)
	if err != nil {
		slog.WarnContext(ctx, "calendar fetch failed",
			slog.String("integration_id", integrationID),
			slog.String("provider", provider),
			slog.String("error", err.Error()),
		)
		return result, err
	}
	result.EventsFound = len(events)

	purged, err := s.notifyService.CleanupOldSlots(ctx, userID)
	if err != nil {
		return result, err
	}
	result.SlotsPurged = purged

	detected, err := s.detector.DetectFreeSlots(ctx, events, userSettings, now)
	if err != nil {
		return result, err
	}
	result.SlotsDetected = len(detected)
	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordSlotsDetected(ctx, len(detected))
	}

	slots, err := s.reconcile(ctx, userID, detected, now)
	if err != nil {
		return result, err
	}

	actions, err := s.catalogue.ListActions(ctx)
	if err != nil {
		return result, fmt.Errorf("list actions: %w", err)
	}

	scheduled, err := s.notifyService.ScheduleSlotNotifications(ctx, userID, slots, actions, tier, userSettings.AdvanceNotificationMinutes)
	if scheduled != nil {
		result.NotificationsScheduled = scheduled.ScheduledCount
	}
	if err != nil {
		return result, err
	}

	integration.LastSyncAt = &now
	if err := s.integrationRepo.SaveIntegration(ctx, integration); err != nil {
		return result, fmt.Errorf("save integration: %w", err)
	}
	result.SyncedAt = now

	if s.recorder != nil {
		if err := s.recorder.RecordSyncResult(ctx, *result); err != nil {
			slog.WarnContext(ctx, "failed to record sync result",
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "calendar sync completed",
		slog.String("user_id", userID),
		slog.String("integration_id", integrationID),
		slog.Int("events_found", result.EventsFound),
		slog.Int("slots_detected", result.SlotsDetected),
		slog.Int("notifications_scheduled", result.NotificationsScheduled),
		slog.Int("slots_purged", result.SlotsPurged),
	)

	return result, nil
}

func (s *Service) fetchEvents(ctx context.Context, integration *domain.Integration, now time.Time) ([]domain.CalendarEvent, error) {
	from, to := now, now.Add(s.cfg.Horizon)

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	fetchCtx, span := tracing.StartCalendarFetchSpan(fetchCtx, integration.Provider.String(), from, to)
	defer span.End()

	fetchStart := time.Now()
	events, err := s.eventSource.FetchEvents(fetchCtx, integration, from, to)
	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordCalendarFetch(ctx, integration.Provider.String(), time.Since(fetchStart))
	}
	tracing.RecordError(span, err)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			return nil, err
		}
		return nil, domain.NewUpstreamError(integration.Provider.String(), err)
	}
	return events, nil
}

// reconcile carries identities over from stored slots so a re-sync does not
// notify twice for the same gap. A stored slot matches when it ends at the
// same instant and starts no later than the detected one; detection clamps
// starts to now, so an ongoing gap shrinks between syncs. Terminal slots are
// dropped.
func (s *Service) reconcile(ctx context.Context, userID string, detected []*domain.FreeSlot, now time.Time) ([]*domain.FreeSlot, error) {
	if len(detected) == 0 {
		return detected, nil
	}

	stored, err := s.slotRepo.ListSlotsInRange(ctx, userID, now.Add(-s.cfg.Horizon), now.Add(2*s.cfg.Horizon))
	if err != nil {
		return nil, fmt.Errorf("list stored slots: %w", err)
	}

	out := make([]*domain.FreeSlot, 0, len(detected))
	for _, slot := range detected {
		prev := findStored(stored, slot)
		if prev == nil {
			out = append(out, slot)
			continue
		}
		if prev.IsTerminal() {
			slog.DebugContext(ctx, "skipping slot already closed by user",
				slog.String("slot_id", prev.ID),
				slog.String("status", string(prev.Status())),
			)
			continue
		}

		slot.ID = prev.ID
		slot.CreatedAt = prev.CreatedAt
		slot.SuggestedActionID = prev.SuggestedActionID
		slot.NotificationSent = prev.NotificationSent
		out = append(out, slot)
	}
	return out, nil
}

func findStored(stored []*domain.FreeSlot, slot *domain.FreeSlot) *domain.FreeSlot {
	for _, prev := range stored {
		if prev.Continues(slot) {
			return prev
		}
	}
	return nil
}

func (s *Service) recordRun(ctx context.Context, provider string, err error, elapsed time.Duration) {
	if s.schedulerMetrics == nil {
		return
	}
	outcome := outcomeSuccess
	switch {
	case errors.Is(err, domain.ErrUpstream):
		outcome = outcomeUpstream
	case err != nil:
		outcome = outcomeFailed
	}
	s.schedulerMetrics.RecordSyncRun(ctx, provider, outcome, elapsed)
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
