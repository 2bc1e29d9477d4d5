package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/match"
)

const (
	DefaultPendingLimit = 20

	outcomeCreated   = "created"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

type Service struct {
	notificationRepo domain.NotificationRepository
	slotRepo         domain.SlotRepository
	schedulerMetrics *metrics.SchedulerMetrics
	pendingLimit     int
	now              func() time.Time
}

func NewService(
	notificationRepo domain.NotificationRepository,
	slotRepo domain.SlotRepository,
	schedulerMetrics *metrics.SchedulerMetrics,
	pendingLimit int,
) *Service {
	if pendingLimit <= 0 {
		pendingLimit = DefaultPendingLimit
	}
	return &Service{
		notificationRepo: notificationRepo,
		slotRepo:         slotRepo,
		schedulerMetrics: schedulerMetrics,
		pendingLimit:     pendingLimit,
		now:              time.Now,
	}
}

// ScheduledFor is the delivery instant for a slot: advance minutes before its
// start, never earlier than now.
func ScheduledFor(slotStart time.Time, advanceMinutes int, now time.Time) time.Time {
	at := slotStart.Add(-time.Duration(advanceMinutes) * time.Minute)
	if at.Before(now) {
		return now
	}
	return at
}

// ScheduleSlotNotifications creates at most one free_slot notification per
// slot and upserts every slot that got one, with its matched action.
func (s *Service) ScheduleSlotNotifications(
	ctx context.Context,
	userID string,
	slots []*domain.FreeSlot,
	actions []*domain.MicroAction,
	tier domain.SubscriptionTier,
	advanceMinutes int,
) (*ScheduleResult, error) {
	now := s.now()
	result := &ScheduleResult{}
	toSave := make([]*domain.FreeSlot, 0, len(slots))
	var errs []error

	for _, slot := range slots {
		slot.UserID = userID

		exists, err := s.notificationRepo.ExistsForSlot(ctx, userID, slot.ID, domain.NotificationTypeFreeSlot)
		if err != nil {
			slog.WarnContext(ctx, "failed to check existing notification",
				slog.String("slot_id", slot.ID),
				slog.String("error", err.Error()),
			)
			s.record(ctx, outcomeFailed)
			result.FailedCount++
			errs = append(errs, fmt.Errorf("check notification for %s: %w", slot.ID, err))
			continue
		}
		if exists {
			slog.DebugContext(ctx, "skipping slot with existing notification",
				slog.String("slot_id", slot.ID),
			)
			s.record(ctx, outcomeDuplicate)
			result.SkippedCount++
			continue
		}

		action := match.MatchActionToSlot(slot, actions, tier)
		if action != nil {
			id := action.ID
			slot.SuggestedActionID = &id
		}

		notification := domain.NewSlotNotification(
			userID, slot, action, advanceMinutes,
			ScheduledFor(slot.Start, advanceMinutes, now), now,
		)

		created, err := s.notificationRepo.CreateIfAbsent(ctx, notification)
		if err != nil {
			slog.WarnContext(ctx, "failed to create notification",
				slog.String("slot_id", slot.ID),
				slog.String("error", err.Error()),
			)
			s.record(ctx, outcomeFailed)
			result.FailedCount++
			errs = append(errs, fmt.Errorf("create notification for %s: %w", slot.ID, err))
			continue
		}
		if !created {
			// Lost a race with a concurrent sync for the same slot.
			s.record(ctx, outcomeDuplicate)
			result.SkippedCount++
			continue
		}

		slog.DebugContext(ctx, "notification scheduled",
			slog.String("slot_id", slot.ID),
			slog.String("notification_id", notification.ID),
			slog.Time("scheduled_for", notification.ScheduledFor),
			slog.Bool("has_action", action != nil),
		)
		s.record(ctx, outcomeCreated)
		result.ScheduledCount++
		toSave = append(toSave, slot)
	}

	if len(toSave) > 0 {
		if err := s.slotRepo.SaveSlots(ctx, toSave); err != nil {
			errs = append(errs, fmt.Errorf("save slots: %w", err))
		}
	}

	slog.InfoContext(ctx, "slot notifications scheduled",
		slog.String("user_id", userID),
		slog.Int("slot_count", len(slots)),
		slog.Int("scheduled_count", result.ScheduledCount),
		slog.Int("skipped_count", result.SkippedCount),
		slog.Int("failed_count", result.FailedCount),
	)

	return result, errors.Join(errs...)
}

// GetPendingNotifications returns the user's unsent free_slot notifications
// that are due now, earliest first.
func (s *Service) GetPendingNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	pending, err := s.notificationRepo.ListPending(ctx, userID, s.now(), s.pendingLimit)
	if err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}
	return pending, nil
}

func (s *Service) ListNotifications(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, limit)
}

// MarkSent flags the notification as delivered and mirrors that on its slot
// when the slot is still stored.
func (s *Service) MarkSent(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.GetNotification(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}
	if n.Sent {
		return n, nil
	}

	now := s.now()
	if err := s.notificationRepo.MarkSent(ctx, n.ID, now); err != nil {
		return nil, fmt.Errorf("mark notification sent: %w", err)
	}
	n.MarkSent(now)

	slot, err := s.slotRepo.GetSlot(ctx, userID, n.SlotID)
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return n, nil
	case err != nil:
		slog.WarnContext(ctx, "failed to load slot for sent notification",
			slog.String("slot_id", n.SlotID),
			slog.String("error", err.Error()),
		)
		return n, nil
	}

	slot.NotificationSent = true
	if err := s.slotRepo.SaveSlots(ctx, []*domain.FreeSlot{slot}); err != nil {
		slog.WarnContext(ctx, "failed to flag slot as notified",
			slog.String("slot_id", slot.ID),
			slog.String("error", err.Error()),
		)
	}
	return n, nil
}

// CleanupOldSlots removes the user's slots that ended before now.
func (s *Service) CleanupOldSlots(ctx context.Context, userID string) (int, error) {
	purged, err := s.slotRepo.DeleteSlotsEndedBefore(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("cleanup old slots: %w", err)
	}
	if s.schedulerMetrics != nil && purged > 0 {
		s.schedulerMetrics.RecordSlotsPurged(ctx, purged)
	}
	return purged, nil
}

func (s *Service) record(ctx context.Context, outcome string) {
	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordNotificationScheduled(ctx, outcome)
	}
}

func BuildPushPayload(n *domain.Notification) PushPayload {
	slotID := n.SlotID
	if slotID == "" {
		slotID = "unknown"
	}
	return PushPayload{
		Title: n.Title,
		Body:  n.Message,
		Icon:  "/icons/icon-192x192.png",
		Badge: "/icons/icon-72x72.png",
		Tag:   "slot-" + slotID,
		Data:  n.Data,
		Actions: []PushAction{
			{Action: "start", Title: "Start"},
			{Action: "dismiss", Title: "Not now"},
		},
		Vibrate:            []int{100, 50, 100},
		RequireInteraction: true,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
