package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/notify"
)

const (
	DefaultBatchLimit = 100

	outcomeQueued = "queued"
	outcomeFailed = "failed"
)

type Result struct {
	DispatchedCount int `json:"dispatched_count"`
	FailedCount     int `json:"failed_count"`
}

// Service hands due free_slot notifications to the push delivery queue.
type Service struct {
	notificationRepo domain.NotificationRepository
	notifyService    *notify.Service
	taskQueue        taskqueue.TaskQueue
	schedulerMetrics *metrics.SchedulerMetrics
	batchLimit       int
	now              func() time.Time
}

func NewService(
	notificationRepo domain.NotificationRepository,
	notifyService *notify.Service,
	taskQueue taskqueue.TaskQueue,
	schedulerMetrics *metrics.SchedulerMetrics,
	batchLimit int,
) *Service {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &Service{
		notificationRepo: notificationRepo,
		notifyService:    notifyService,
		taskQueue:        taskQueue,
		schedulerMetrics: schedulerMetrics,
		batchLimit:       batchLimit,
		now:              time.Now,
	}
}

// Dispatch queues every unsent notification due by now, up to the batch
// limit, and marks each queued one as sent.
func (s *Service) Dispatch(ctx context.Context) (*Result, error) {
	ctx, span := tracing.StartDispatchSpan(ctx, s.batchLimit)
	defer span.End()

	now := s.now()
	due, err := s.notificationRepo.ListDue(ctx, now, s.batchLimit)
	if err != nil {
		err = fmt.Errorf("list due notifications: %w", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	result := &Result{}
	var errs []error

	for _, n := range due {
		// another dispatcher may have sent it after the index was read
		if !n.IsDue(now) {
			continue
		}

		task := &taskqueue.NotificationTask{
			ScheduleAt:     n.ScheduledFor,
			NotificationID: n.ID,
			UserID:         n.UserID,
			SlotID:         n.SlotID,
			TaskType:       string(n.Type),
			Payload:        notify.BuildPushPayload(n),
		}

		if _, err := s.taskQueue.RegisterNotification(ctx, task); err != nil {
			slog.WarnContext(ctx, "failed to queue notification",
				slog.String("notification_id", n.ID),
				slog.String("user_id", n.UserID),
				slog.String("error", err.Error()),
			)
			result.FailedCount++
			s.record(ctx, outcomeFailed)
			errs = append(errs, fmt.Errorf("queue notification %s: %w", n.ID, err))
			continue
		}

		// The task is named after the notification, so a retry after a failed
		// MarkSent cannot push twice.
		if _, err := s.notifyService.MarkSent(ctx, n.UserID, n.ID); err != nil {
			slog.WarnContext(ctx, "queued notification could not be marked sent",
				slog.String("notification_id", n.ID),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("mark notification %s sent: %w", n.ID, err))
		}

		result.DispatchedCount++
		s.record(ctx, outcomeQueued)
	}

	err = errors.Join(errs...)
	tracing.RecordDispatchResult(span, result.DispatchedCount, result.FailedCount, err)

	slog.InfoContext(ctx, "notification dispatch completed",
		slog.Int("due_count", len(due)),
		slog.Int("dispatched_count", result.DispatchedCount),
		slog.Int("failed_count", result.FailedCount),
	)

	return result, err
}

func (s *Service) record(ctx context.Context, outcome string) {
	if s.schedulerMetrics != nil {
		s.schedulerMetrics.RecordNotificationDispatched(ctx, outcome)
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
