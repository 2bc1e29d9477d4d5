package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/notify"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	notifications *domain.MockNotificationRepository
	slots         *domain.MockSlotRepository
	queue         *taskqueue.MockTaskQueue
	svc           *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		notifications: domain.NewMockNotificationRepository(ctrl),
		slots:         domain.NewMockSlotRepository(ctrl),
		queue:         taskqueue.NewMockTaskQueue(ctrl),
	}
	clock := func() time.Time { return testNow }
	notifySvc := notify.NewService(f.notifications, f.slots, nil, 0).WithClock(clock)
	f.svc = NewService(f.notifications, notifySvc, f.queue, nil, 10).WithClock(clock)
	return f
}

func dueNotification(id, slotID string) *domain.Notification {
	return &domain.Notification{
		ID:           id,
		UserID:       "user_1",
		Type:         domain.NotificationTypeFreeSlot,
		Title:        "Free slot in 5 minutes",
		Message:      "You have 15 min - Suggestion: Stretch",
		SlotID:       slotID,
		ScheduledFor: testNow.Add(-time.Minute),
		CreatedAt:    testNow.Add(-time.Hour),
	}
}

func TestDispatch_QueuesAndMarksSent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n := dueNotification("notif_1", "slot_1")
	slot := &domain.FreeSlot{ID: "slot_1", UserID: "user_1"}

	f.notifications.EXPECT().ListDue(gomock.Any(), testNow, 10).Return([]*domain.Notification{n}, nil)
	f.queue.EXPECT().RegisterNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *taskqueue.NotificationTask) (*taskqueue.TaskResponse, error) {
			if task.NotificationID != "notif_1" || task.SlotID != "slot_1" || task.TaskType != "free_slot" {
				t.Errorf("unexpected task %+v", task)
			}
			payload, ok := task.Payload.(notify.PushPayload)
			if !ok {
				t.Fatalf("payload type = %T", task.Payload)
			}
			if payload.Tag != "slot-slot_1" {
				t.Errorf("payload tag = %q", payload.Tag)
			}
			return &taskqueue.TaskResponse{Name: task.NotificationID}, nil
		})
	f.notifications.EXPECT().GetNotification(gomock.Any(), "user_1", "notif_1").Return(n, nil)
	f.notifications.EXPECT().MarkSent(gomock.Any(), "notif_1", testNow).Return(nil)
	f.slots.EXPECT().GetSlot(gomock.Any(), "user_1", "slot_1").Return(slot, nil)
	f.slots.EXPECT().SaveSlots(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.svc.Dispatch(ctx)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.DispatchedCount != 1 || result.FailedCount != 0 {
		t.Errorf("result = %+v", result)
	}
	if !slot.NotificationSent {
		t.Error("slot not flagged as notified")
	}
}

func TestDispatch_QueueFailureLeavesNotificationUnsent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	queueErr := errors.New("queue unavailable")
	f.notifications.EXPECT().ListDue(gomock.Any(), testNow, 10).Return([]*domain.Notification{
		dueNotification("notif_1", "slot_1"),
		dueNotification("notif_2", "slot_2"),
	}, nil)
	f.queue.EXPECT().RegisterNotification(gomock.Any(), gomock.Any()).Return(nil, queueErr)
	f.queue.EXPECT().RegisterNotification(gomock.Any(), gomock.Any()).Return(&taskqueue.TaskResponse{}, nil)
	f.notifications.EXPECT().GetNotification(gomock.Any(), "user_1", "notif_2").Return(dueNotification("notif_2", "slot_2"), nil)
	f.notifications.EXPECT().MarkSent(gomock.Any(), "notif_2", testNow).Return(nil)
	f.slots.EXPECT().GetSlot(gomock.Any(), "user_1", "slot_2").Return(nil, domain.ErrSlotNotFound)

	result, err := f.svc.Dispatch(ctx)
	if !errors.Is(err, queueErr) {
		t.Fatalf("Dispatch() error = %v, want %v", err, queueErr)
	}
	if result.DispatchedCount != 1 || result.FailedCount != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestDispatch_SkipsNotificationsNoLongerDue(t *testing.T) {
	f := newFixture(t)

	sent := dueNotification("notif_1", "slot_1")
	sentAt := testNow.Add(-30 * time.Second)
	sent.Sent = true
	sent.SentAt = &sentAt
	later := dueNotification("notif_2", "slot_2")
	later.ScheduledFor = testNow.Add(time.Minute)

	f.notifications.EXPECT().ListDue(gomock.Any(), testNow, 10).Return([]*domain.Notification{sent, later}, nil)

	result, err := f.svc.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.DispatchedCount != 0 || result.FailedCount != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestDispatch_ListFailure(t *testing.T) {
	f := newFixture(t)

	f.notifications.EXPECT().ListDue(gomock.Any(), testNow, 10).Return(nil, errors.New("redis down"))

	if _, err := f.svc.Dispatch(context.Background()); err == nil {
		t.Fatal("Dispatch() error = nil, want failure")
	}
}

func TestDispatch_NothingDue(t *testing.T) {
	f := newFixture(t)

	f.notifications.EXPECT().ListDue(gomock.Any(), testNow, 10).Return(nil, nil)

	result, err := f.svc.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.DispatchedCount != 0 || result.FailedCount != 0 {
		t.Errorf("result = %+v", result)
	}
}
