package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/detect"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/notify"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/settings"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 2, 9, 50, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func event(title string, start, end time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{
		Title: title,
		Start: domain.EventTime{DateTime: start.Format(time.RFC3339)},
		End:   domain.EventTime{DateTime: end.Format(time.RFC3339)},
	}
}

type mocks struct {
	integrations  *domain.MockIntegrationRepository
	slots         *domain.MockSlotRepository
	notifications *domain.MockNotificationRepository
	settings      *domain.MockSettingsRepository
	events        *domain.MockEventSource
	catalogue     *domain.MockActionCatalogue
}

func newTestService(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		integrations:  domain.NewMockIntegrationRepository(ctrl),
		slots:         domain.NewMockSlotRepository(ctrl),
		notifications: domain.NewMockNotificationRepository(ctrl),
		settings:      domain.NewMockSettingsRepository(ctrl),
		events:        domain.NewMockEventSource(ctrl),
		catalogue:     domain.NewMockActionCatalogue(ctrl),
	}

	clock := func() time.Time { return testNow }
	notifySvc := notify.NewService(m.notifications, m.slots, nil, 0).WithClock(clock)
	svc := NewService(
		m.integrations,
		m.slots,
		m.events,
		m.catalogue,
		settings.NewService(m.settings),
		detect.NewDetector(),
		notifySvc,
		nil,
		nil,
		Config{},
	).WithClock(clock)

	return svc, m
}

func icsIntegration() *domain.Integration {
	return &domain.Integration{ID: "int_1", UserID: "user_1", Provider: domain.ProviderICS, FeedURL: "https://example.com/a.ics", Enabled: true}
}

func TestSync_Success(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	integration := icsIntegration()

	m.integrations.EXPECT().GetIntegration(gomock.Any(), "user_1", "int_1").Return(integration, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, domain.ErrSettingsNotFound)
	m.events.EXPECT().FetchEvents(gomock.Any(), integration, testNow, testNow.Add(24*time.Hour)).
		Return([]domain.CalendarEvent{
			event("Standup", at(10, 0), at(10, 30)),
			event("Review", at(10, 45), at(17, 0)),
		}, nil)
	m.slots.EXPECT().DeleteSlotsEndedBefore(gomock.Any(), "user_1", testNow).Return(1, nil)
	m.slots.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", gomock.Any(), gomock.Any()).Return(nil, nil)
	m.catalogue.EXPECT().ListActions(gomock.Any()).Return([]*domain.MicroAction{
		{ID: "a1", Title: "Stretch", Category: domain.CategoryLearning, DurationMin: 5},
	}, nil)
	m.notifications.EXPECT().ExistsForSlot(gomock.Any(), "user_1", gomock.Any(), domain.NotificationTypeFreeSlot).Return(false, nil).Times(2)
	m.notifications.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	m.slots.EXPECT().SaveSlots(gomock.Any(), gomock.Len(2)).Return(nil)
	m.integrations.EXPECT().SaveIntegration(gomock.Any(), integration).Return(nil)

	result, err := svc.Sync(ctx, "user_1", "int_1", domain.TierFree)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if result.EventsFound != 2 || result.SlotsDetected != 2 || result.NotificationsScheduled != 2 || result.SlotsPurged != 1 {
		t.Errorf("result = %+v", result)
	}
	if integration.LastSyncAt == nil || !integration.LastSyncAt.Equal(testNow) {
		t.Errorf("LastSyncAt = %v, want %v", integration.LastSyncAt, testNow)
	}
	if !result.SyncedAt.Equal(testNow) {
		t.Errorf("SyncedAt = %v", result.SyncedAt)
	}
}

func TestSync_UpstreamFailureWritesNothing(t *testing.T) {
	svc, m := newTestService(t)
	integration := icsIntegration()

	m.integrations.EXPECT().GetIntegration(gomock.Any(), "user_1", "int_1").Return(integration, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, domain.ErrSettingsNotFound)
	m.events.EXPECT().FetchEvents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("feed returned 503"))

	_, err := svc.Sync(context.Background(), "user_1", "int_1", domain.TierFree)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("Sync() error = %v, want ErrUpstream", err)
	}
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) || upstream.Provider != "ics" {
		t.Errorf("error = %#v, want UpstreamError for ics", err)
	}
	if integration.LastSyncAt != nil {
		t.Error("LastSyncAt must not change on failure")
	}
}

func TestSync_IntegrationNotFound(t *testing.T) {
	svc, m := newTestService(t)
	m.integrations.EXPECT().GetIntegration(gomock.Any(), "user_1", "int_x").Return(nil, domain.ErrIntegrationNotFound)

	_, err := svc.Sync(context.Background(), "user_1", "int_x", domain.TierFree)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Sync() error = %v, want ErrNotFound", err)
	}
}

func TestSync_InvalidStoredSettings(t *testing.T) {
	svc, m := newTestService(t)
	badMin := 40

	m.integrations.EXPECT().GetIntegration(gomock.Any(), "user_1", "int_1").Return(icsIntegration(), nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), "user_1").Return(&domain.SettingsOverride{MinSlotDuration: &badMin}, nil)

	_, err := svc.Sync(context.Background(), "user_1", "int_1", domain.TierFree)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Sync() error = %v, want ErrValidation", err)
	}
}

func TestSync_DisabledIntegration(t *testing.T) {
	svc, m := newTestService(t)
	integration := icsIntegration()
	integration.Enabled = false

	m.integrations.EXPECT().GetIntegration(gomock.Any(), "user_1", "int_1").Return(integration, nil)

	_, err := svc.Sync(context.Background(), "user_1", "int_1", domain.TierFree)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Sync() error = %v, want ErrValidation", err)
	}
}

func TestSync_ReusesStoredSlotIdentity(t *testing.T) {
	svc, m := newTestService(t)
	integration := icsIntegration()
	actionID := "a1"

	stored := []*domain.FreeSlot{
		// Detected earlier at 09:45; the same gap is now clamped to 09:50.
		{ID: "slot_prev", Start: at(9, 45), End: at(10, 0), CreatedAt: at(9, 45), SuggestedActionID: &actionID},
		// Dismissed by the user.
		{ID: "slot_closed", Start: at(10, 30), End: at(10, 45), Dismissed: true},
	}

	m.integrations.EXPECT().GetIntegration(gomock.Any(), "user_1", "int_1").Return(integration, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, domain.ErrSettingsNotFound)
	m.events.EXPECT().FetchEvents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.CalendarEvent{
			event("Standup", at(10, 0), at(10, 30)),
			event("Review", at(10, 45), at(17, 0)),
		}, nil)
	m.slots.EXPECT().DeleteSlotsEndedBefore(gomock.Any(), "user_1", testNow).Return(0, nil)
	m.slots.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", gomock.Any(), gomock.Any()).Return(stored, nil)
	m.catalogue.EXPECT().ListActions(gomock.Any()).Return(nil, nil)
	m.notifications.EXPECT().ExistsForSlot(gomock.Any(), "user_1", "slot_prev", domain.NotificationTypeFreeSlot).Return(true, nil)
	m.integrations.EXPECT().SaveIntegration(gomock.Any(), integration).Return(nil)

	result, err := svc.Sync(context.Background(), "user_1", "int_1", domain.TierFree)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.SlotsDetected != 2 {
		t.Errorf("SlotsDetected = %d, want 2", result.SlotsDetected)
	}
	if result.NotificationsScheduled != 0 {
		t.Errorf("NotificationsScheduled = %d, want 0", result.NotificationsScheduled)
	}
}
