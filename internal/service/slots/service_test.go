package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/settings"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func newTestService(t *testing.T) (*Service, *domain.MockSlotRepository, *domain.MockActionCatalogue, *domain.MockSettingsRepository) {
	ctrl := gomock.NewController(t)
	slotRepo := domain.NewMockSlotRepository(ctrl)
	catalogue := domain.NewMockActionCatalogue(ctrl)
	settingsRepo := domain.NewMockSettingsRepository(ctrl)

	svc := NewService(slotRepo, catalogue, settings.NewService(settingsRepo)).
		WithClock(func() time.Time { return testNow })
	return svc, slotRepo, catalogue, settingsRepo
}

func TestService_Today(t *testing.T) {
	svc, slotRepo, catalogue, settingsRepo := newTestService(t)
	midnight := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	settingsRepo.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, domain.ErrSettingsNotFound)
	slotRepo.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", testNow, midnight).Return([]*domain.FreeSlot{
		{ID: "slot_a", SuggestedActionID: ptr("a1")},
		{ID: "slot_b", SuggestedActionID: ptr("gone")},
		{ID: "slot_c"},
	}, nil)
	catalogue.EXPECT().GetAction(gomock.Any(), "a1").Return(&domain.MicroAction{ID: "a1", Title: "Stretch"}, nil)
	catalogue.EXPECT().GetAction(gomock.Any(), "gone").Return(nil, domain.ErrActionNotFound)

	got, err := svc.Today(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Today() returned %d slots, want 3", len(got))
	}
	if got[0].SuggestedAction == nil || got[0].SuggestedAction.Title != "Stretch" {
		t.Errorf("slot_a action = %+v", got[0].SuggestedAction)
	}
	if got[1].SuggestedAction != nil {
		t.Errorf("missing action should resolve to nil, got %+v", got[1].SuggestedAction)
	}
	if got[2].Status != domain.SlotStatusCreated {
		t.Errorf("Status = %v", got[2].Status)
	}
}

func TestService_Today_UsesUserTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	svc, slotRepo, _, settingsRepo := newTestService(t)
	tz := "Asia/Tokyo"

	settingsRepo.EXPECT().GetSettings(gomock.Any(), "user_1").Return(&domain.SettingsOverride{Timezone: &tz}, nil)
	slotRepo.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, from, to time.Time) ([]*domain.FreeSlot, error) {
			want := time.Date(2026, 3, 3, 0, 0, 0, 0, tokyo)
			if !to.Equal(want) {
				t.Errorf("to = %v, want %v", to, want)
			}
			if !from.Equal(testNow) {
				t.Errorf("from = %v, want %v", from, testNow)
			}
			return nil, nil
		})

	if _, err := svc.Today(context.Background(), "user_1"); err != nil {
		t.Fatalf("Today() error = %v", err)
	}
}

func TestService_Week_Limit(t *testing.T) {
	svc, slotRepo, _, _ := newTestService(t)

	stored := make([]*domain.FreeSlot, 60)
	for i := range stored {
		stored[i] = &domain.FreeSlot{ID: "slot"}
	}
	slotRepo.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", testNow, testNow.Add(7*24*time.Hour)).Return(stored, nil)

	got, err := svc.Week(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("Week() error = %v", err)
	}
	if len(got) != weekLimit {
		t.Errorf("Week() returned %d slots, want %d", len(got), weekLimit)
	}
}

func TestService_Next(t *testing.T) {
	t.Run("skips closed slots", func(t *testing.T) {
		svc, slotRepo, _, _ := newTestService(t)
		slotRepo.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", gomock.Any(), gomock.Any()).Return([]*domain.FreeSlot{
			{ID: "slot_done", ActionTaken: true},
			{ID: "slot_dismissed", Dismissed: true},
			{ID: "slot_open"},
		}, nil)

		got, err := svc.Next(context.Background(), "user_1")
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got == nil || got.ID != "slot_open" {
			t.Errorf("Next() = %+v, want slot_open", got)
		}
	})

	t.Run("none upcoming", func(t *testing.T) {
		svc, slotRepo, _, _ := newTestService(t)
		slotRepo.EXPECT().ListSlotsInRange(gomock.Any(), "user_1", gomock.Any(), gomock.Any()).Return(nil, nil)

		got, err := svc.Next(context.Background(), "user_1")
		if err != nil || got != nil {
			t.Errorf("Next() = %v, %v; want nil, nil", got, err)
		}
	})
}

func TestService_Dismiss(t *testing.T) {
	t.Run("open slot", func(t *testing.T) {
		svc, slotRepo, _, _ := newTestService(t)
		slotRepo.EXPECT().GetSlot(gomock.Any(), "user_1", "slot_a").Return(&domain.FreeSlot{ID: "slot_a"}, nil)
		slotRepo.EXPECT().SaveSlots(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Dismiss(context.Background(), "user_1", "slot_a")
		if err != nil {
			t.Fatalf("Dismiss() error = %v", err)
		}
		if got.Status() != domain.SlotStatusDismissed || !got.DismissedAt.Equal(testNow) {
			t.Errorf("slot = %+v", got)
		}
	})

	t.Run("terminal slot", func(t *testing.T) {
		svc, slotRepo, _, _ := newTestService(t)
		slotRepo.EXPECT().GetSlot(gomock.Any(), "user_1", "slot_a").Return(&domain.FreeSlot{ID: "slot_a", ActionTaken: true}, nil)

		_, err := svc.Dismiss(context.Background(), "user_1", "slot_a")
		if !errors.Is(err, domain.ErrSlotTerminal) {
			t.Errorf("Dismiss() error = %v, want ErrSlotTerminal", err)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, slotRepo, _, _ := newTestService(t)
		slotRepo.EXPECT().GetSlot(gomock.Any(), "user_1", "slot_x").Return(nil, domain.ErrSlotNotFound)

		_, err := svc.Dismiss(context.Background(), "user_1", "slot_x")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Dismiss() error = %v, want ErrNotFound", err)
		}
	})
}

func TestService_MarkActionTaken(t *testing.T) {
	svc, slotRepo, _, _ := newTestService(t)
	slotRepo.EXPECT().GetSlot(gomock.Any(), "user_1", "slot_a").Return(&domain.FreeSlot{ID: "slot_a", NotificationSent: true}, nil)
	slotRepo.EXPECT().SaveSlots(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.MarkActionTaken(context.Background(), "user_1", "slot_a")
	if err != nil {
		t.Fatalf("MarkActionTaken() error = %v", err)
	}
	if got.Status() != domain.SlotStatusActionTaken {
		t.Errorf("Status() = %v", got.Status())
	}
}
