package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *domain.DetectionSettings)
		wantField string
	}{
		{name: "defaults are valid", mutate: func(*domain.DetectionSettings) {}},
		{name: "min equals max", mutate: func(s *domain.DetectionSettings) { s.MinSlotDuration, s.MaxSlotDuration = 10, 10 }},
		{name: "min greater than max", mutate: func(s *domain.DetectionSettings) { s.MinSlotDuration = 30 }, wantField: "max_slot_duration"},
		{name: "negative min", mutate: func(s *domain.DetectionSettings) { s.MinSlotDuration = -1 }, wantField: "min_slot_duration"},
		{name: "negative advance", mutate: func(s *domain.DetectionSettings) { s.AdvanceNotificationMinutes = -5 }, wantField: "advance_notification_minutes"},
		{name: "malformed window start", mutate: func(s *domain.DetectionSettings) { s.DetectionWindowStart = "nine" }, wantField: "detection_window_start"},
		{name: "empty window end", mutate: func(s *domain.DetectionSettings) { s.DetectionWindowEnd = "" }, wantField: "detection_window_end"},
		{name: "window start after end", mutate: func(s *domain.DetectionSettings) { s.DetectionWindowStart = "19:00" }, wantField: "detection_window_start"},
		{name: "unknown timezone", mutate: func(s *domain.DetectionSettings) { s.Timezone = "Mars/Olympus" }, wantField: "timezone"},
		{name: "empty timezone allowed", mutate: func(s *domain.DetectionSettings) { s.Timezone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultDetectionSettings()
			tt.mutate(&s)

			err := Validate(s)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (%v)", verr.Field, tt.wantField, verr)
			}
		})
	}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored settings yields defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := domain.NewMockSettingsRepository(ctrl)
		repo.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, domain.ErrSettingsNotFound)

		got, err := NewService(repo).Get(ctx, "user_1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.MinSlotDuration != 5 || got.MaxSlotDuration != 20 {
			t.Errorf("Get() = %+v, want defaults", got)
		}
	})

	t.Run("partial settings merged over defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := domain.NewMockSettingsRepository(ctrl)
		repo.EXPECT().GetSettings(gomock.Any(), "user_1").
			Return(&domain.SettingsOverride{MaxSlotDuration: intPtr(45)}, nil)

		got, err := NewService(repo).Get(ctx, "user_1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.MaxSlotDuration != 45 || got.MinSlotDuration != 5 {
			t.Errorf("Get() = %+v", got)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := domain.NewMockSettingsRepository(ctrl)
		storeErr := errors.New("connection refused")
		repo.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, storeErr)

		if _, err := NewService(repo).Get(ctx, "user_1"); !errors.Is(err, storeErr) {
			t.Errorf("Get() error = %v, want %v", err, storeErr)
		}
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("valid patch is stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := domain.NewMockSettingsRepository(ctrl)
		repo.EXPECT().GetSettings(gomock.Any(), "user_1").
			Return(&domain.SettingsOverride{MinSlotDuration: intPtr(8)}, nil)
		repo.EXPECT().SaveSettings(gomock.Any(), "user_1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, o *domain.SettingsOverride) error {
				if *o.MinSlotDuration != 8 || *o.DetectionWindowEnd != "17:30" {
					t.Errorf("stored override = min %d end %s", *o.MinSlotDuration, *o.DetectionWindowEnd)
				}
				return nil
			})

		got, err := NewService(repo).Update(ctx, "user_1", &domain.SettingsOverride{DetectionWindowEnd: strPtr("17:30")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.DetectionWindowEnd != "17:30" || got.MinSlotDuration != 8 {
			t.Errorf("Update() = %+v", got)
		}
	})

	t.Run("invalid patch is rejected without writing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := domain.NewMockSettingsRepository(ctrl)
		repo.EXPECT().GetSettings(gomock.Any(), "user_1").Return(nil, domain.ErrSettingsNotFound)

		_, err := NewService(repo).Update(ctx, "user_1", &domain.SettingsOverride{MinSlotDuration: intPtr(50)})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Update() error = %v, want ErrValidation", err)
		}
	})
}
