package settings

import (
	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/timewindow"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/validation"
)

type rules struct {
	MinSlotDuration            int    `json:"min_slot_duration" validate:"gte=0"`
	MaxSlotDuration            int    `json:"max_slot_duration" validate:"gtefield=MinSlotDuration"`
	DetectionWindowStart       string `json:"detection_window_start" validate:"required,hhmm"`
	DetectionWindowEnd         string `json:"detection_window_end" validate:"required,hhmm"`
	AdvanceNotificationMinutes int    `json:"advance_notification_minutes" validate:"gte=0"`
	Timezone                   string `json:"timezone" validate:"omitempty,timezone"`
}

// Validate checks merged settings for the constraints detection relies on.
func Validate(s domain.DetectionSettings) error {
	r := rules{
		MinSlotDuration:            s.MinSlotDuration,
		MaxSlotDuration:            s.MaxSlotDuration,
		DetectionWindowStart:       s.DetectionWindowStart,
		DetectionWindowEnd:         s.DetectionWindowEnd,
		AdvanceNotificationMinutes: s.AdvanceNotificationMinutes,
		Timezone:                   s.Timezone,
	}

	if err := validation.Struct(r); err != nil {
		return err
	}

	window, err := timewindow.ParseWindow(s.DetectionWindowStart, s.DetectionWindowEnd)
	if err != nil {
		return err
	}
	if window.Start.Minutes() > window.End.Minutes() {
		return domain.NewValidationError("detection_window_start", "must not be after detection_window_end")
	}

	return nil
}
