package domain

import "slices"

const (
	CategoryLearning     = "learning"
	CategoryProductivity = "productivity"
	CategoryWellBeing    = "well_being"
)

type CategoriesByTime struct {
	Morning   string `json:"morning,omitempty"`
	Afternoon string `json:"afternoon,omitempty"`
	Evening   string `json:"evening,omitempty"`
}

// DetectionSettings is the per-user slot detection configuration.
type DetectionSettings struct {
	SlotDetectionEnabled       bool             `json:"slot_detection_enabled"`
	MinSlotDuration            int              `json:"min_slot_duration"`
	MaxSlotDuration            int              `json:"max_slot_duration"`
	DetectionWindowStart       string           `json:"detection_window_start"`
	DetectionWindowEnd         string           `json:"detection_window_end"`
	ExcludedKeywords           []string         `json:"excluded_keywords"`
	AdvanceNotificationMinutes int              `json:"advance_notification_minutes"`
	PreferredCategoriesByTime  CategoriesByTime `json:"preferred_categories_by_time"`
	Timezone                   string           `json:"timezone"`
}

var defaultDetectionSettings = DetectionSettings{
	SlotDetectionEnabled:       true,
	MinSlotDuration:            5,
	MaxSlotDuration:            20,
	DetectionWindowStart:       "09:00",
	DetectionWindowEnd:         "18:00",
	ExcludedKeywords:           []string{"focus", "deep work", "lunch", "break", "busy", "blocked"},
	AdvanceNotificationMinutes: 5,
	PreferredCategoriesByTime: CategoriesByTime{
		Morning:   CategoryLearning,
		Afternoon: CategoryProductivity,
		Evening:   CategoryWellBeing,
	},
	Timezone: "UTC",
}

// DefaultDetectionSettings returns a copy of the built-in defaults. The
// package-level value is never handed out directly.
func DefaultDetectionSettings() DetectionSettings {
	return defaultDetectionSettings.clone()
}

func (s DetectionSettings) clone() DetectionSettings {
	out := s
	out.ExcludedKeywords = slices.Clone(s.ExcludedKeywords)
	return out
}

// SettingsOverride is a partial settings document as stored per user. Nil
// fields fall back to the defaults.
type SettingsOverride struct {
	SlotDetectionEnabled       *bool             `json:"slot_detection_enabled,omitempty"`
	MinSlotDuration            *int              `json:"min_slot_duration,omitempty"`
	MaxSlotDuration            *int              `json:"max_slot_duration,omitempty"`
	DetectionWindowStart       *string           `json:"detection_window_start,omitempty"`
	DetectionWindowEnd         *string           `json:"detection_window_end,omitempty"`
	ExcludedKeywords           []string          `json:"excluded_keywords,omitempty"`
	AdvanceNotificationMinutes *int              `json:"advance_notification_minutes,omitempty"`
	PreferredCategoriesByTime  *CategoriesByTime `json:"preferred_categories_by_time,omitempty"`
	Timezone                   *string           `json:"timezone,omitempty"`
}

// Merge returns s with every non-nil field of o applied. Neither input is modified.
func (s DetectionSettings) Merge(o *SettingsOverride) DetectionSettings {
	out := s.clone()
	if o == nil {
		return out
	}

	if o.SlotDetectionEnabled != nil {
		out.SlotDetectionEnabled = *o.SlotDetectionEnabled
	}
	if o.MinSlotDuration != nil {
		out.MinSlotDuration = *o.MinSlotDuration
	}
	if o.MaxSlotDuration != nil {
		out.MaxSlotDuration = *o.MaxSlotDuration
	}
	if o.DetectionWindowStart != nil {
		out.DetectionWindowStart = *o.DetectionWindowStart
	}
	if o.DetectionWindowEnd != nil {
		out.DetectionWindowEnd = *o.DetectionWindowEnd
	}
	if o.ExcludedKeywords != nil {
		out.ExcludedKeywords = slices.Clone(o.ExcludedKeywords)
	}
	if o.AdvanceNotificationMinutes != nil {
		out.AdvanceNotificationMinutes = *o.AdvanceNotificationMinutes
	}
	if o.PreferredCategoriesByTime != nil {
		out.PreferredCategoriesByTime = *o.PreferredCategoriesByTime
	}
	if o.Timezone != nil {
		out.Timezone = *o.Timezone
	}

	return out
}

// OverrideFrom captures every field of s as an explicit override.
func OverrideFrom(s DetectionSettings) *SettingsOverride {
	c := s.clone()
	return &SettingsOverride{
		SlotDetectionEnabled:       &c.SlotDetectionEnabled,
		MinSlotDuration:            &c.MinSlotDuration,
		MaxSlotDuration:            &c.MaxSlotDuration,
		DetectionWindowStart:       &c.DetectionWindowStart,
		DetectionWindowEnd:         &c.DetectionWindowEnd,
		ExcludedKeywords:           c.ExcludedKeywords,
		AdvanceNotificationMinutes: &c.AdvanceNotificationMinutes,
		PreferredCategoriesByTime:  &c.PreferredCategoriesByTime,
		Timezone:                   &c.Timezone,
	}
}

// CategoryForHour maps an hour of day to the preferred category:
// [6,12) morning, [12,17) afternoon, everything else evening.
func (s DetectionSettings) CategoryForHour(hour int) string {
	c := s.PreferredCategoriesByTime
	switch {
	case hour >= 6 && hour < 12:
		return orDefault(c.Morning, CategoryLearning)
	case hour >= 12 && hour < 17:
		return orDefault(c.Afternoon, CategoryProductivity)
	default:
		return orDefault(c.Evening, CategoryWellBeing)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
