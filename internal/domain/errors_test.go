package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "validation error", err: NewValidationError("min_slot_duration", "must be >= 0"), target: ErrValidation, want: true},
		{name: "wrapped validation error", err: fmt.Errorf("load: %w", NewValidationError("x", "y")), target: ErrValidation, want: true},
		{name: "upstream error", err: NewUpstreamError("ics", errors.New("boom")), target: ErrUpstream, want: true},
		{name: "upstream is not validation", err: NewUpstreamError("ics", errors.New("boom")), target: ErrValidation, want: false},
		{name: "slot not found", err: ErrSlotNotFound, target: ErrNotFound, want: true},
		{name: "integration not found", err: fmt.Errorf("sync: %w", ErrIntegrationNotFound), target: ErrNotFound, want: true},
		{name: "terminal is not not-found", err: ErrSlotTerminal, target: ErrNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	cause := errors.New("status 503")
	err := NewUpstreamError("google_calendar", cause)

	if !errors.Is(err, cause) {
		t.Error("UpstreamError should unwrap to its cause")
	}
	if got := err.Error(); got != "upstream google_calendar: status 503" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseSubscriptionTier(t *testing.T) {
	tests := []struct {
		in   string
		want SubscriptionTier
	}{
		{in: "premium", want: TierPremium},
		{in: "PREMIUM", want: TierPremium},
		{in: "free", want: TierFree},
		{in: "", want: TierFree},
		{in: "gold", want: TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSubscriptionTier(tt.in); got != tt.want {
				t.Errorf("ParseSubscriptionTier(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
