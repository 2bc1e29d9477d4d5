package domain

import "strings"

// SubscriptionTier gates access to premium micro-actions.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

func (t SubscriptionTier) String() string {
	return string(t)
}

func (t SubscriptionTier) IsFree() bool {
	return t == TierFree
}

// ParseSubscriptionTier falls back to the free tier for empty or unknown values.
func ParseSubscriptionTier(s string) SubscriptionTier {
	switch SubscriptionTier(strings.ToLower(strings.TrimSpace(s))) {
	case TierPremium:
		return TierPremium
	default:
		return TierFree
	}
}
