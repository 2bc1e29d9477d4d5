package match

import (
	"slices"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

// MatchActionToSlot picks the action whose minimum duration is closest to the
// slot length. Actions in the slot's suggested category are preferred; when
// none fit, any category is considered. Premium actions are skipped for the
// free tier. Ties keep catalogue order. Returns nil when nothing fits.
func MatchActionToSlot(slot *domain.FreeSlot, actions []*domain.MicroAction, tier domain.SubscriptionTier) *domain.MicroAction {
	if slot == nil {
		return nil
	}

	available := make([]*domain.MicroAction, 0, len(actions))
	for _, a := range actions {
		if a == nil {
			continue
		}
		if tier.IsFree() && a.IsPremium {
			continue
		}
		available = append(available, a)
	}

	candidates := fitting(available, slot.DurationMinutes, func(a *domain.MicroAction) bool {
		return a.Category == slot.SuggestedCategory
	})
	if len(candidates) == 0 {
		candidates = fitting(available, slot.DurationMinutes, nil)
	}
	if len(candidates) == 0 {
		return nil
	}

	slices.SortStableFunc(candidates, func(a, b *domain.MicroAction) int {
		return distance(a, slot.DurationMinutes) - distance(b, slot.DurationMinutes)
	})

	return candidates[0]
}

func fitting(actions []*domain.MicroAction, duration int, keep func(*domain.MicroAction) bool) []*domain.MicroAction {
	out := make([]*domain.MicroAction, 0, len(actions))
	for _, a := range actions {
		if a.DurationMin > duration {
			continue
		}
		if keep != nil && !keep(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func distance(a *domain.MicroAction, duration int) int {
	d := a.DurationMin - duration
	if d < 0 {
		return -d
	}
	return d
}
