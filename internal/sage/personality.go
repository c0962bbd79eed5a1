package sage

import "github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"

// Shopping archetypes, in the fixed evaluation order used for tie-breaking:
// the first archetype to reach the maximum score wins.
const (
	ArchetypeHunter  = "hunter"
	ArchetypeAnalyst = "analyst"
	ArchetypeImpulse = "impulse"
	ArchetypePremium = "premium"
	ArchetypeBudget  = "budget"
	ArchetypeNeutral = "neutral"
)

var archetypeOrder = []string{
	ArchetypeHunter, ArchetypeAnalyst, ArchetypeImpulse, ArchetypePremium, ArchetypeBudget,
}

var archetypeTraits = map[string]string{
	ArchetypeHunter:  traitHunter,
	ArchetypeAnalyst: traitAnalyst,
	ArchetypeImpulse: traitImpulse,
	ArchetypePremium: traitPremium,
	ArchetypeBudget:  traitBudget,
	ArchetypeNeutral: traitNeutral,
}

// neutralFloor: a dominant score below this is not a signal, regardless of
// which counter nominally leads.
const neutralFloor = 20

// Purchase intents derived from event counters.
const (
	IntentReadyToBuy     = "ready_to_buy"
	IntentWaitingForDrop = "waiting_for_drop"
	IntentPriceSensitive = "price_sensitive"
	IntentBrowsing       = "browsing"
)

// AnalyzePersonality classifies the user's behavioral profile from the
// event counters. Scoring is additive per archetype; the dominant one is
// picked by a strictly-greater walk over the fixed archetype order.
func AnalyzePersonality(events models.UserEvents, locale string) models.PersonalityIntel {
	scores := map[string]int{
		ArchetypeHunter:  0,
		ArchetypeAnalyst: 0,
		ArchetypeImpulse: 0,
		ArchetypePremium: 0,
		ArchetypeBudget:  0,
	}
	if events.WishlistAdditions > 3 {
		scores[ArchetypeHunter] += 20
	}
	if events.PriceChecks > 5 {
		scores[ArchetypeHunter] += 15
	}
	if events.ClickedAnalysis {
		scores[ArchetypeAnalyst] += 20
	}
	if events.QuickPurchases > 2 {
		scores[ArchetypeImpulse] += 30
	}
	if events.BrandSearches > 3 {
		scores[ArchetypePremium] += 20
	}
	if events.BudgetSet {
		scores[ArchetypeBudget] += 25
	}

	dominant := ArchetypeNeutral
	maxScore := 0
	for _, archetype := range archetypeOrder {
		if scores[archetype] > maxScore {
			maxScore = scores[archetype]
			dominant = archetype
		}
	}
	if maxScore < neutralFloor {
		dominant = ArchetypeNeutral
	}

	return models.PersonalityIntel{
		Type:       dominant,
		Scores:     scores,
		Confidence: minInt(100, maxScore),
		Trait:      T(locale, archetypeTraits[dominant]),
		Intent:     ClassifyIntent(events),
	}
}

// ClassifyIntent reads purchase intent from the raw counters. Rules are
// checked in priority order; the first match wins.
func ClassifyIntent(events models.UserEvents) string {
	switch {
	case events.BuyClicks > 0:
		return IntentReadyToBuy
	case events.PriceChecks >= 3 && events.WatchDays >= 2:
		return IntentWaitingForDrop
	case events.PriceChecks > 0:
		return IntentPriceSensitive
	default:
		return IntentBrowsing
	}
}
