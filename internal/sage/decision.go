package sage

import (
	"fmt"
	"math"
	"sort"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// decisionInput is everything the rule table sees. effectiveScore already
// includes the oversold feedback; the PriceIntel record itself is never
// mutated.
type decisionInput struct {
	effectiveScore int
	trust          models.TrustIntel
	trendDirection string
	savingsPercent int
}

// decisionRule is one row of the priority table. Rules are evaluated top to
// bottom; the first matching predicate decides.
type decisionRule struct {
	matches func(decisionInput) bool
	outcome func(decisionInput, string) (decision, reason, urgency string)
}

var decisionRules = []decisionRule{
	{
		matches: func(in decisionInput) bool { return in.trust.RiskScore >= 60 },
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionAvoid, T(locale, msgSuspiciousListing), models.UrgencyNone
		},
	},
	{
		matches: func(in decisionInput) bool { return in.trust.TrustScore < 30 },
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionCaution, T(locale, msgUntrustedMerchant), models.UrgencyLow
		},
	},
	{
		matches: func(in decisionInput) bool { return in.effectiveScore >= 85 && in.trust.RiskScore < 25 },
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionStrongBuy,
				fmt.Sprintf(T(locale, msgStrongBuySavings), in.savingsPercent),
				models.UrgencyHigh
		},
	},
	{
		matches: func(in decisionInput) bool {
			return in.effectiveScore >= 75 && in.trendDirection != TrendFalling
		},
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionBuyNow, T(locale, msgExcellentDeal), models.UrgencyHigh
		},
	},
	{
		matches: func(in decisionInput) bool { return in.effectiveScore >= 65 },
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionBuy, T(locale, msgGoodDeal), models.UrgencyMedium
		},
	},
	{
		matches: func(in decisionInput) bool {
			return in.trendDirection == TrendFalling && in.effectiveScore < 75
		},
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionSmartWait, T(locale, msgPriceDropExpected), models.UrgencyLow
		},
	},
	{
		matches: func(in decisionInput) bool { return in.effectiveScore <= 40 },
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionWait, T(locale, msgOverpriced), models.UrgencyNone
		},
	},
	{
		matches: func(in decisionInput) bool { return true },
		outcome: func(in decisionInput, locale string) (string, string, string) {
			return models.DecisionConsider, T(locale, msgFairPrice), models.UrgencyLow
		},
	},
}

// oversold feedback: a cheap-by-momentum signal lifts the score the decision
// rules see, but only for listings not already scored high.
const (
	oversoldBoost    = 10
	oversoldBoostCap = 95
	oversoldCeiling  = 80
)

// Decide runs the classification tree over the combined engine outputs and
// assembles the final verdict, including the cheapest strictly-cheaper
// market offer as the best-price recommendation.
func Decide(
	product models.Product,
	price models.PriceIntel,
	trend models.TrendIntel,
	trust models.TrustIntel,
	personality models.PersonalityIntel,
	market []models.Offer,
	locale string,
) models.FinalVerdict {
	effective := price.Score
	oversold := trend.RSISignal == SignalOversold
	if oversold && effective < oversoldCeiling {
		effective = minInt(oversoldBoostCap, effective+oversoldBoost)
	}

	savingsPercent := 0
	savingsAmount := 0.0
	if price.Median > 0 {
		savingsPercent = int(math.Round((1 - price.Current/price.Median) * 100))
		savingsAmount = math.Round((price.Median-price.Current)*100) / 100
	}

	in := decisionInput{
		effectiveScore: effective,
		trust:          trust,
		trendDirection: trend.Direction,
		savingsPercent: savingsPercent,
	}

	var decision, reason, urgency string
	for _, rule := range decisionRules {
		if rule.matches(in) {
			decision, reason, urgency = rule.outcome(in, locale)
			break
		}
	}

	// Momentum annotates the reason but never changes the decision itself.
	if decision != models.DecisionAvoid {
		switch trend.RSISignal {
		case SignalOversold:
			reason += " | " + T(locale, msgOversold)
		case SignalOverbought:
			reason += " | " + T(locale, msgOverbought)
		}
	}

	verdict := models.FinalVerdict{
		Decision:       decision,
		Confidence:     blendConfidence(price.Confidence, trust, personality.Confidence),
		Reason:         reason,
		Urgency:        urgency,
		SavingsPercent: savingsPercent,
		SavingsAmount:  savingsAmount,
		BestLink:       product.Link,
	}

	if best, ok := cheapestOffer(market); ok && best.Price < product.Price {
		verdict.BestStore = best.Source
		verdict.BestPrice = best.Price
		verdict.BestLink = best.Link
	}

	return verdict
}

// blendConfidence is the fixed weighted blend over the engine confidences.
func blendConfidence(priceConfidence int, trust models.TrustIntel, personalityConfidence int) int {
	return int(math.Round(
		0.35*float64(priceConfidence) +
			0.25*float64(100-trust.RiskScore) +
			0.20*float64(trust.TrustScore) +
			0.10*float64(personalityConfidence) +
			20))
}

func cheapestOffer(market []models.Offer) (models.Offer, bool) {
	var best models.Offer
	found := false
	for _, offer := range market {
		if offer.Price <= 0 {
			continue
		}
		if !found || offer.Price < best.Price {
			best = offer
			found = true
		}
	}
	return best, found
}

// Alternatives returns the up-to-three cheapest valid market offers with
// their savings against the subject price.
func Alternatives(market []models.Offer, currentPrice float64) []models.Alternative {
	valid := make([]models.Offer, 0, len(market))
	for _, offer := range market {
		if offer.Price > 0 {
			valid = append(valid, offer)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Price < valid[j].Price })
	if len(valid) > 3 {
		valid = valid[:3]
	}
	alternatives := make([]models.Alternative, 0, len(valid))
	for _, offer := range valid {
		store := offer.Source
		if store == "" {
			store = "Unknown"
		}
		savings := 0
		if currentPrice > 0 {
			savings = int(math.Round((1 - offer.Price/currentPrice) * 100))
		}
		alternatives = append(alternatives, models.Alternative{
			Store:   store,
			Price:   offer.Price,
			Link:    offer.Link,
			Savings: savings,
		})
	}
	return alternatives
}
