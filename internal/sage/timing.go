package sage

import "github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"

// buyNowDelta is the price gap against the market mean, in percent, beyond
// which the timing engine calls for an immediate buy.
const buyNowDelta = -20

// AnalyzeTiming maps the magnitude of the price delta against the market
// mean to a buy-now/wait call with an urgency level.
func AnalyzeTiming(currentPrice, marketMean float64, locale string) models.TimingIntel {
	if marketMean > 0 {
		deltaPercent := (currentPrice - marketMean) / marketMean * 100
		if deltaPercent < buyNowDelta {
			return models.TimingIntel{
				Recommendation: models.DecisionBuyNow,
				Urgency:        models.UrgencyHigh,
				Reason:         T(locale, msgBelowMarket),
				Tip:            T(locale, msgTipBuyNow),
			}
		}
	}
	return models.TimingIntel{
		Recommendation: models.DecisionWait,
		Urgency:        models.UrgencyLow,
		Reason:         T(locale, msgNoPriceGap),
		Tip:            T(locale, msgTipWaitSale),
	}
}
