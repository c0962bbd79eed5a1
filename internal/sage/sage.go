// Package sage implements the product intelligence pipeline: statistical
// utilities and the price, trend, trust, timing, value, personality and
// decision engines that turn a product listing plus its market context into
// a single scored verdict.
package sage

import (
	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// Input is one scoring request: the subject listing, the comparable market
// offers, the listing's own price history (oldest first) and the requesting
// user's behavioral counters.
type Input struct {
	Product models.Product
	Market  []models.Offer
	History []models.PricePoint
	Events  models.UserEvents
	Locale  string
}

// Engine runs the full pipeline. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	logger *logrus.Logger
}

func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

// Compute scores one product. It never returns an error: a too-small market
// sample produces the degraded insufficient-data verdict, which is valid
// displayable output.
func (e *Engine) Compute(in Input) models.IntelligenceVerdict {
	price, ok := AnalyzePrice(in.Product, in.Market, in.Locale)
	if !ok {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{
				"title":  in.Product.Title,
				"offers": len(in.Market),
			}).Debug("market sample too small, returning insufficient-data verdict")
		}
		return models.IntelligenceVerdict{
			PriceIntel: price,
			FinalVerdict: models.FinalVerdict{
				Decision:   models.DecisionInsufficientData,
				Confidence: 30,
				Reason:     T(in.Locale, msgInsufficientData),
				Urgency:    models.UrgencyNone,
				BestLink:   in.Product.Link,
			},
			HasEnoughData: false,
		}
	}

	trend := AnalyzeTrend(in.History)
	trust := EvaluateTrust(in.Product, price.Average, in.Locale)
	timing := AnalyzeTiming(in.Product.Price, price.Average, in.Locale)
	value := ComputeValue(price, competitorCount(in.Market), in.Locale)
	personality := AnalyzePersonality(in.Events, in.Locale)
	verdict := Decide(in.Product, price, trend, trust, personality, in.Market, in.Locale)

	market := &models.MarketIntel{
		Alternatives:    Alternatives(in.Market, in.Product.Price),
		CompetitorCount: value.Competitors,
		MarketPosition:  price.Percentile,
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"title":      in.Product.Title,
			"decision":   verdict.Decision,
			"score":      price.Score,
			"confidence": verdict.Confidence,
			"risk":       trust.RiskScore,
		}).Debug("intelligence verdict computed")
	}

	return models.IntelligenceVerdict{
		PriceIntel:       price,
		TrendIntel:       &trend,
		TrustIntel:       &trust,
		TimingIntel:      &timing,
		ValueIntel:       &value,
		PersonalityIntel: &personality,
		MarketIntel:      market,
		FinalVerdict:     verdict,
		HasEnoughData:    true,
	}
}

func competitorCount(market []models.Offer) int {
	count := 0
	for _, offer := range market {
		if offer.Price > 0 {
			count++
		}
	}
	return count
}
