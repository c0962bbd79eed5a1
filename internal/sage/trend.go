package sage

import (
	"math"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// Trend direction labels.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
	TrendUnknown = "unknown"
)

// RSI signal labels.
const (
	SignalOversold   = "oversold"
	SignalOverbought = "overbought"
	SignalNeutral    = "neutral"
)

const (
	// minHistoryPoints gates all trend output; below it the direction is
	// unknown and no indicators are emitted.
	minHistoryPoints = 5
	rsiPeriod        = 14
	rsiOversold      = 30
	rsiOverbought    = 70
	slopeThreshold   = 0.01
	highVolatility   = 0.10
	// predictionMinFit suppresses the projected price when the regression
	// fit is too weak to be worth showing.
	predictionMinFit  = 0.3
	predictionHorizon = 7
)

// AnalyzeTrend estimates price direction, momentum and volatility from the
// product's own price history. History must be ordered oldest first.
func AnalyzeTrend(history []models.PricePoint) models.TrendIntel {
	prices := make([]float64, 0, len(history))
	for _, point := range history {
		if point.Price > 0 {
			prices = append(prices, point.Price)
		}
	}
	if len(prices) < minHistoryPoints {
		return models.TrendIntel{Direction: TrendUnknown}
	}

	intel := models.TrendIntel{Direction: TrendStable}

	if values := RSI(prices, rsiPeriod); len(values) > 0 {
		last := values[len(values)-1]
		intel.RSI = &last
		switch {
		case last < rsiOversold:
			intel.RSISignal = SignalOversold
		case last > rsiOverbought:
			intel.RSISignal = SignalOverbought
		default:
			intel.RSISignal = SignalNeutral
		}
	}

	reg, ok := LinearRegression(prices)
	if ok {
		switch {
		case reg.Slope > slopeThreshold:
			intel.Direction = TrendRising
		case reg.Slope < -slopeThreshold:
			intel.Direction = TrendFalling
		}
		if reg.RSquared >= predictionMinFit {
			projected := reg.Slope*float64(len(prices)+predictionHorizon) + reg.Intercept
			direction := "up"
			if reg.Slope < 0 {
				direction = "down"
			}
			intel.Prediction = &models.PricePrediction{
				Price:      math.Max(0, projected),
				Direction:  direction,
				Change:     int(math.Round(reg.Slope * 100)),
				Confidence: int(math.Round(reg.RSquared * 100)),
			}
		}
	}

	if mean := Mean(prices); mean > 0 {
		if StdDev(prices)/mean > highVolatility {
			intel.Volatility = "high"
		} else {
			intel.Volatility = "low"
		}
	}

	return intel
}
