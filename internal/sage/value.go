package sage

import (
	"math"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// Value verdict labels.
const (
	ValueExcellent = "EXCELLENT_VALUE"
	ValueGood      = "GOOD_VALUE"
	ValuePoor      = "POOR_VALUE"
)

// ComputeValue turns the price score into a qualitative value verdict,
// carrying the competitor count as a sample-size confidence signal.
func ComputeValue(price models.PriceIntel, competitors int, locale string) models.ValueIntel {
	verdict := ValuePoor
	explanation := msgBadDeal
	switch {
	case price.Score >= 80:
		verdict = ValueExcellent
		explanation = msgExcellentDeal
	case price.Score >= 60:
		verdict = ValueGood
		explanation = msgGoodDeal
	}

	intel := models.ValueIntel{
		Score:       price.Score,
		Verdict:     verdict,
		Explanation: T(locale, explanation),
		Competitors: competitors,
	}
	if price.Median > 0 {
		intel.SavingsPercent = int(math.Round((1 - price.Current/price.Median) * 100))
		intel.SavingsAmount = math.Round((price.Median-price.Current)*100) / 100
	}
	return intel
}
