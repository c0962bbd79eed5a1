package sage

import (
	"math"
	"sort"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// MinMarketSample is the smallest comparable-price sample the pipeline will
// score. Below it the whole computation short-circuits to the fixed
// insufficient-data verdict.
const MinMarketSample = 3

// priceTier is one row of the ratio classification table. Tiers are
// evaluated in order; the first row whose bound exceeds the price ratio
// wins (strict less-than).
type priceTier struct {
	upperRatio float64
	score      int
	message    string
}

var priceTiers = []priceTier{
	{0.70, 95, msgExcellentDeal},
	{0.80, 85, msgExcellentDeal},
	{0.90, 75, msgGoodDeal},
	{0.95, 65, msgFairPrice},
	{1.05, 55, msgFairPrice},
	{1.15, 40, msgWait},
	{1.30, 25, msgOverpriced},
	{math.Inf(1), 10, msgOverpriced},
}

// discount bonus: a real markdown deeper than this lifts a mediocre score.
const (
	discountBonusThreshold = 30
	discountBonus          = 15
	discountBonusCap       = 90
)

// InsufficientPriceIntel is the degraded-but-valid price record returned
// when the market sample is too small. Callers must treat it as displayable
// output, not an error.
func InsufficientPriceIntel(product models.Product, locale string) models.PriceIntel {
	return models.PriceIntel{
		Current:    product.Price,
		Original:   product.OriginalPrice,
		Discount:   discountPercent(product),
		Score:      50,
		Decision:   T(locale, msgInsufficientData),
		Confidence: 30,
	}
}

// AnalyzePrice positions the product's price against the market sample.
// The sample is filtered to positive prices and IQR-fenced before any
// statistic is computed. Returns ok=false when fewer than MinMarketSample
// usable prices remain.
func AnalyzePrice(product models.Product, market []models.Offer, locale string) (models.PriceIntel, bool) {
	valid := make([]float64, 0, len(market))
	for _, offer := range market {
		if offer.Price > 0 {
			valid = append(valid, offer.Price)
		}
	}
	if len(valid) < MinMarketSample {
		return InsufficientPriceIntel(product, locale), false
	}

	cleaned := RemoveOutliers(valid)
	median := Median(cleaned)
	intel := models.PriceIntel{
		Current:    product.Price,
		Original:   product.OriginalPrice,
		Discount:   discountPercent(product),
		Average:    round2(Mean(cleaned)),
		Median:     round2(median),
		Min:        cleaned[0],
		Max:        cleaned[len(cleaned)-1],
		StdDev:     round2(StdDev(cleaned)),
		Percentile: percentile(cleaned, product.Price),
		Confidence: minInt(100, 40+3*len(valid)),
	}

	ratio := product.Price / median
	for _, tier := range priceTiers {
		if ratio < tier.upperRatio {
			intel.Score = tier.score
			intel.Decision = T(locale, tier.message)
			break
		}
	}

	if intel.Discount > discountBonusThreshold && intel.Score < 80 {
		intel.Score = minInt(discountBonusCap, intel.Score+discountBonus)
	}

	return intel, true
}

func discountPercent(product models.Product) int {
	if product.OriginalPrice <= product.Price || product.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((1 - product.Price/product.OriginalPrice) * 100))
}

// percentile is the share of sample prices strictly below the subject price.
func percentile(sorted []float64, price float64) int {
	below := sort.SearchFloat64s(sorted, price)
	return int(math.Round(float64(below) / float64(len(sorted)) * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
