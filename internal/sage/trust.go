package sage

import (
	"strings"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// Risk level labels.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// trustedStores is the fixed allow-list of merchant name fragments that earn
// the known-brand trust bonus. Matching is case-insensitive substring; the
// first hit wins, multiple matches do not stack.
var trustedStores = []string{
	"amazon", "ebay", "walmart", "aliexpress", "noon", "jarir", "extra",
	"apple", "samsung", "nike", "adidas", "zara", "hm", "ikea", "costco",
	"target", "bestbuy", "newegg", "bhphotovideo", "argos", "asos", "farfetch",
	"carrefour", "lulu", "sharafdg", "vodafone", "stc", "netflix",
}

const (
	baseTrustScore    = 50
	knownBrandBonus   = 30
	suspiciousRatio   = 0.5
	suspiciousRisk    = 50
	lowPriceRatio     = 0.6
	lowPriceRisk      = 35
	deepDiscountLimit = 80
	deepDiscountRisk  = 45
	suspicionFloor    = 40
)

// EvaluateTrust scores the two independent axes: how trustworthy the
// merchant is in general, and how anomalous this specific listing looks. A
// trusted merchant can still carry a flagged listing.
func EvaluateTrust(product models.Product, marketMean float64, locale string) models.TrustIntel {
	store := product.Source
	if store == "" {
		store = "Unknown"
	}

	trust := baseTrustScore
	lowered := strings.ToLower(store)
	for _, fragment := range trustedStores {
		if strings.Contains(lowered, fragment) {
			trust += knownBrandBonus
			break
		}
	}

	risk := 0
	var warnings []string
	if marketMean > 0 {
		switch {
		case product.Price < marketMean*suspiciousRatio:
			risk += suspiciousRisk
			warnings = append(warnings, T(locale, msgSuspiciousListing))
		case product.Price < marketMean*lowPriceRatio:
			risk += lowPriceRisk
			warnings = append(warnings, T(locale, msgSuspiciousListing))
		}
	}
	if discountPercent(product) > deepDiscountLimit {
		risk += deepDiscountRisk
		warnings = append(warnings, T(locale, msgSuspiciousListing))
	}
	if risk > 100 {
		risk = 100
	}

	return models.TrustIntel{
		Store:      store,
		TrustScore: clampScore(trust),
		RiskScore:  risk,
		RiskLevel:  riskLevel(risk),
		Suspicious: risk >= suspicionFloor,
		Warnings:   warnings,
	}
}

func riskLevel(risk int) string {
	switch {
	case risk >= 70:
		return RiskCritical
	case risk >= 40:
		return RiskHigh
	case risk >= 20:
		return RiskMedium
	default:
		return RiskLow
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
