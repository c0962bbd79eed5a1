package sage

import "golang.org/x/text/language"

// Message keys for localized verdict text.
const (
	msgBuyNow            = "buy_now"
	msgStrongBuySavings  = "strong_buy_savings"
	msgWait              = "wait"
	msgOverpriced        = "overpriced"
	msgFairPrice         = "fair_price"
	msgExcellentDeal     = "excellent_deal"
	msgGoodDeal          = "good_deal"
	msgBadDeal           = "bad_deal"
	msgInsufficientData  = "insufficient_data"
	msgPriceDropExpected = "price_drop_expected"
	msgTipWaitSale       = "tip_wait_sale"
	msgTipBuyNow         = "tip_buy_now"
	msgOversold          = "oversold"
	msgOverbought        = "overbought"
	msgSuspiciousListing = "suspicious_listing"
	msgUntrustedMerchant = "untrusted_merchant"
	msgNoPriceGap        = "no_price_gap"
	msgBelowMarket       = "below_market"
)

// Archetype trait keys.
const (
	traitHunter  = "trait_hunter"
	traitAnalyst = "trait_analyst"
	traitImpulse = "trait_impulse"
	traitPremium = "trait_premium"
	traitBudget  = "trait_budget"
	traitNeutral = "trait_neutral"
)

var translations = map[string]map[string]string{
	"ar": {
		msgBuyNow:            "اشتري الآن",
		msgStrongBuySavings:  "صفقة ممتازة! وفر %d%%",
		msgWait:              "انتظر",
		msgOverpriced:        "السعر مرتفع جداً",
		msgFairPrice:         "سعر عادل",
		msgExcellentDeal:     "صفقة ممتازة",
		msgGoodDeal:          "صفقة جيدة",
		msgBadDeal:           "صفقة ضعيفة",
		msgInsufficientData:  "بيانات غير كافية للتحليل",
		msgPriceDropExpected: "متوقع انخفاض السعر",
		msgTipWaitSale:       "انتظر العروض القادمة",
		msgTipBuyNow:         "السعر مناسب حالياً",
		msgOversold:          "السعر منخفض جداً - فرصة شراء",
		msgOverbought:        "السعر مرتفع جداً - انتظر",
		msgSuspiciousListing: "عرض مشبوه",
		msgUntrustedMerchant: "تاجر غير موثوق",
		msgNoPriceGap:        "لا يوجد فرق سعري قوي",
		msgBelowMarket:       "السعر أقل بكثير من متوسط السوق",
		traitHunter:          "صياد الصفقات",
		traitAnalyst:         "المحلل",
		traitImpulse:         "المتسرع",
		traitPremium:         "محب الجودة",
		traitBudget:          "المخطط",
		traitNeutral:         "متوازن",
	},
	"en": {
		msgBuyNow:            "Buy Now",
		msgStrongBuySavings:  "Excellent deal! Save %d%%",
		msgWait:              "Wait",
		msgOverpriced:        "Overpriced",
		msgFairPrice:         "Fair Price",
		msgExcellentDeal:     "Excellent Deal",
		msgGoodDeal:          "Good Deal",
		msgBadDeal:           "Weak Deal",
		msgInsufficientData:  "Insufficient data for analysis",
		msgPriceDropExpected: "Price drop expected",
		msgTipWaitSale:       "Wait for upcoming sales",
		msgTipBuyNow:         "Price is good right now",
		msgOversold:          "Oversold - Buying Opportunity",
		msgOverbought:        "Overbought - Wait",
		msgSuspiciousListing: "Suspicious listing",
		msgUntrustedMerchant: "Untrusted merchant",
		msgNoPriceGap:        "No strong price gap",
		msgBelowMarket:       "Price well below market average",
		traitHunter:          "Deal hunter",
		traitAnalyst:         "The analyst",
		traitImpulse:         "Quick decider",
		traitPremium:         "Quality first",
		traitBudget:          "The planner",
		traitNeutral:         "Balanced",
	},
}

const fallbackLang = "en"

// ShortLang reduces a locale ("ar-SA", "en_US") to its base language code.
// Unparseable locales fall back to English.
func ShortLang(locale string) string {
	if locale == "" {
		return fallbackLang
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fallbackLang
	}
	base, _ := tag.Base()
	return base.String()
}

// T looks up a localized message, falling back to English and then to the
// key itself.
func T(locale, key string) string {
	lang := ShortLang(locale)
	if msgs, ok := translations[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := translations[fallbackLang][key]; ok {
		return msg
	}
	return key
}
