package services

import (
	"fmt"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/sage"
)

// Advisor turns a computed verdict into a short piece of shopping advice.
// Deterministic: the same verdict always produces the same sentence.
type Advisor struct{}

func NewAdvisor() *Advisor {
	return &Advisor{}
}

// adviceTier maps a price-score band to an advice template per language.
type adviceTier struct {
	minScore int
	en       string
	ar       string
}

// Tiers are checked top to bottom; the first band at or below the score wins.
var adviceTiers = []adviceTier{
	{
		minScore: 80,
		en:       "This is one of the best prices on the market right now — %s at %.2f is well below typical. If it fits your budget, don't wait long.",
		ar:       "هذا من أفضل الأسعار في السوق حالياً — %s بسعر %.2f أقل بكثير من المعتاد. إذا كان يناسب ميزانيتك، لا تنتظر طويلاً.",
	},
	{
		minScore: 60,
		en:       "%s at %.2f is a solid deal, a bit under the going rate. Worth buying if you need it soon, though patience might save a little more.",
		ar:       "%s بسعر %.2f صفقة جيدة، أقل قليلاً من السعر السائد. يستحق الشراء إذا كنت بحاجته قريباً.",
	},
	{
		minScore: 40,
		en:       "%s at %.2f is priced about average. No urgency — compare a couple of stores or set a price alert before committing.",
		ar:       "%s بسعر %.2f سعر متوسط تقريباً. لا استعجال — قارن بين متجرين أو فعّل تنبيه سعر قبل الشراء.",
	},
	{
		minScore: 0,
		en:       "%s at %.2f is above what the market charges. Hold off — set an alert and wait for a drop or a sale event.",
		ar:       "%s بسعر %.2f أعلى من سعر السوق. انتظر — فعّل تنبيهاً وترقب انخفاض السعر أو موسم تخفيضات.",
	},
}

// Advise produces the advice line for a scored product.
func (a *Advisor) Advise(product models.Product, verdict models.IntelligenceVerdict, locale string) string {
	if !verdict.HasEnoughData {
		if sage.ShortLang(locale) == "ar" {
			return "لا تتوفر بيانات سوق كافية لهذا المنتج بعد — جرب بحثاً أوسع أو فعّل تنبيه سعر."
		}
		return "Not enough market data for this product yet — try a broader search or set a price alert."
	}

	score := verdict.PriceIntel.Score
	for _, tier := range adviceTiers {
		if score >= tier.minScore {
			template := tier.en
			if sage.ShortLang(locale) == "ar" {
				template = tier.ar
			}
			return fmt.Sprintf(template, product.Title, product.Price)
		}
	}
	return ""
}
