package models

// Decision labels emitted by the decision engine, in priority order.
const (
	DecisionAvoid            = "AVOID"
	DecisionCaution          = "CAUTION"
	DecisionStrongBuy        = "STRONG_BUY"
	DecisionBuyNow           = "BUY_NOW"
	DecisionBuy              = "BUY"
	DecisionSmartWait        = "SMART_WAIT"
	DecisionWait             = "WAIT"
	DecisionConsider         = "CONSIDER"
	DecisionInsufficientData = "INSUFFICIENT_DATA"
)

// Urgency levels attached to a verdict.
const (
	UrgencyNone   = "none"
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// PriceIntel is the price engine's output: how the subject price sits
// against the outlier-filtered market sample. Scores are on a 0-100 scale.
type PriceIntel struct {
	Current    float64 `json:"current"`
	Original   float64 `json:"original,omitempty"`
	Discount   int     `json:"discount"`
	Average    float64 `json:"average,omitempty"`
	Median     float64 `json:"median,omitempty"`
	Min        float64 `json:"min,omitempty"`
	Max        float64 `json:"max,omitempty"`
	StdDev     float64 `json:"std_dev,omitempty"`
	Score      int     `json:"score"`
	Decision   string  `json:"decision"`
	Percentile int     `json:"percentile"`
	Confidence int     `json:"confidence"`
}

// PricePrediction is the regression-projected price a week out. Only emitted
// when the fit is strong enough to be worth showing.
type PricePrediction struct {
	Price      float64 `json:"price"`
	Direction  string  `json:"direction"`
	Change     int     `json:"change"`
	Confidence int     `json:"confidence"`
}

// TrendIntel summarizes price-history direction and momentum.
type TrendIntel struct {
	Direction  string           `json:"direction"`
	RSI        *float64         `json:"rsi,omitempty"`
	RSISignal  string           `json:"rsi_signal,omitempty"`
	Volatility string           `json:"volatility,omitempty"`
	Prediction *PricePrediction `json:"prediction,omitempty"`
}

// TrustIntel carries the two independent axes: general merchant
// trustworthiness and anomaly risk of this specific listing.
type TrustIntel struct {
	Store      string   `json:"store"`
	TrustScore int      `json:"trust_score"`
	RiskScore  int      `json:"risk_score"`
	RiskLevel  string   `json:"risk_level"`
	Suspicious bool     `json:"suspicious"`
	Warnings   []string `json:"warnings,omitempty"`
}

// TimingIntel maps the price gap against the market into a buy/wait call.
type TimingIntel struct {
	Recommendation string `json:"recommendation"`
	Urgency        string `json:"urgency"`
	Reason         string `json:"reason"`
	Tip            string `json:"tip"`
}

// ValueIntel is the qualitative value verdict over the price score.
type ValueIntel struct {
	Score          int     `json:"score"`
	Verdict        string  `json:"verdict"`
	Explanation    string  `json:"explanation"`
	Competitors    int     `json:"competitors"`
	SavingsPercent int     `json:"savings_percent"`
	SavingsAmount  float64 `json:"savings_amount"`
}

// PersonalityIntel classifies the user's shopping archetype from event
// counters.
type PersonalityIntel struct {
	Type       string         `json:"type"`
	Scores     map[string]int `json:"scores"`
	Confidence int            `json:"confidence"`
	Trait      string         `json:"trait"`
	Intent     string         `json:"intent"`
}

// Alternative is one of the cheapest market offers surfaced next to the
// verdict.
type Alternative struct {
	Store   string  `json:"store"`
	Price   float64 `json:"price"`
	Link    string  `json:"link,omitempty"`
	Savings int     `json:"savings"`
}

// MarketIntel describes where the subject sits in the sampled market.
type MarketIntel struct {
	Alternatives    []Alternative `json:"alternatives,omitempty"`
	CompetitorCount int           `json:"competitor_count"`
	MarketPosition  int           `json:"market_position"`
}

// FinalVerdict is the decision engine's aggregate answer.
type FinalVerdict struct {
	Decision       string  `json:"decision"`
	Confidence     int     `json:"confidence"`
	Reason         string  `json:"reason"`
	Urgency        string  `json:"urgency"`
	SavingsPercent int     `json:"savings_percent"`
	SavingsAmount  float64 `json:"savings_amount"`
	BestStore      string  `json:"best_store,omitempty"`
	BestPrice      float64 `json:"best_price,omitempty"`
	BestLink       string  `json:"best_link,omitempty"`
}

// IntelligenceVerdict is the composite scoring output for one product.
// It is built fresh per computation and never mutated afterwards.
type IntelligenceVerdict struct {
	PriceIntel       PriceIntel        `json:"price_intel"`
	TrendIntel       *TrendIntel       `json:"trend_intel,omitempty"`
	TrustIntel       *TrustIntel       `json:"trust_intel,omitempty"`
	TimingIntel      *TimingIntel      `json:"timing_intel,omitempty"`
	ValueIntel       *ValueIntel       `json:"value_intel,omitempty"`
	PersonalityIntel *PersonalityIntel `json:"personality_intel,omitempty"`
	MarketIntel      *MarketIntel      `json:"market_intel,omitempty"`
	FinalVerdict     FinalVerdict      `json:"final_verdict"`
	HasEnoughData    bool              `json:"has_enough_data"`
}
