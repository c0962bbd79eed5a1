package sage

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

func testEngine() *Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEngine(logger)
}

func TestComputeFullVerdict(t *testing.T) {
	engine := testEngine()

	verdict := engine.Compute(Input{
		Product: models.Product{
			ID:     "p1",
			Title:  "RTX 4070 Graphics Card",
			Price:  80,
			Source: "Newegg US",
			Link:   "https://example.com/p1",
		},
		Market: []models.Offer{
			{Price: 100, Source: "A"},
			{Price: 105, Source: "B"},
			{Price: 95, Source: "C"},
			{Price: 110, Source: "D"},
			{Price: 90, Source: "E"},
		},
		Locale: "en",
	})

	require.True(t, verdict.HasEnoughData)

	// price: ratio 0.80 against median 100 lands in the 75-point tier
	assert.Equal(t, 75, verdict.PriceIntel.Score)
	assert.Equal(t, 100.0, verdict.PriceIntel.Median)
	assert.Equal(t, 55, verdict.PriceIntel.Confidence)

	// trust: newegg is a known merchant, the price is not anomalous
	require.NotNil(t, verdict.TrustIntel)
	assert.Equal(t, 80, verdict.TrustIntel.TrustScore)
	assert.Equal(t, 0, verdict.TrustIntel.RiskScore)

	// no history, so trend degrades gracefully
	require.NotNil(t, verdict.TrendIntel)
	assert.Equal(t, TrendUnknown, verdict.TrendIntel.Direction)

	// decision: score 75 with no falling trend is a buy-now
	assert.Equal(t, models.DecisionBuyNow, verdict.FinalVerdict.Decision)
	// 0.35*55 + 0.25*100 + 0.20*80 + 0.10*0 + 20 = 80.25
	assert.Equal(t, 80, verdict.FinalVerdict.Confidence)
	assert.Equal(t, 20, verdict.FinalVerdict.SavingsPercent)

	// nothing on the market beats the subject price
	assert.Empty(t, verdict.FinalVerdict.BestStore)
	assert.Equal(t, "https://example.com/p1", verdict.FinalVerdict.BestLink)

	require.NotNil(t, verdict.MarketIntel)
	assert.Equal(t, 5, verdict.MarketIntel.CompetitorCount)
	assert.Len(t, verdict.MarketIntel.Alternatives, 3)
	assert.Equal(t, 0, verdict.MarketIntel.MarketPosition)

	require.NotNil(t, verdict.ValueIntel)
	assert.Equal(t, ValueGood, verdict.ValueIntel.Verdict)

	require.NotNil(t, verdict.PersonalityIntel)
	assert.Equal(t, ArchetypeNeutral, verdict.PersonalityIntel.Type)
	assert.Equal(t, IntentBrowsing, verdict.PersonalityIntel.Intent)
}

func TestComputeInsufficientData(t *testing.T) {
	engine := testEngine()

	verdict := engine.Compute(Input{
		Product: models.Product{Title: "obscure item", Price: 50, Link: "https://example.com/x"},
		Market:  []models.Offer{{Price: 55}, {Price: 60}},
		Locale:  "en",
	})

	assert.False(t, verdict.HasEnoughData)
	assert.Equal(t, models.DecisionInsufficientData, verdict.FinalVerdict.Decision)
	assert.Equal(t, 30, verdict.FinalVerdict.Confidence)
	assert.Equal(t, 50, verdict.PriceIntel.Score)
	assert.Equal(t, "https://example.com/x", verdict.FinalVerdict.BestLink)
	assert.Nil(t, verdict.TrendIntel)
	assert.Nil(t, verdict.MarketIntel)
}

func TestComputeWithHistoryAndEvents(t *testing.T) {
	engine := testEngine()

	verdict := engine.Compute(Input{
		Product: models.Product{Title: "watched item", Price: 92, Source: "amazon"},
		Market: []models.Offer{
			{Price: 100}, {Price: 98}, {Price: 102}, {Price: 96}, {Price: 104},
		},
		History: historyOf(110, 106, 102, 98, 94),
		Events:  models.UserEvents{PriceChecks: 3, WatchDays: 2},
		Locale:  "en",
	})

	require.True(t, verdict.HasEnoughData)
	assert.Equal(t, TrendFalling, verdict.TrendIntel.Direction)
	assert.Equal(t, IntentWaitingForDrop, verdict.PersonalityIntel.Intent)
	// ratio 0.92 scores 65, which clears the buy line despite the trend
	assert.Equal(t, models.DecisionBuy, verdict.FinalVerdict.Decision)
}

func TestComputeLocalizedOutput(t *testing.T) {
	engine := testEngine()

	verdict := engine.Compute(Input{
		Product: models.Product{Title: "منتج", Price: 80, Source: "noon"},
		Market: []models.Offer{
			{Price: 100}, {Price: 105}, {Price: 95}, {Price: 110}, {Price: 90},
		},
		Locale: "ar-SA",
	})

	require.True(t, verdict.HasEnoughData)
	assert.Equal(t, "صفقة ممتازة", verdict.FinalVerdict.Reason)
}

func TestComputeNilLoggerIsSafe(t *testing.T) {
	engine := NewEngine(nil)
	verdict := engine.Compute(Input{Product: models.Product{Price: 10}})
	assert.False(t, verdict.HasEnoughData)
}
