package sage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

func TestComputeValue(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected string
	}{
		{name: "eighty is excellent", score: 80, expected: ValueExcellent},
		{name: "seventy is good", score: 70, expected: ValueGood},
		{name: "sixty is good", score: 60, expected: ValueGood},
		{name: "below sixty is poor", score: 40, expected: ValuePoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intel := ComputeValue(models.PriceIntel{Score: tt.score, Current: 90, Median: 100}, 5, "en")
			assert.Equal(t, tt.expected, intel.Verdict)
			assert.Equal(t, 5, intel.Competitors)
		})
	}
}

func TestComputeValueSavings(t *testing.T) {
	intel := ComputeValue(models.PriceIntel{Score: 75, Current: 80, Median: 100}, 4, "en")
	assert.Equal(t, 20, intel.SavingsPercent)
	assert.Equal(t, 20.0, intel.SavingsAmount)

	// no median, no savings claim
	intel = ComputeValue(models.PriceIntel{Score: 75, Current: 80}, 4, "en")
	assert.Equal(t, 0, intel.SavingsPercent)
	assert.Equal(t, 0.0, intel.SavingsAmount)
}
