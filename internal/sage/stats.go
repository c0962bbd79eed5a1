package sage

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

// Statistics helpers for the scoring pipeline. All functions are pure and
// deterministic; summation is left-to-right so identical inputs always give
// identical floats.

// CleanPrice parses a price that may arrive as free text ("AED 1,299.00",
// "$49.99"). Unparseable input normalizes to 0 rather than failing; callers
// that care must filter zero prices before computing statistics.
func CleanPrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median sorts a copy ascending and returns the middle element, or the
// average of the two middle elements for even length. 0 for empty input.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the population standard deviation (divide by N).
// 0 for fewer than 2 elements.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		diff := x - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// RemoveOutliers applies the classic IQR fence: Q1 and Q3 are taken at the
// floor(0.25*N) and floor(0.75*N) indices of the sorted values, and anything
// outside [Q1-1.5*IQR, Q3+1.5*IQR] is dropped. Fewer than 4 elements pass
// the fence untouched. The result is always a sorted ascending copy; the
// input is never reordered.
func RemoveOutliers(xs []float64) []float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if len(sorted) < 4 {
		return sorted
	}
	q1 := sorted[len(sorted)/4]
	q3 := sorted[len(sorted)*3/4]
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	kept := make([]float64, 0, len(sorted))
	for _, x := range sorted {
		if x >= lower && x <= upper {
			kept = append(kept, x)
		}
	}
	return kept
}

// SMA computes the simple moving average series. nil when there are fewer
// points than the period.
func SMA(xs []float64, period int) []float64 {
	if period <= 0 || len(xs) < period {
		return nil
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	return helper.ChanToSlice(sma.Compute(helper.SliceToChan(xs)))
}

// EMA computes the exponential moving average series. nil when there are
// fewer points than the period.
func EMA(xs []float64, period int) []float64 {
	if period <= 0 || len(xs) < period {
		return nil
	}
	ema := trend.NewEmaWithPeriod[float64](period)
	return helper.ChanToSlice(ema.Compute(helper.SliceToChan(xs)))
}

// RSI computes the Wilder relative strength index over the price series.
// The first average gain/loss is a simple mean of the first `period` deltas;
// subsequent averages use Wilder smoothing
// (avg = (avg*(period-1) + value) / period). RS is defined as 100 when the
// average loss is 0. Returns nil when fewer than period+1 prices are given.
func RSI(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return nil
	}
	changes := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		changes[i-1] = prices[i] - prices[i-1]
	}

	var gains, losses float64
	for _, c := range changes[:period] {
		if c > 0 {
			gains += c
		} else {
			losses -= c
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	values := make([]float64, 0, len(changes)-period+1)
	rsiOf := func(gain, loss float64) float64 {
		rs := 100.0
		if loss != 0 {
			rs = gain / loss
		}
		return 100 - 100/(1+rs)
	}
	values = append(values, rsiOf(avgGain, avgLoss))

	for _, c := range changes[period:] {
		gain, loss := 0.0, 0.0
		if c > 0 {
			gain = c
		} else {
			loss = -c
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		values = append(values, rsiOf(avgGain, avgLoss))
	}
	return values
}

// Regression is an ordinary least squares fit of a series against its
// indices 0..N-1.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits y = slope*x + intercept over x = 0..N-1.
// Returns false for fewer than 2 points. RSquared is 1 when the series is
// perfectly flat.
func LinearRegression(ys []float64) (Regression, bool) {
	n := len(ys)
	if n < 2 {
		return Regression{}, false
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	meanY := sumY / fn
	var ssRes, ssTot float64
	for i, y := range ys {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}
	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}
	return Regression{Slope: slope, Intercept: intercept, RSquared: r2}, true
}
