// Package stats computes the descriptive statistics the Monte Carlo
// simulator and benchmark comparison need: mean/stddev/min/max via
// github.com/montanaflynn/stats, and Excel PERCENTILE.INC-style linear
// interpolation for both a simulated series and a quartile-only benchmark
// table, grounded on the percentile algorithm in
// internal/reports/benchmarks/comparator.go.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Summarize computes the full DistributionSummary over a simulated series:
// mean, median, Bessel-corrected standard deviation, min/max, the
// p5/p10/p25/p75/p90/p95 percentiles, the p2.5/p97.5 confidence interval,
// and a fixed-bin histogram.
func Summarize(values []float64, bins int) ghgtypes.DistributionSummary {
	if len(values) == 0 {
		return ghgtypes.DistributionSummary{}
	}

	data := mstats.Float64Data(values)
	mean, _ := data.Mean()
	stddev, _ := data.StandardDeviationSample()
	min, _ := data.Min()
	max, _ := data.Max()

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return ghgtypes.DistributionSummary{
		Mean:      mean,
		Median:    PercentileInc(sorted, 50),
		StdDev:    stddev,
		Min:       min,
		Max:       max,
		P5:        PercentileInc(sorted, 5),
		P10:       PercentileInc(sorted, 10),
		P25:       PercentileInc(sorted, 25),
		P75:       PercentileInc(sorted, 75),
		P90:       PercentileInc(sorted, 90),
		P95:       PercentileInc(sorted, 95),
		CI95Lower: PercentileInc(sorted, 2.5),
		CI95Upper: PercentileInc(sorted, 97.5),
		Histogram: Histogram(sorted, min, max, bins),
	}
}

// SummarizeCategory computes the reduced {mean, ci95Lower, ci95Upper}
// summary spec §4.10 limits per-Scope-3-category output to.
func SummarizeCategory(values []float64) ghgtypes.CategorySummary {
	if len(values) == 0 {
		return ghgtypes.CategorySummary{}
	}

	mean, _ := mstats.Float64Data(values).Mean()

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return ghgtypes.CategorySummary{
		Mean:      mean,
		CI95Lower: PercentileInc(sorted, 2.5),
		CI95Upper: PercentileInc(sorted, 97.5),
	}
}

// PercentileInc returns the pct-th percentile (0-100) of an ascending-sorted
// slice using the same linear-interpolation rule as Excel's PERCENTILE.INC
// and NumPy's default "linear" method: rank = pct/100 * (n-1), then
// interpolate between the two bracketing order statistics.
func PercentileInc(sortedAsc []float64, pct float64) float64 {
	n := len(sortedAsc)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sortedAsc[0]
	}

	rank := (pct / 100) * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if upper >= n {
		upper = n - 1
	}
	if lower < 0 {
		lower = 0
	}

	weight := rank - float64(lower)
	return sortedAsc[lower] + weight*(sortedAsc[upper]-sortedAsc[lower])
}

// Histogram buckets sorted ascending values into a fixed number of
// equal-width bins spanning [min, max].
func Histogram(sortedAsc []float64, min, max float64, bins int) ghgtypes.Histogram {
	if bins <= 0 {
		bins = 50
	}
	width := (max - min) / float64(bins)
	if width <= 0 {
		width = 1
	}

	counts := make([]int, bins)
	for _, v := range sortedAsc {
		idx := int((v - min) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return ghgtypes.Histogram{BinWidth: width, BinStart: min, Counts: counts}
}

// PercentileFromQuartiles estimates a value's percentile position (0-100)
// against a benchmark's p25/median/p75 table via piecewise-linear
// interpolation, extrapolating with the nearest segment's slope beyond the
// table's own range and clamping to [0, 100] (spec §4.7).
func PercentileFromQuartiles(value float64, q ghgtypes.Quartiles) float64 {
	switch {
	case q.Median == q.P25 && q.P75 == q.Median:
		return 50 // degenerate benchmark table, nothing to rank against
	case value <= q.P25:
		if q.P25 <= 0 {
			return 0
		}
		return clampPercentile(25 * value / q.P25)
	case value <= q.Median:
		if q.Median == q.P25 {
			return 50
		}
		return clampPercentile(25 + (value-q.P25)/(q.Median-q.P25)*25)
	case value <= q.P75:
		if q.P75 == q.Median {
			return 75
		}
		return clampPercentile(50 + (value-q.Median)/(q.P75-q.Median)*25)
	default:
		if q.P75 == q.Median {
			return 100
		}
		return clampPercentile(75 + (value-q.P75)/(q.P75-q.Median)*25)
	}
}

func clampPercentile(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// ConvergenceDiagnostic computes stdDev(runningMeans) / mean(runningMeans)
// over the last 10% of a simulated series' running means, per spec §4.10.
// Fixed at 1.0 when there are fewer than 100 values — too few to assess.
// Values below 0.01 indicate the simulation has converged.
func ConvergenceDiagnostic(values []float64) float64 {
	n := len(values)
	if n < 100 {
		return 1.0
	}

	runningMeans := make([]float64, n)
	var runningSum float64
	for i, v := range values {
		runningSum += v
		runningMeans[i] = runningSum / float64(i+1)
	}

	tailStart := n - n/10
	if tailStart >= n {
		tailStart = n - 1
	}
	tail := runningMeans[tailStart:]

	tailMean, _ := mstats.Float64Data(tail).Mean()
	if tailMean == 0 {
		return 0
	}
	if len(tail) < 2 {
		return 0
	}
	tailStdDev, _ := mstats.Float64Data(tail).StandardDeviationSample()

	return math.Abs(tailStdDev / tailMean)
}
