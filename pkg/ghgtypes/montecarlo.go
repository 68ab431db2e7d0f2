package ghgtypes

// MonteCarloConfig parameterizes RunMonteCarlo (spec §5, §6). Zero values
// mean "use the documented default" (1000 runs, seed 42, 50 histogram bins,
// 0.95 confidence level).
type MonteCarloConfig struct {
	Runs            int     `json:"runs"`
	Seed            int64   `json:"seed"`
	Bins            int     `json:"bins"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
}

// Histogram is a fixed-bin-width count of simulated totals, used for display
// only; percentile figures never derive from it (spec §5.4).
type Histogram struct {
	BinWidth float64 `json:"binWidth"`
	BinStart float64 `json:"binStart"`
	Counts   []int   `json:"counts"`
}

// DistributionSummary holds the statistics computed over one simulated
// series (spec §4.10): mean, median, Bessel-corrected standard deviation,
// min/max, the Excel PERCENTILE.INC-interpolated p5/p10/p25/p75/p90/p95, and
// the 95% confidence interval (p2.5/p97.5).
type DistributionSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	P5  float64 `json:"p5"`
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`

	CI95Lower float64 `json:"ci95Lower"`
	CI95Upper float64 `json:"ci95Upper"`

	Histogram Histogram `json:"histogram"`
}

// CategorySummary is the reduced summary recorded per Scope 3 category
// (spec §4.10): "per-category summary is limited to {mean, ci95Lower,
// ci95Upper}" to keep a fifteen-category result from ballooning in size.
type CategorySummary struct {
	Mean      float64 `json:"mean"`
	CI95Lower float64 `json:"ci95Lower"`
	CI95Upper float64 `json:"ci95Upper"`
}

// SimulationResult is the output of RunMonteCarlo (spec §5, §6). It
// deliberately carries no identifier or timestamp field: spec §8 property 6
// requires two calls with identical (facility, factorSet, seed, runs, bins)
// to produce a byte-identical SimulationResult, which a random or
// wall-clock-derived field would break. Callers that need to persist or
// correlate a run assign their own ID around this value.
type SimulationResult struct {
	Config MonteCarloConfig `json:"config"`

	Total  DistributionSummary `json:"total"`
	Scope1 DistributionSummary `json:"scope1"`
	Scope2 DistributionSummary `json:"scope2"`
	Scope3 DistributionSummary `json:"scope3"`

	PerCategory map[string]CategorySummary `json:"perCategory,omitempty"`

	// ConvergenceDiagnostic is stdDev(runningMeans)/mean(runningMeans) over
	// the last 10% of runs; fixed at 1.0 when Runs < 100. Values below 0.01
	// indicate the simulation has converged (spec §4.10).
	ConvergenceDiagnostic float64 `json:"convergenceDiagnostic"`

	PointEstimate float64 `json:"pointEstimate"` // the deterministic ComputeAll total, for comparison
}
