package ghgtypes

import (
	"time"

	"github.com/google/uuid"
)

// BreakdownRow is one line of the per-scope audit trail (spec §3, §4.7),
// generalized from the teacher's per-step CalculationStep idiom: every scope
// calculator emits one row per input line item it consumes.
type BreakdownRow struct {
	Scope       int         `json:"scope"` // 1, 2, or 3
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory,omitempty"` // e.g. scope2 market-based hierarchy step: supplier_specific/renewable_rec/residual_mix
	Source      string      `json:"source"`                // e.g. "naturalGas", "fleet:van", "cat1:spend:it_services"
	KgCO2e      float64     `json:"kgCO2e"`
	DataQuality DataQuality `json:"dataQuality"`
	Methodology string      `json:"methodology"` // one-line formula/citation description
}

// Intensity carries the per-sqft and per-employee normalized figures from
// spec §4.7.
type Intensity struct {
	KgCO2ePerSqFt    float64 `json:"kgCO2ePerSqFt"`
	KgCO2ePerEmployee float64 `json:"kgCO2ePerEmployee,omitempty"`
}

// BenchmarkResult is the facility's position against the CBECS peer
// distribution for its building type (spec §4.7). Named distinctly from the
// factor-table Benchmark, which holds the peer reference data this is
// computed against.
type BenchmarkResult struct {
	Percentile              float64 `json:"percentile"`
	Classification          string  `json:"classification"` // low/average/high/very_high
	PeerMedianKgCO2ePerSqFt float64 `json:"peerMedianKgCO2ePerSqFt"`
}

// Uncertainty carries the analytical relative-uncertainty band computed from
// data-quality weights (spec §4.7), distinct from the Monte Carlo
// distribution computed by RunMonteCarlo.
type Uncertainty struct {
	RelativeUncertaintyPct float64     `json:"relativeUncertaintyPct"`
	LowerKgCO2e            float64     `json:"lowerKgCO2e"`
	UpperKgCO2e            float64     `json:"upperKgCO2e"`
	OverallDataQuality     DataQuality `json:"overallDataQuality"` // measured/modeled/estimated by value-weighted share, spec §4.7
	ConfidenceLevel        float64     `json:"confidenceLevel"`    // fixed at 0.95 for the analytical band
}

// MethodologyRecord documents how a result was produced, modeled on the
// teacher's MethodologyMetadata struct (spec §4.7, §6).
type MethodologyRecord struct {
	FactorSetVersion string            `json:"factorSetVersion"`
	EngineVersion    string            `json:"engineVersion"`
	Timestamp        time.Time         `json:"timestamp"`
	Sources          []string          `json:"sources"`
	Assumptions      []string          `json:"assumptions"`
	DataGaps         []string          `json:"dataGaps"`
}

// ComputeOptions controls which optional passes ComputeAll/Compute run,
// mirroring spec §6.1's computeAll(facility, factorSet, options?) with
// options = { includeScope3=true, includeEstimation=true }. The zero value
// (ComputeOptions{}) enables both passes, matching the spec's documented
// defaults; a caller that wants a location-specific deterministic total
// without the value-chain categories or CBECS gap-filling sets a field to
// false explicitly.
type ComputeOptions struct {
	IncludeScope3     bool `json:"includeScope3"`
	IncludeEstimation bool `json:"includeEstimation"`
}

// EmissionResult is the output of ComputeAll (spec §4.7, §6).
type EmissionResult struct {
	ID uuid.UUID `json:"id"`

	TotalKgCO2eLocationBased float64 `json:"totalKgCO2eLocationBased"`
	TotalKgCO2eMarketBased   float64 `json:"totalKgCO2eMarketBased"`

	Scope1KgCO2e float64 `json:"scope1KgCO2e"`
	Scope2KgCO2eLocationBased float64 `json:"scope2KgCO2eLocationBased"`
	Scope2KgCO2eMarketBased   float64 `json:"scope2KgCO2eMarketBased"`
	Scope3KgCO2e float64 `json:"scope3KgCO2e"`

	Scope3ByCategory map[string]float64 `json:"scope3ByCategory"`

	Breakdown []BreakdownRow `json:"breakdown"`

	Intensity   Intensity       `json:"intensity"`
	Benchmark   BenchmarkResult `json:"benchmark"`
	Uncertainty Uncertainty     `json:"uncertainty"`

	DataQualityScore float64 `json:"dataQualityScore"` // 0-100

	Methodology MethodologyRecord `json:"methodology"`
}

// NewResultID generates a fresh identifier for a new EmissionResult or
// ScenarioResult, mirroring the teacher's per-credit uuid.New() convention.
// SimulationResult carries no ID of its own — see its doc comment.
func NewResultID() uuid.UUID {
	return uuid.New()
}
