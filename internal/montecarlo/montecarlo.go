// Package montecarlo implements the seeded uncertainty simulator (spec §5).
// Run draws cfg.Runs independent perturbations of the facility profile and
// factor set from a single Mulberry32 stream, recomputes the full
// ghgengine.Compute pipeline for each draw, and summarizes the resulting
// series of totals. The per-run draw order is fixed — energy, refrigerants,
// fleet, waste, water, then stationary factors, then grid subregions — and
// changing that order is a breaking, versioned change to
// internal/units.EngineVersion, since it would silently change every
// existing seed's output.
package montecarlo

import (
	"go.uber.org/zap"

	"github.com/MeeraPatel2703/emissions/internal/apperrors"
	"github.com/MeeraPatel2703/emissions/internal/ghgengine"
	"github.com/MeeraPatel2703/emissions/internal/rng"
	"github.com/MeeraPatel2703/emissions/internal/stats"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// MinRuns and MaxRuns bound the accepted run count (spec §6:
// runs∈[100,50000]); MinBins and MaxBins bound the histogram bin count
// (bins∈[10,200]); MinConfidenceLevel and MaxConfidenceLevel bound the
// confidence level (confidenceLevel∈[0.5,0.999]).
const (
	MinRuns = 100
	MaxRuns = 50000

	MinBins = 10
	MaxBins = 200

	MinConfidenceLevel = 0.5
	MaxConfidenceLevel = 0.999
)

// DefaultRuns, DefaultSeed, DefaultBins, and DefaultConfidenceLevel are the
// documented defaults (spec §6) applied whenever MonteCarloConfig leaves the
// corresponding field at its zero value.
const (
	DefaultRuns            = 1000
	DefaultSeed            = 42
	DefaultBins            = 50
	DefaultConfidenceLevel = 0.95
)

// Run executes the Monte Carlo simulation described above and returns the
// SimulationResult.
func Run(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, cfg ghgtypes.MonteCarloConfig, logger *zap.Logger) (ghgtypes.SimulationResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Runs == 0 {
		cfg.Runs = DefaultRuns
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.Bins == 0 {
		cfg.Bins = DefaultBins
	}
	if cfg.ConfidenceLevel == 0 {
		cfg.ConfidenceLevel = DefaultConfidenceLevel
	}

	if cfg.Runs < MinRuns || cfg.Runs > MaxRuns {
		return ghgtypes.SimulationResult{}, apperrors.ErrMonteCarloDegenerate
	}
	if cfg.Bins < MinBins || cfg.Bins > MaxBins {
		return ghgtypes.SimulationResult{}, apperrors.NewValidationError("bins", "must be in [10, 200]")
	}
	if cfg.ConfidenceLevel < MinConfidenceLevel || cfg.ConfidenceLevel > MaxConfidenceLevel {
		return ghgtypes.SimulationResult{}, apperrors.NewValidationError("confidenceLevel", "must be in [0.5, 0.999]")
	}

	if err := ghgengine.Validate(profile); err != nil {
		return ghgtypes.SimulationResult{}, err
	}

	gen := rng.New(cfg.Seed)

	totals := make([]float64, cfg.Runs)
	scope1s := make([]float64, cfg.Runs)
	scope2s := make([]float64, cfg.Runs)
	scope3s := make([]float64, cfg.Runs)
	byCategory := make(map[string][]float64)

	for i := 0; i < cfg.Runs; i++ {
		perturbedProfile := perturbProfile(gen, profile)
		perturbedFS := perturbFactorSet(gen, profile, fs)

		result := ghgengine.Compute(perturbedProfile, perturbedFS, ghgtypes.ComputeOptions{}, logger)

		totals[i] = result.TotalKgCO2eLocationBased
		scope1s[i] = result.Scope1KgCO2e
		scope2s[i] = result.Scope2KgCO2eLocationBased
		scope3s[i] = result.Scope3KgCO2e

		for category, kgCO2e := range result.Scope3ByCategory {
			byCategory[category] = append(byCategory[category], kgCO2e)
		}
	}

	point := ghgengine.Compute(profile, fs, ghgtypes.ComputeOptions{}, logger)

	perCategory := make(map[string]ghgtypes.CategorySummary, len(byCategory))
	for category, values := range byCategory {
		perCategory[category] = stats.SummarizeCategory(values)
	}

	logger.Info("montecarlo: simulation complete",
		zap.Int("runs", cfg.Runs),
		zap.Int64("seed", cfg.Seed),
		zap.Float64("pointEstimate", point.TotalKgCO2eLocationBased),
	)

	return ghgtypes.SimulationResult{
		Config: cfg,

		Total:  stats.Summarize(totals, cfg.Bins),
		Scope1: stats.Summarize(scope1s, cfg.Bins),
		Scope2: stats.Summarize(scope2s, cfg.Bins),
		Scope3: stats.Summarize(scope3s, cfg.Bins),

		PerCategory: perCategory,

		ConvergenceDiagnostic: stats.ConvergenceDiagnostic(totals),

		PointEstimate: point.TotalKgCO2eLocationBased,
	}, nil
}
