// Package ghgengine orchestrates the Scope 1/2/3 calculators into the single
// ComputeAll pass spec §4.7 describes: resolve gaps, run every scope, merge
// breakdown rows, and derive intensity, benchmark position, analytical
// uncertainty, and a data-quality score from the result. It is also the
// function internal/montecarlo calls once per run against a perturbed
// FactorSet and FacilityProfile, so Compute itself must stay a pure,
// allocation-cheap function with no package-level state.
package ghgengine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MeeraPatel2703/emissions/internal/estimator"
	"github.com/MeeraPatel2703/emissions/internal/scope1"
	"github.com/MeeraPatel2703/emissions/internal/scope2"
	"github.com/MeeraPatel2703/emissions/internal/scope3"
	"github.com/MeeraPatel2703/emissions/internal/stats"
	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Compute runs the full Scope 1/2/3 pipeline against profile and fs. The
// caller must call Validate first; Compute itself assumes a validated
// profile and never returns an error, per the propagation policy in
// SPEC_FULL.md §A.2. opts gates the optional Scope 3 and estimator passes
// per spec §6.1; see ghgtypes.ComputeOptions for its zero-value defaults.
func Compute(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, opts ghgtypes.ComputeOptions, logger *zap.Logger) ghgtypes.EmissionResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = resolveComputeOptions(opts)

	energy := resolveEnergy(profile, fs, opts, logger)

	s1 := scope1.Calculate(energy, profile.Fleet, profile.Refrigerants, fs)

	var s2 scope2.Result
	if elec, ok := energy[ghgtypes.FuelElectricity]; ok {
		s2 = scope2.Calculate(elec, scope2.Location{
			Country:        profile.Country,
			State:          profile.State,
			EGRIDSubregion: profile.EGRIDSubregion,
		}, fs)
	}

	var s3 scope3.Result
	if opts.IncludeScope3 {
		s3 = scope3.Calculate(profile.Scope3, profile.Waste, energy, profile.Occupancy, fs, s2.LocationEFKgCO2ePerKWh, s2.LossPct)
	}

	var breakdown []ghgtypes.BreakdownRow
	breakdown = append(breakdown, s1.Rows...)
	breakdown = append(breakdown, s2.LocationRows...)
	breakdown = append(breakdown, s2.MarketRows...)
	breakdown = append(breakdown, s3.Rows...)

	locationTotal := s1.TotalKgCO2e + s2.LocationTotalKgCO2e + s3.TotalKgCO2e
	marketTotal := s1.TotalKgCO2e + s2.MarketTotalKgCO2e + s3.TotalKgCO2e

	dataGaps := append(append([]string{}, s1.DataGaps...), s3.DataGaps...)
	dataGaps = append(dataGaps, s2.DataGaps...)
	for _, gap := range dataGaps {
		logger.Warn("ghgengine: data gap", zap.String("detail", gap))
	}

	intensity := computeIntensity(locationTotal, profile)
	benchmark := computeBenchmark(locationTotal, profile, fs)
	uncertainty := computeUncertainty(locationTotal, breakdown)
	dqScore := computeDataQualityScore(breakdown)

	return ghgtypes.EmissionResult{
		ID: ghgtypes.NewResultID(),

		TotalKgCO2eLocationBased: locationTotal,
		TotalKgCO2eMarketBased:   marketTotal,

		Scope1KgCO2e:              s1.TotalKgCO2e,
		Scope2KgCO2eLocationBased: s2.LocationTotalKgCO2e,
		Scope2KgCO2eMarketBased:   s2.MarketTotalKgCO2e,
		Scope3KgCO2e:              s3.TotalKgCO2e,
		Scope3ByCategory:          s3.ByCategory,

		Breakdown: breakdown,

		Intensity:   intensity,
		Benchmark:   benchmark,
		Uncertainty: uncertainty,

		DataQualityScore: dqScore,

		Methodology: ghgtypes.MethodologyRecord{
			FactorSetVersion: fs.Version,
			EngineVersion:    units.EngineVersion,
			Timestamp:        time.Now().UTC(),
			Sources:          []string{"EPA Emission Factors Hub", "EPA eGRID", "IPCC AR6 GWP-100", "DOE CBECS", "ASHRAE climate zones", "EIA AEO grid projection"},
			Assumptions:      assumptionNotes(profile, s2, opts),
			DataGaps:         dataGaps,
		},
	}
}

// resolveEnergy merges the facility's reported energy with estimator
// fall-backs for any benchmark-named fuel the profile did not report. Per
// spec §4.2, the estimator only runs at all when inputMode is basic, or
// electricity is absent/zero in any mode; expert mode takes an absent fuel
// to mean "genuinely zero" and never triggers estimation. opts.IncludeEstimation
// disables the pass entirely regardless of inputMode, per spec §6.1.
func resolveEnergy(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, opts ghgtypes.ComputeOptions, logger *zap.Logger) map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem {
	energy := make(map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem, len(profile.Energy))
	for k, v := range profile.Energy {
		energy[k] = v
	}

	if !opts.IncludeEstimation || profile.InputMode == ghgtypes.InputModeExpert {
		return energy
	}

	elec, hasElec := energy[ghgtypes.FuelElectricity]
	electricityMissing := !hasElec || elec.AnnualQuantity() <= 0
	if profile.InputMode != ghgtypes.InputModeBasic && !electricityMissing {
		return energy
	}

	for fuel, item := range estimator.EstimateEnergy(profile, fs, logger) {
		energy[fuel] = item
	}

	return energy
}

func computeIntensity(totalKgCO2e float64, profile ghgtypes.FacilityProfile) ghgtypes.Intensity {
	intensity := ghgtypes.Intensity{}
	if profile.SquareFeet > 0 {
		intensity.KgCO2ePerSqFt = totalKgCO2e / profile.SquareFeet
	}
	if profile.Occupancy != nil && profile.Occupancy.Employees > 0 {
		intensity.KgCO2ePerEmployee = totalKgCO2e / float64(profile.Occupancy.Employees)
	}
	return intensity
}

func computeBenchmark(totalKgCO2e float64, profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) ghgtypes.BenchmarkResult {
	b, ok := fs.Benchmarks[profile.BuildingType]
	if !ok || profile.SquareFeet <= 0 {
		return ghgtypes.BenchmarkResult{}
	}

	perSqFt := totalKgCO2e / profile.SquareFeet
	percentile := stats.PercentileFromQuartiles(perSqFt, b.KgCO2ePerSqFt)

	return ghgtypes.BenchmarkResult{
		Percentile:              percentile,
		Classification:          units.BenchmarkClassification(percentile),
		PeerMedianKgCO2ePerSqFt: b.KgCO2ePerSqFt.Median,
	}
}

// computeUncertainty derives an analytical relative-uncertainty band as the
// breakdown-row-magnitude-weighted average of each row's data-quality
// uncertainty, per spec §4.7.
func computeUncertainty(totalKgCO2e float64, breakdown []ghgtypes.BreakdownRow) ghgtypes.Uncertainty {
	if totalKgCO2e == 0 || len(breakdown) == 0 {
		return ghgtypes.Uncertainty{}
	}

	var weightedSum, weightTotal float64
	for _, row := range breakdown {
		rel, ok := units.AnalyticalRelativeUncertainty[string(row.DataQuality)]
		if !ok {
			rel = units.AnalyticalRelativeUncertainty["estimated"]
		}
		weight := absFloat(row.KgCO2e)
		weightedSum += rel * weight
		weightTotal += weight
	}

	relUncertainty := units.AnalyticalRelativeUncertainty["estimated"]
	if weightTotal > 0 {
		relUncertainty = weightedSum / weightTotal
	}

	return ghgtypes.Uncertainty{
		RelativeUncertaintyPct: relUncertainty * 100,
		LowerKgCO2e:            totalKgCO2e * (1 - relUncertainty),
		UpperKgCO2e:            totalKgCO2e * (1 + relUncertainty),
		OverallDataQuality:     overallDataQuality(breakdown),
		ConfidenceLevel:        0.95,
	}
}

// overallDataQuality buckets the breakdown's value-weighted measured/modeled
// share into a single tag, per spec §4.7: "measured" if the measured share
// exceeds 0.7, "modeled" if it exceeds 0.3, else "estimated".
func overallDataQuality(breakdown []ghgtypes.BreakdownRow) ghgtypes.DataQuality {
	var measuredWeight, modeledWeight, total float64
	for _, row := range breakdown {
		weight := absFloat(row.KgCO2e)
		total += weight
		switch row.DataQuality {
		case ghgtypes.DataQualityMeasured:
			measuredWeight += weight
		case ghgtypes.DataQualityModeled:
			modeledWeight += weight
		}
	}
	if total == 0 {
		return ghgtypes.DataQualityEstimated
	}
	if measuredWeight/total > 0.7 {
		return ghgtypes.DataQualityMeasured
	}
	if modeledWeight/total > 0.3 {
		return ghgtypes.DataQualityModeled
	}
	return ghgtypes.DataQualityEstimated
}

// computeDataQualityScore weights each breakdown row's data-quality score
// by its magnitude, per spec §4.7.
func computeDataQualityScore(breakdown []ghgtypes.BreakdownRow) float64 {
	var weightedSum, weightTotal float64
	for _, row := range breakdown {
		weight := absFloat(row.KgCO2e)
		score, ok := units.DataQualityWeight[string(row.DataQuality)]
		if !ok {
			score = units.DataQualityWeight["estimated"]
		}
		weightedSum += score * weight
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

func assumptionNotes(profile ghgtypes.FacilityProfile, s2 scope2.Result, opts ghgtypes.ComputeOptions) []string {
	notes := []string{
		fmt.Sprintf("grid factor resolved via %s", orUnresolved(s2.GridFactorSource)),
	}
	if opts.IncludeEstimation && profile.InputMode != ghgtypes.InputModeExpert {
		notes = append(notes, "missing energy fuels filled from CBECS benchmark + degree-day estimator")
	}
	if !opts.IncludeScope3 {
		notes = append(notes, "scope 3 excluded from this result by ComputeOptions")
	}
	return notes
}

func orUnresolved(s string) string {
	if s == "" {
		return "no electricity reported"
	}
	return s
}

// resolveComputeOptions applies spec §6.1's documented defaults
// (includeScope3=true, includeEstimation=true) whenever the caller passes
// the zero-value ComputeOptions, the same "zero value means use the
// default" convention montecarlo.Run applies to MonteCarloConfig.
func resolveComputeOptions(opts ghgtypes.ComputeOptions) ghgtypes.ComputeOptions {
	if opts == (ghgtypes.ComputeOptions{}) {
		return ghgtypes.ComputeOptions{IncludeScope3: true, IncludeEstimation: true}
	}
	return opts
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
