package ghgengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

func loadFactorSet(t *testing.T) *ghgtypes.FactorSet {
	t.Helper()
	fs, err := registry.Load(nil)
	require.NoError(t, err)
	return fs
}

func basicOfficeProfile() ghgtypes.FacilityProfile {
	return ghgtypes.FacilityProfile{
		Name:         "HQ",
		BuildingType: ghgtypes.BuildingOffice,
		SquareFeet:   100000,
		Country:      "US",
		State:        "CA",
		InputMode:    ghgtypes.InputModeBasic,
	}
}

// TestCompute_IsPureAndDeterministic pins spec §8 testable property 1: two
// calls against identical inputs must produce byte-identical totals.
func TestCompute_IsPureAndDeterministic(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()

	a := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)
	b := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	assert.Equal(t, a.TotalKgCO2eLocationBased, b.TotalKgCO2eLocationBased)
	assert.Equal(t, a.Scope1KgCO2e, b.Scope1KgCO2e)
	assert.Equal(t, a.Scope2KgCO2eLocationBased, b.Scope2KgCO2eLocationBased)
	assert.Equal(t, a.Scope3KgCO2e, b.Scope3KgCO2e)
}

func TestCompute_BasicModeFillsMissingEnergyFromTheEstimator(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile() // no Energy reported at all

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	assert.Greater(t, result.TotalKgCO2eLocationBased, 0.0)
	assert.Contains(t, result.Methodology.Assumptions, "missing energy fuels filled from CBECS benchmark + degree-day estimator")
}

func TestCompute_ExpertModeNeverEstimatesMissingFuels(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()
	profile.InputMode = ghgtypes.InputModeExpert
	profile.Energy = map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
		ghgtypes.FuelElectricity: {Quantity: 500000, Unit: "kWh", Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
	}

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	// only electricity was reported; expert mode must not backfill natural
	// gas or any other fuel from the benchmark.
	for _, row := range result.Breakdown {
		assert.NotEqual(t, "naturalGas", row.Source)
	}
}

func TestCompute_ReportsBothScope2MethodsAlways(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()
	profile.Energy = map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
		ghgtypes.FuelElectricity: {
			Quantity:    200000,
			Unit:        "kWh",
			Period:      ghgtypes.PeriodAnnual,
			DataQuality: ghgtypes.DataQualityMeasured,
			IsRenewable: true,
		},
	}
	profile.InputMode = ghgtypes.InputModeExpert

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	assert.Greater(t, result.Scope2KgCO2eLocationBased, 0.0)
	assert.Equal(t, 0.0, result.Scope2KgCO2eMarketBased, "renewable-tagged electricity must zero-rate under the market-based method")
}

func TestCompute_IntensityDividesBySquareFeetAndEmployees(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()
	profile.Occupancy = &ghgtypes.Occupancy{Employees: 200}

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	expectedPerSqFt := result.TotalKgCO2eLocationBased / profile.SquareFeet
	expectedPerEmployee := result.TotalKgCO2eLocationBased / 200

	assert.InDelta(t, expectedPerSqFt, result.Intensity.KgCO2ePerSqFt, 1e-9)
	assert.InDelta(t, expectedPerEmployee, result.Intensity.KgCO2ePerEmployee, 1e-9)
}

func TestCompute_BenchmarkPercentileFallsWithinZeroToOneHundred(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	assert.GreaterOrEqual(t, result.Benchmark.Percentile, 0.0)
	assert.LessOrEqual(t, result.Benchmark.Percentile, 100.0)
	assert.NotEmpty(t, result.Benchmark.Classification)
}

func TestCompute_DataQualityScoreIsWithinZeroToOneHundred(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	assert.GreaterOrEqual(t, result.DataQualityScore, 0.0)
	assert.LessOrEqual(t, result.DataQualityScore, 100.0)
}

func TestCompute_StampsFactorSetAndEngineVersionOnMethodology(t *testing.T) {
	fs := loadFactorSet(t)
	profile := basicOfficeProfile()

	result := Compute(profile, fs, ghgtypes.ComputeOptions{}, nil)

	assert.Equal(t, fs.Version, result.Methodology.FactorSetVersion)
	assert.NotEmpty(t, result.Methodology.EngineVersion)
	assert.False(t, result.Methodology.Timestamp.IsZero())
}
