package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeeraPatel2703/emissions/internal/apperrors"
	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

func loadFS(t *testing.T) *ghgtypes.FactorSet {
	t.Helper()
	fs, err := registry.Load(nil)
	require.NoError(t, err)
	return fs
}

func baselineProfile() ghgtypes.FacilityProfile {
	return ghgtypes.FacilityProfile{
		Name:         "Plant 1",
		BuildingType: ghgtypes.BuildingManufacturing,
		SquareFeet:   150000,
		Country:      "US",
		State:        "OH",
		InputMode:    ghgtypes.InputModeBasic,
		Energy: map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
			ghgtypes.FuelElectricity: {Quantity: 2000000, Unit: "kWh", Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
			ghgtypes.FuelNaturalGas:  {Quantity: 80000, Unit: "therms", Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
		},
		Waste: []ghgtypes.WasteEntry{{WasteType: "mixed_msw", DisposalMethod: "landfill", AnnualTonnes: 50}},
		Scope3: ghgtypes.Scope3Inputs{AutoCategory5: true},
	}
}

func TestEvaluate_RejectsAnInvalidProfile(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	profile.SquareFeet = 0

	_, err := Evaluate(profile, fs, ghgtypes.ScenarioParams{}, nil)
	assert.Error(t, err)
}

func TestEvaluate_RejectsAnUnsupportedInterventionType(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	params := ghgtypes.ScenarioParams{Interventions: []ghgtypes.Intervention{{Type: "not_a_real_intervention"}}}

	_, err := Evaluate(profile, fs, params, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedIntervention)
}

func TestEvaluate_NoInterventionsLeavesProjectedEqualToBaseline(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()

	result, err := Evaluate(profile, fs, ghgtypes.ScenarioParams{}, nil)
	require.NoError(t, err)

	assert.InDelta(t, result.BaselineKgCO2e, result.ProjectedKgCO2e, 1e-9)
	assert.Equal(t, 0.0, result.Financials.TotalCapExUSD)
}

func TestEvaluate_RenewableSwitchReducesScope2AndNeverScope1OrScope3(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	params := ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{{Type: ghgtypes.InterventionRenewableSwitch, RenewablePct: 0.5}},
	}

	result, err := Evaluate(profile, fs, params, nil)
	require.NoError(t, err)

	assert.Less(t, result.ProjectedKgCO2e, result.BaselineKgCO2e)
	assert.Equal(t, 0.0, result.Financials.TotalCapExUSD, "renewable_switch has no CapEx component")
}

func TestEvaluate_HVACUpgradeDefaultsOldAndNewCOPWhenUnspecified(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	params := ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{{Type: ghgtypes.InterventionHVACUpgrade}},
	}

	result, err := Evaluate(profile, fs, params, nil)
	require.NoError(t, err)

	assert.Greater(t, result.Financials.TotalCapExUSD, 0.0)
	assert.Contains(t, result.Assumptions[0], "oldCOP assumed 2.5")
}

func TestEvaluate_WasteReductionScalesWithCategoryFiveBaseline(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	params := ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{{Type: ghgtypes.InterventionWasteReduction, DiversionPct: 0.5}},
	}

	result, err := Evaluate(profile, fs, params, nil)
	require.NoError(t, err)

	assert.Less(t, result.ProjectedKgCO2e, result.BaselineKgCO2e)
}

func TestEvaluate_TrajectoryHasElevenPointsSpanningTenYears(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()

	result, err := Evaluate(profile, fs, ghgtypes.ScenarioParams{}, nil)
	require.NoError(t, err)

	require.Len(t, result.Trajectory, trajectoryHorizonYears+1)
	assert.Equal(t, result.Trajectory[len(result.Trajectory)-1].Year-result.Trajectory[0].Year, trajectoryHorizonYears)
}

func TestEvaluate_StackingMultipleInterventionsSumsTheirReductions(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()

	single, err := Evaluate(profile, fs, ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{{Type: ghgtypes.InterventionRenewableSwitch, RenewablePct: 0.3}},
	}, nil)
	require.NoError(t, err)

	stacked, err := Evaluate(profile, fs, ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{
			{Type: ghgtypes.InterventionRenewableSwitch, RenewablePct: 0.3},
			{Type: ghgtypes.InterventionWasteReduction, DiversionPct: 0.4},
		},
	}, nil)
	require.NoError(t, err)

	assert.Less(t, stacked.ProjectedKgCO2e, single.ProjectedKgCO2e)
}

// TestApplyIntervention_SolarOnsiteMatchesHandComputedWorkedNumber reproduces
// a solar_onsite figure by hand for a 200kW system at 18% capacity factor in
// Ohio, which resolves to eGRID subregion RFCW (0.562 kgCO2e/kWh). None of
// these numbers are read back out of the implementation.
func TestApplyIntervention_SolarOnsiteMatchesHandComputedWorkedNumber(t *testing.T) {
	interv := ghgtypes.Intervention{Type: ghgtypes.InterventionSolarOnsite, SystemSizeKW: 200, CapacityFactorPct: 0.18}
	const gridEF = 0.562 // OH -> RFCW eGRID subregion

	annualKWh := 200.0 * 8760.0 * 0.18
	wantReductionTonnes := annualKWh * gridEF / 1000
	wantCapExUSD := 200.0 * 2500.0
	wantOpExDeltaUSD := annualKWh * -0.12

	reductionKg, capExUSD, opExDeltaUSD, _, err := applyIntervention(interv, ghgtypes.FacilityProfile{}, ghgtypes.EmissionResult{}, gridEF)
	require.NoError(t, err)

	assert.InDelta(t, wantReductionTonnes, reductionKg, 1e-6)
	assert.InDelta(t, 177.29232, reductionKg, 1e-3)
	assert.InDelta(t, wantCapExUSD, capExUSD, 1e-9)
	assert.InDelta(t, wantOpExDeltaUSD, opExDeltaUSD, 1e-6)
}

func TestEvaluate_DefaultsDiscountRateWhenUnspecified(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	params := ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{{Type: ghgtypes.InterventionHVACUpgrade}},
	}

	result, err := Evaluate(profile, fs, params, nil)
	require.NoError(t, err)

	// NPV must be computable (not NaN) with the default 8% rate applied.
	assert.False(t, result.Financials.NPVUSD != result.Financials.NPVUSD) // NaN check without importing math
}

func TestEvaluate_ProjectedNeverGoesBelowZero(t *testing.T) {
	fs := loadFS(t)
	profile := baselineProfile()
	params := ghgtypes.ScenarioParams{
		Interventions: []ghgtypes.Intervention{
			{Type: ghgtypes.InterventionRenewableSwitch, RenewablePct: 1.0},
			{Type: ghgtypes.InterventionHVACUpgrade},
			{Type: ghgtypes.InterventionWasteReduction, DiversionPct: 1.0},
		},
	}

	result, err := Evaluate(profile, fs, params, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.ProjectedKgCO2e, 0.0)
}
