// Package scenario evaluates a stack of decarbonization interventions
// against a facility's baseline emissions and financial assumptions (spec
// §4.12). Each intervention type has a closed-form delta model expressed in
// terms of the baseline EmissionResult's own breakdown, so evaluating a
// scenario never re-runs the full Scope 1/2/3 pipeline under hypothetical
// inputs — it reasons about the deltas directly, which keeps the six models
// easy to audit independently.
package scenario

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MeeraPatel2703/emissions/internal/apperrors"
	"github.com/MeeraPatel2703/emissions/internal/finance"
	"github.com/MeeraPatel2703/emissions/internal/ghgengine"
	"github.com/MeeraPatel2703/emissions/internal/scope2"
	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Per-intervention constants from spec §4.12's closed-form table.
const (
	defaultOldCOP = 2.5
	defaultNewCOP = 4.0

	hvacLoadShare        = 0.50
	fleetNetOfChargeFrac = 0.35 // EV miles still carry 35% of the ICE emissions, net of grid charging
	evCapExUSD           = 12000.0
	evOpExDeltaUSD       = -1200.0
	hvacCapExPerSqFt     = 8.0
	hvacOpExDeltaPct     = -0.12
	solarCapExPerKW      = 2500.0
	solarOpExDeltaPerKWh = -0.12
	renewablePremiumPerKWh = 0.015
	envelopeHeatingWeight = 0.30
	envelopeCoolingWeight = 0.20
	envelopeCapExWithS1   = 50000.0
	envelopeCapExNoS1     = 25000.0
	envelopeOpExDeltaPct  = -0.08
	wasteDiversionFactor  = 0.80
	wasteCapExUSD         = 5000.0
	wasteOpExDeltaUSD     = -2000.0

	hoursPerYear = 8760.0

	// trajectoryScope2Fraction is the fixed share of baseline emissions the
	// 10-year trajectory treats as grid-decline-sensitive, independent of
	// the facility's actual Scope 2 share (spec §4.12).
	trajectoryScope2Fraction = 0.45

	fallbackGridEFYear = 2035
	fallbackGridEF     = 0.224

	trajectoryHorizonYears = 10
	financeHorizonYears    = 10
	defaultDiscountRatePct = 0.08
)

// Evaluate runs every intervention in params against profile's baseline
// emissions and builds the resulting 10-year trajectory and financial
// summary.
func Evaluate(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, params ghgtypes.ScenarioParams, logger *zap.Logger) (ghgtypes.ScenarioResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := ghgengine.Validate(profile); err != nil {
		return ghgtypes.ScenarioResult{}, err
	}

	discountRate := params.DiscountRatePct
	if discountRate <= 0 {
		discountRate = defaultDiscountRatePct
	}

	baseline := ghgengine.Compute(profile, fs, ghgtypes.ComputeOptions{}, logger)
	gridEF := resolveBaselineGridEF(profile, fs)

	var totalReduction, totalCapEx, totalOpExDelta float64
	var assumptions []string

	for _, interv := range params.Interventions {
		reduction, capEx, opExDelta, note, err := applyIntervention(interv, profile, baseline, gridEF)
		if err != nil {
			return ghgtypes.ScenarioResult{}, err
		}
		totalReduction += reduction
		totalCapEx += capEx
		totalOpExDelta += opExDelta
		assumptions = append(assumptions, note)
	}

	projectedKgCO2e := clampNonNegative(baseline.TotalKgCO2eLocationBased - totalReduction)
	annualSavingsUSD := -totalOpExDelta

	trajectory := buildTrajectory(baseline.TotalKgCO2eLocationBased, totalReduction, annualSavingsUSD, totalCapEx, fs)
	lifetimeAvoidedKg := trajectory[len(trajectory)-1].CumulativeReductionKg

	flows := finance.BuildCashFlows(totalCapEx, annualSavingsUSD, financeHorizonYears)
	npv := finance.NPV(discountRate, flows)
	irr := finance.IRR(flows)
	payback := finance.PaybackYears(totalCapEx, annualSavingsUSD)

	var costPerTonne *float64
	if lifetimeAvoidedKg > 0 {
		v := totalCapEx / lifetimeAvoidedKg
		costPerTonne = &v
	}

	npvFloat, _ := npv.Float64()

	return ghgtypes.ScenarioResult{
		ID: ghgtypes.NewResultID(),

		BaselineKgCO2e:  baseline.TotalKgCO2eLocationBased,
		ProjectedKgCO2e: projectedKgCO2e,

		Trajectory: trajectory,

		Financials: ghgtypes.FinancialSummary{
			TotalCapExUSD:          totalCapEx,
			AnnualSavingsUSD:       annualSavingsUSD,
			NPVUSD:                 npvFloat,
			IRRPct:                 irr,
			PaybackYears:           payback,
			LifetimeCO2AvoidedKg:   lifetimeAvoidedKg,
			CostPerTonneAvoidedUSD: costPerTonne,
		},

		Assumptions: assumptions,
	}, nil
}

// applyIntervention returns the intervention's annual kg CO2e reduction (a
// positive magnitude), its CapEx, its OpEx delta (negative = savings), and a
// human-readable assumption note, per spec §4.12's closed-form table.
func applyIntervention(interv ghgtypes.Intervention, profile ghgtypes.FacilityProfile, baseline ghgtypes.EmissionResult, gridEF float64) (reductionKg, capExUSD, opExDeltaUSD float64, note string, err error) {
	switch interv.Type {
	case ghgtypes.InterventionRenewableSwitch:
		reductionKg = baseline.Scope2KgCO2eLocationBased * interv.RenewablePct
		electricityKWh := 0.0
		if elec, ok := profile.Energy[ghgtypes.FuelElectricity]; ok {
			electricityKWh = elec.AnnualQuantity()
		}
		opExDeltaUSD = electricityKWh * interv.RenewablePct * renewablePremiumPerKWh
		return reductionKg, 0, opExDeltaUSD,
			fmt.Sprintf("renewable_switch: %.0f%% of electricity switched to a zero-carbon source at a $%.3f/kWh premium", interv.RenewablePct*100, renewablePremiumPerKWh), nil

	case ghgtypes.InterventionFleetElectrification:
		mobileTotal := sumCategory(baseline.Breakdown, "mobile_combustion")
		reductionKg = mobileTotal * interv.ElectrificationPct * (1 - fleetNetOfChargeFrac)
		capExUSD = interv.EVCount * evCapExUSD
		opExDeltaUSD = interv.EVCount * evOpExDeltaUSD
		return reductionKg, capExUSD, opExDeltaUSD,
			fmt.Sprintf("fleet_electrification: %.0f%% of fleet miles shifted to EV across %.0f vehicles, net of grid charging", interv.ElectrificationPct*100, interv.EVCount), nil

	case ghgtypes.InterventionHVACUpgrade:
		oldCOP := interv.OldCOP
		if oldCOP <= 0 {
			oldCOP = defaultOldCOP
		}
		newCOP := interv.NewCOP
		if newCOP <= 0 {
			newCOP = defaultNewCOP
		}
		affected := baseline.Scope1KgCO2e + baseline.Scope2KgCO2eLocationBased
		reductionKg = affected * hvacLoadShare * (1 - oldCOP/newCOP)
		capExUSD = profile.SquareFeet * hvacCapExPerSqFt
		opExDeltaUSD = capExUSD * hvacOpExDeltaPct
		return reductionKg, capExUSD, opExDeltaUSD,
			fmt.Sprintf("hvac_upgrade: COP %.1f -> %.1f (oldCOP assumed %.1f when unspecified), %.0f%% of combined Scope 1/2 load", oldCOP, newCOP, defaultOldCOP, hvacLoadShare*100), nil

	case ghgtypes.InterventionSolarOnsite:
		annualKWh := interv.SystemSizeKW * hoursPerYear * interv.CapacityFactorPct
		reductionKg = annualKWh * gridEF / units.KgPerTonne
		capExUSD = interv.SystemSizeKW * solarCapExPerKW
		opExDeltaUSD = annualKWh * solarOpExDeltaPerKWh
		return reductionKg, capExUSD, opExDeltaUSD,
			fmt.Sprintf("solar_onsite: %.0fkW at %.0f%% capacity factor (%.0f kWh/yr)", interv.SystemSizeKW, interv.CapacityFactorPct*100, annualKWh), nil

	case ghgtypes.InterventionBuildingEnvelope:
		affected := baseline.Scope1KgCO2e + baseline.Scope2KgCO2eLocationBased
		reductionKg = affected * (envelopeHeatingWeight*interv.HeatingLoadPct + envelopeCoolingWeight*interv.CoolingLoadPct)
		capExUSD = envelopeCapExWithS1
		if baseline.Scope1KgCO2e == 0 {
			capExUSD = envelopeCapExNoS1
		}
		opExDeltaUSD = capExUSD * envelopeOpExDeltaPct
		return reductionKg, capExUSD, opExDeltaUSD,
			fmt.Sprintf("building_envelope: %.0f%% of heating load and %.0f%% of cooling load addressed", interv.HeatingLoadPct*100, interv.CoolingLoadPct*100), nil

	case ghgtypes.InterventionWasteReduction:
		wasteTotal := baseline.Scope3ByCategory["cat5_waste_generated"]
		reductionKg = wasteTotal * interv.DiversionPct * wasteDiversionFactor
		capExUSD = wasteCapExUSD
		opExDeltaUSD = wasteOpExDeltaUSD
		return reductionKg, capExUSD, opExDeltaUSD,
			fmt.Sprintf("waste_reduction: %.0f%% of waste diverted from current disposal", interv.DiversionPct*100), nil

	default:
		return 0, 0, 0, "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedIntervention, interv.Type)
	}
}

func sumCategory(rows []ghgtypes.BreakdownRow, category string) float64 {
	var total float64
	for _, row := range rows {
		if row.Category == category {
			total += row.KgCO2e
		}
	}
	return total
}

// resolveBaselineGridEF resolves the grid factor the solar_onsite
// intervention avoids, via the same subregion -> state -> country -> US
// national average hierarchy scope2.Calculate uses for the baseline's own
// Scope 2 location-based total, so a non-US facility's solar reduction
// figure is never computed against the wrong grid.
func resolveBaselineGridEF(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) float64 {
	ef, _, _ := scope2.ResolveGridFactor(scope2.Location{
		Country:        profile.Country,
		State:          profile.State,
		EGRIDSubregion: profile.EGRIDSubregion,
	}, fs)
	return ef
}

// buildTrajectory projects emissions across the 11 points currentYear through
// currentYear+10, per spec §4.12's exact algorithm: a fixed 45% Scope-2
// fraction of baseline declines with the national grid projection while the
// remaining 55% (and every intervention's reduction) is held flat.
func buildTrajectory(baselineKgCO2e, totalReductionKg, annualSavingsUSD, totalCapExUSD float64, fs *ghgtypes.FactorSet) []ghgtypes.TrajectoryYear {
	currentYear := time.Now().UTC().Year()

	baselineYearEF := gridEFForYear(fs, currentYear)

	trajectory := make([]ghgtypes.TrajectoryYear, trajectoryHorizonYears+1)
	var cumulativeReduction float64

	for i := 0; i <= trajectoryHorizonYears; i++ {
		year := currentYear + i
		yearEF := gridEFForYear(fs, year)

		gridDeclineRatio := 1.0
		if baselineYearEF > 0 {
			gridDeclineRatio = yearEF / baselineYearEF
		}

		gridAdjustedBaseline := baselineKgCO2e * (1 - trajectoryScope2Fraction + trajectoryScope2Fraction*gridDeclineRatio)
		scenarioEmissions := clampNonNegative(gridAdjustedBaseline - totalReductionKg)
		cumulativeReduction += gridAdjustedBaseline - scenarioEmissions

		netCashFlow := annualSavingsUSD
		if i == 0 {
			netCashFlow = -totalCapExUSD
		}

		trajectory[i] = ghgtypes.TrajectoryYear{
			Year:                   year,
			GridEFKgCO2ePerKWh:     yearEF,
			GridAdjustedBaselineKg: gridAdjustedBaseline,
			ScenarioEmissionsKg:    scenarioEmissions,
			CumulativeReductionKg:  cumulativeReduction,
			NetCashFlowUSD:         netCashFlow,
		}
	}

	return trajectory
}

// gridEFForYear looks up the EIA grid-projection table for year, falling
// back to the 2035 projection and finally a fixed 0.224 kg/kWh (spec §4.12).
func gridEFForYear(fs *ghgtypes.FactorSet, year int) float64 {
	if ef, ok := fs.NationalGridEFByYear[year]; ok {
		return ef
	}
	if ef, ok := fs.NationalGridEFByYear[fallbackGridEFYear]; ok {
		return ef
	}
	return fallbackGridEF
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
