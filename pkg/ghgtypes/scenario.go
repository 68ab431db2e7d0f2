package ghgtypes

import "github.com/google/uuid"

// InterventionType enumerates the six decarbonization levers spec §4.12
// gives closed-form delta models for.
type InterventionType string

const (
	InterventionRenewableSwitch      InterventionType = "renewable_switch"
	InterventionFleetElectrification InterventionType = "fleet_electrification"
	InterventionHVACUpgrade          InterventionType = "hvac_upgrade"
	InterventionSolarOnsite          InterventionType = "solar_onsite"
	InterventionBuildingEnvelope     InterventionType = "building_envelope"
	InterventionWasteReduction       InterventionType = "waste_reduction"
)

// Intervention is a single lever applied to a facility's baseline result
// (spec §4.12). Only the fields relevant to Type need to be set; the rest
// are ignored.
type Intervention struct {
	Type InterventionType `json:"type"`

	// renewable_switch: fraction of purchased electricity switched to a
	// zero-carbon source.
	RenewablePct float64 `json:"renewablePct,omitempty"`

	// fleet_electrification: fraction of fleet miles shifted to EV, and the
	// count of vehicles converted (drives CapEx/OpEx).
	ElectrificationPct float64 `json:"electrificationPct,omitempty"`
	EVCount            float64 `json:"evCount,omitempty"`

	// hvac_upgrade: existing and replacement coefficient of performance.
	// OldCOP defaults to 2.5 and NewCOP to 4.0 when left zero (spec §9 open
	// question).
	OldCOP float64 `json:"oldCOP,omitempty"`
	NewCOP float64 `json:"newCOP,omitempty"`

	// solar_onsite: nameplate system size and annual capacity factor.
	SystemSizeKW      float64 `json:"capacityKw,omitempty"`
	CapacityFactorPct float64 `json:"annualCapacityFactor,omitempty"`

	// building_envelope: fraction of heating and cooling load addressed.
	HeatingLoadPct float64 `json:"heatingLoadPct,omitempty"`
	CoolingLoadPct float64 `json:"coolingLoadPct,omitempty"`

	// waste_reduction: fraction of waste diverted from current disposal.
	DiversionPct float64 `json:"diversionPct,omitempty"`
}

// ScenarioParams parameterizes EvaluateScenario (spec §4.12): the
// interventions to stack and the discount rate for the financial summary.
type ScenarioParams struct {
	Interventions []Intervention `json:"interventions"`

	// DiscountRatePct defaults to 0.08 when left zero.
	DiscountRatePct float64 `json:"discountRatePct,omitempty"`
}

// TrajectoryYear is one year's row in the scenario's 11-point
// (currentYear..currentYear+10) grid-decarbonization trajectory (spec
// §4.12).
type TrajectoryYear struct {
	Year                    int     `json:"year"`
	GridEFKgCO2ePerKWh      float64 `json:"gridEFKgCO2ePerKWh"`
	GridAdjustedBaselineKg  float64 `json:"gridAdjustedBaselineKg"`
	ScenarioEmissionsKg     float64 `json:"scenarioEmissionsKg"`
	CumulativeReductionKg   float64 `json:"cumulativeReductionKg"`
	NetCashFlowUSD          float64 `json:"netCashFlowUSD"`
}

// FinancialSummary carries the NPV/IRR/payback outputs from internal/finance
// (spec §4.11, §4.12).
type FinancialSummary struct {
	TotalCapExUSD          float64  `json:"totalCapExUSD"`
	AnnualSavingsUSD       float64  `json:"annualSavingsUSD"`
	NPVUSD                 float64  `json:"npvUSD"`
	IRRPct                 *float64 `json:"irrPct,omitempty"` // nil if Newton-Raphson did not converge
	PaybackYears           float64  `json:"paybackYears"`     // +Inf if annual savings never recover CapEx
	LifetimeCO2AvoidedKg   float64  `json:"lifetimeCO2AvoidedKg"`
	CostPerTonneAvoidedUSD *float64 `json:"costPerTonneAvoidedUSD,omitempty"`
}

// ScenarioResult is the output of EvaluateScenario (spec §4.12).
type ScenarioResult struct {
	ID uuid.UUID `json:"id"`

	BaselineKgCO2e  float64 `json:"baselineKgCO2e"`
	ProjectedKgCO2e float64 `json:"projectedKgCO2e"` // max(0, baseline - totalReduction)

	Trajectory []TrajectoryYear `json:"trajectory"`

	Financials FinancialSummary `json:"financials"`

	Assumptions []string `json:"assumptions"`
}
