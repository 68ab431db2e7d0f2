// Package emissions is the facility emissions computation core: a pure,
// deterministic GHG Protocol Scope 1/2/3 accounting engine, a seeded Monte
// Carlo uncertainty simulator, and a decarbonization scenario and financial
// evaluator. The package performs no I/O of its own — no database, no
// network call, no file write — and every public function here is safe to
// call concurrently, since none of them touch shared mutable state; a fresh
// FactorSet loaded once via LoadFactorSet is immutable and safe to share
// across calls and goroutines.
//
// There are exactly three entry points: ComputeAll, RunMonteCarlo, and
// EvaluateScenario. Everything else in this module lives under internal/
// and pkg/ghgtypes and is reachable only through these three functions or
// through the ghgtypes/registry types a caller needs to name directly.
package emissions

import (
	"go.uber.org/zap"

	"github.com/MeeraPatel2703/emissions/internal/ghgengine"
	"github.com/MeeraPatel2703/emissions/internal/montecarlo"
	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/internal/scenario"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Re-exported types so a caller only ever needs to import this one package
// for the data model, mirroring the teacher's practice of keeping its
// request/response shapes at the top of the package it's computed by.
type (
	FacilityProfile  = ghgtypes.FacilityProfile
	FactorSet        = ghgtypes.FactorSet
	EmissionResult   = ghgtypes.EmissionResult
	SimulationResult = ghgtypes.SimulationResult
	ScenarioResult   = ghgtypes.ScenarioResult
	MonteCarloConfig = ghgtypes.MonteCarloConfig
	ScenarioParams   = ghgtypes.ScenarioParams
	Intervention     = ghgtypes.Intervention
	ComputeOptions   = ghgtypes.ComputeOptions

	FuelKey          = ghgtypes.FuelKey
	EnergyLineItem   = ghgtypes.EnergyLineItem
	RefrigerantEntry = ghgtypes.RefrigerantEntry
	FleetGroup       = ghgtypes.FleetGroup
	FleetFuelType    = ghgtypes.FleetFuelType
	WasteEntry       = ghgtypes.WasteEntry
	WaterEntry       = ghgtypes.WaterEntry
	BuildingType     = ghgtypes.BuildingType
	InputMode        = ghgtypes.InputMode
	DataQuality      = ghgtypes.DataQuality
	Period           = ghgtypes.Period
	InterventionType = ghgtypes.InterventionType
)

// Re-exported enum constants, alongside the types above, so a caller never
// needs to import pkg/ghgtypes directly to build a FacilityProfile or a
// ScenarioParams.
const (
	BuildingOffice        = ghgtypes.BuildingOffice
	BuildingWarehouse     = ghgtypes.BuildingWarehouse
	BuildingManufacturing = ghgtypes.BuildingManufacturing
	BuildingDataCenter    = ghgtypes.BuildingDataCenter
	BuildingHospital      = ghgtypes.BuildingHospital
	BuildingRetail        = ghgtypes.BuildingRetail
	BuildingEducation     = ghgtypes.BuildingEducation
	BuildingFoodService   = ghgtypes.BuildingFoodService
	BuildingLodging       = ghgtypes.BuildingLodging

	InputModeBasic  = ghgtypes.InputModeBasic
	InputModeExpert = ghgtypes.InputModeExpert

	DataQualityMeasured  = ghgtypes.DataQualityMeasured
	DataQualityModeled   = ghgtypes.DataQualityModeled
	DataQualityEstimated = ghgtypes.DataQualityEstimated

	FuelElectricity = ghgtypes.FuelElectricity
	FuelNaturalGas  = ghgtypes.FuelNaturalGas

	PeriodAnnual  = ghgtypes.PeriodAnnual
	PeriodMonthly = ghgtypes.PeriodMonthly

	FleetFuelGasoline = ghgtypes.FleetFuelGasoline
	FleetFuelDiesel   = ghgtypes.FleetFuelDiesel
	FleetFuelHybrid   = ghgtypes.FleetFuelHybrid
	FleetFuelEV       = ghgtypes.FleetFuelEV

	InterventionRenewableSwitch      = ghgtypes.InterventionRenewableSwitch
	InterventionFleetElectrification = ghgtypes.InterventionFleetElectrification
	InterventionHVACUpgrade          = ghgtypes.InterventionHVACUpgrade
	InterventionSolarOnsite          = ghgtypes.InterventionSolarOnsite
	InterventionBuildingEnvelope     = ghgtypes.InterventionBuildingEnvelope
	InterventionWasteReduction       = ghgtypes.InterventionWasteReduction
)

// LoadFactorSet assembles the immutable, versioned bundle of emission
// factors every computation reads from. Call it once per process (or once
// per FactorSetVersion a caller wants to pin) and reuse the result; it never
// needs to be reloaded between calls. logger is nil-safe.
func LoadFactorSet(logger *zap.Logger) (*FactorSet, error) {
	return registry.Load(logger)
}

// ComputeAll runs the deterministic Scope 1/2/3 pipeline over profile using
// fs, returning the full breakdown, intensity, benchmark position,
// analytical uncertainty band, data-quality score, and methodology record.
// opts's zero value runs both Scope 3 and the estimator, per spec §6.1; see
// ghgtypes.ComputeOptions. logger is nil-safe and strictly observational —
// it never changes the returned result.
func ComputeAll(profile FacilityProfile, fs *FactorSet, opts ComputeOptions, logger *zap.Logger) (EmissionResult, error) {
	if err := ghgengine.Validate(profile); err != nil {
		return EmissionResult{}, err
	}
	return ghgengine.Compute(profile, fs, opts, logger), nil
}

// RunMonteCarlo runs the seeded uncertainty simulator over profile and fs,
// returning the distribution summaries for the total and each scope. cfg's
// zero-valued fields fall back to the documented defaults (1000 runs, seed
// 42, 50 histogram bins); a Runs value below montecarlo.MinRuns is rejected
// with apperrors.ErrMonteCarloDegenerate.
func RunMonteCarlo(profile FacilityProfile, fs *FactorSet, cfg MonteCarloConfig, logger *zap.Logger) (SimulationResult, error) {
	return montecarlo.Run(profile, fs, cfg, logger)
}

// EvaluateScenario applies a stack of decarbonization interventions to
// profile's baseline emissions and returns the resulting multi-year
// trajectory and financial summary (NPV, IRR, payback, cost per tonne
// avoided).
func EvaluateScenario(profile FacilityProfile, fs *FactorSet, params ScenarioParams, logger *zap.Logger) (ScenarioResult, error) {
	return scenario.Evaluate(profile, fs, params, logger)
}
