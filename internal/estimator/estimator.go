// Package estimator fills gaps in a facility's reported energy using the
// CBECS benchmark tables and ASHRAE heating/cooling degree-day data, for
// callers operating in InputMode basic or advanced who did not report every
// fuel directly (spec §4.2, "Estimator / Gap-Filling Fallback").
//
// The estimator never overwrites a reported EnergyLineItem; it only adds
// entries for fuels absent from the facility's profile, always tagged
// DataQualityEstimated so downstream uncertainty bands and the data-quality
// score treat them accordingly.
package estimator

import (
	"math"

	"go.uber.org/zap"

	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// referenceClimateZone is the ASHRAE zone CBECS EUI medians are fit against;
// climateAdjustment scales a target zone's degree days relative to it.
const referenceClimateZone = "4A"

// officeDefaultElectricityKWhPerSqFt and officeDefaultThermsPerSqFt are the
// direct per-fuel defaults spec §4.2 step 1 falls back to when the building
// type has no benchmark row at all (never reached by the bundled benchmark
// table today, since every BuildingType has an entry, but kept for a caller
// that loads a trimmed FactorSet).
const (
	officeDefaultElectricityKWhPerSqFt = 14.6
	officeDefaultThermsPerSqFt         = 0.18
)

const (
	climateAdjustmentMin = 0.5
	climateAdjustmentMax = 2.5
)

// EstimateEnergy returns a map of estimated EnergyLineItems for every fuel
// the benchmark's fuel split names that is absent from profile.Energy,
// following spec §4.2's five-step algorithm: resolve the benchmark (or the
// office defaults), scale its median EUI by climateAdjustment, convert to
// total MMBtu, split by the benchmark's fuel-split fractions, and convert
// each fuel's MMBtu share back to its native reporting unit, rounded to the
// nearest whole unit.
func EstimateEnergy(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, logger *zap.Logger) map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem {
	if logger == nil {
		logger = zap.NewNop()
	}
	if profile.SquareFeet <= 0 {
		logger.Warn("estimator: facility has no square footage, skipping estimate")
		return nil
	}

	adjustment := climateAdjustment(profile, fs)

	benchmark, ok := fs.Benchmarks[profile.BuildingType]
	if !ok {
		logger.Warn("estimator: no benchmark for building type, using office defaults",
			zap.String("buildingType", string(profile.BuildingType)))
		return officeDefaultEstimate(profile, adjustment)
	}

	euiAdjusted := benchmark.EUIkBtuPerSqFt.Median * adjustment
	totalMMBtu := euiAdjusted * profile.SquareFeet * units.MMBtuPerKBtu

	out := make(map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem)
	for fuel, share := range benchmark.FuelSplit {
		if _, reported := profile.Energy[fuel]; reported {
			continue
		}

		fuelMMBtu := totalMMBtu * share

		item, ok := toLineItem(fuel, fuelMMBtu, fs)
		if !ok {
			logger.Warn("estimator: could not convert estimated MMBtu to a native unit",
				zap.String("fuel", string(fuel)))
			continue
		}
		out[fuel] = item
	}

	return out
}

// climateAdjustment is (HDD65+CDD65)_target / (HDD65+CDD65)_4A, clamped to
// [0.5, 2.5], falling back to 1.0 when the facility's climate zone cannot be
// determined from either an explicit zone or its state, per spec §4.2 step 3.
func climateAdjustment(profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) float64 {
	reference, ok := fs.ClimateZones[referenceClimateZone]
	if !ok || reference.HDD65+reference.CDD65 <= 0 {
		return 1.0
	}

	var zone ghgtypes.ClimateZoneInfo
	if profile.ClimateZone != "" {
		zone, ok = fs.ClimateZones[profile.ClimateZone]
	}
	if !ok && profile.State != "" {
		zone, ok = registry.ClimateZoneForState(fs, profile.State)
	}
	if !ok {
		return 1.0
	}

	ratio := (zone.HDD65 + zone.CDD65) / (reference.HDD65 + reference.CDD65)
	return clamp(ratio, climateAdjustmentMin, climateAdjustmentMax)
}

// officeDefaultEstimate applies the flat office per-square-foot defaults
// directly, bypassing the benchmark/fuel-split steps entirely (spec §4.2
// step 1's fallback), still scaled by the same climate adjustment.
func officeDefaultEstimate(profile ghgtypes.FacilityProfile, adjustment float64) map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem {
	out := make(map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem)

	if _, reported := profile.Energy[ghgtypes.FuelElectricity]; !reported {
		out[ghgtypes.FuelElectricity] = ghgtypes.EnergyLineItem{
			Quantity:    math.Round(profile.SquareFeet * officeDefaultElectricityKWhPerSqFt * adjustment),
			Unit:        "kWh",
			Period:      ghgtypes.PeriodAnnual,
			DataQuality: ghgtypes.DataQualityEstimated,
		}
	}
	if _, reported := profile.Energy[ghgtypes.FuelNaturalGas]; !reported {
		out[ghgtypes.FuelNaturalGas] = ghgtypes.EnergyLineItem{
			Quantity:    math.Round(profile.SquareFeet * officeDefaultThermsPerSqFt * adjustment),
			Unit:        "therms",
			Period:      ghgtypes.PeriodAnnual,
			DataQuality: ghgtypes.DataQualityEstimated,
		}
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// toLineItem converts an estimated MMBtu quantity back into the fuel's
// native reporting unit, rounded to the nearest whole unit per spec §4.2
// step 5, so the resulting EnergyLineItem looks like any other reported
// entry to the scope calculators.
func toLineItem(fuel ghgtypes.FuelKey, mmbtu float64, fs *ghgtypes.FactorSet) (ghgtypes.EnergyLineItem, bool) {
	if fuel == ghgtypes.FuelElectricity {
		return ghgtypes.EnergyLineItem{
			Quantity:    math.Round(mmbtu * units.KWhPerMMBtu),
			Unit:        "kWh",
			Period:      ghgtypes.PeriodAnnual,
			DataQuality: ghgtypes.DataQualityEstimated,
		}, true
	}

	sf, ok := fs.Stationary[fuel]
	if !ok || sf.HeatContentMMBtuPerNative <= 0 {
		return ghgtypes.EnergyLineItem{}, false
	}

	return ghgtypes.EnergyLineItem{
		Quantity:    math.Round(mmbtu / sf.HeatContentMMBtuPerNative),
		Unit:        sf.NativeUnit,
		Period:      ghgtypes.PeriodAnnual,
		DataQuality: ghgtypes.DataQualityEstimated,
	}, true
}
