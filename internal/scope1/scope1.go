// Package scope1 computes direct emissions from stationary combustion,
// mobile combustion (fleet vehicles), and fugitive refrigerant leaks (spec
// §4.3, GHG Protocol Scope 1). Every calculator here is a pure function: no
// calculator returns an error for a data-shape problem, per SPEC_FULL.md
// §A.2 — an unresolvable input is skipped and surfaced as a data-gap note
// instead, mirroring the teacher's "build what you can, flag what you
// can't" calculation-step idiom.
package scope1

import (
	"fmt"

	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Result bundles Scope 1's breakdown rows, total, and any data gaps
// encountered while computing them.
type Result struct {
	Rows     []ghgtypes.BreakdownRow
	TotalKgCO2e float64
	DataGaps []string
}

// Calculate runs stationary combustion, mobile combustion, and fugitive
// refrigerants over the resolved energy map (electricity excluded — it is
// Scope 2) and combines them into one Scope 1 result.
func Calculate(energy map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem, fleet []ghgtypes.FleetGroup, refrigerants []ghgtypes.RefrigerantEntry, fs *ghgtypes.FactorSet) Result {
	var result Result

	stationaryRows, stationaryGaps := calculateStationary(energy, fs)
	mobileRows, mobileGaps := calculateMobile(fleet, fs)
	refrigerantRows, refrigerantGaps := calculateRefrigerants(refrigerants, fs)

	result.Rows = append(result.Rows, stationaryRows...)
	result.Rows = append(result.Rows, mobileRows...)
	result.Rows = append(result.Rows, refrigerantRows...)
	result.DataGaps = append(result.DataGaps, stationaryGaps...)
	result.DataGaps = append(result.DataGaps, mobileGaps...)
	result.DataGaps = append(result.DataGaps, refrigerantGaps...)

	for _, row := range result.Rows {
		result.TotalKgCO2e += row.KgCO2e
	}

	return result
}

func calculateStationary(energy map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for fuel, item := range energy {
		if fuel == ghgtypes.FuelElectricity {
			continue
		}

		sf, ok := fs.Stationary[fuel]
		if !ok {
			gaps = append(gaps, fmt.Sprintf("no stationary combustion factor for fuel %q; skipped", fuel))
			continue
		}

		mmbtu := item.AnnualQuantity()
		if sf.FactorUnit == "MMBtu" {
			mmbtu *= sf.HeatContentMMBtuPerNative
		}

		co2 := sf.CO2KgPerUnit * mmbtu
		ch4CO2e := sf.CH4GPerUnit * mmbtu / units.GramsPerKg * units.GWPMethaneFossil
		n2oCO2e := sf.N2OGPerUnit * mmbtu / units.GramsPerKg * units.GWPNitrousOxide

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       1,
			Category:    "stationary_combustion",
			Source:      string(fuel),
			KgCO2e:      (co2 + ch4CO2e + n2oCO2e) / units.KgPerTonne,
			DataQuality: item.DataQuality,
			Methodology: fmt.Sprintf("EPA Table 1: %.4g kg CO2/MMBtu + CH4/N2O GWP, %.4g MMBtu consumed", sf.CO2KgPerUnit, mmbtu),
		})
	}

	return rows, gaps
}

func calculateMobile(fleet []ghgtypes.FleetGroup, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for i, group := range fleet {
		if group.FuelType == ghgtypes.FleetFuelEV {
			// Electric fleet vehicles have no tailpipe emissions; their
			// grid draw is out of scope for this version (spec non-goal:
			// fleet charging is not separately metered from facility load).
			continue
		}

		lookupFuel := string(group.FuelType)
		co2Scalar := 1.0
		if group.FuelType == ghgtypes.FleetFuelHybrid {
			lookupFuel = string(ghgtypes.FleetFuelGasoline)
			co2Scalar = units.HybridCO2Scalar
		}

		mf, ok := fs.Mobile[ghgtypes.MobileFactorKey{VehicleType: group.VehicleType, FuelType: lookupFuel}]
		if !ok {
			gaps = append(gaps, fmt.Sprintf("no mobile combustion factor for vehicle %q fuel %q; skipped", group.VehicleType, group.FuelType))
			continue
		}

		mpg := mf.DefaultMPG
		if group.FuelEfficiency != nil && *group.FuelEfficiency > 0 {
			mpg = *group.FuelEfficiency
		}
		if mpg <= 0 {
			mpg = units.DefaultMPG
		}

		miles := group.Count * group.AnnualMilesPerVehicle
		gallons := miles / mpg

		co2 := mf.CO2KgPerGallon * gallons * co2Scalar
		ch4CO2e := mf.CH4GPerMile * miles / units.GramsPerKg * units.GWPMethaneFossil
		n2oCO2e := mf.N2OGPerMile * miles / units.GramsPerKg * units.GWPNitrousOxide

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       1,
			Category:    "mobile_combustion",
			Source:      fmt.Sprintf("fleet[%d]:%s", i, group.VehicleType),
			KgCO2e:      (co2 + ch4CO2e + n2oCO2e) / units.KgPerTonne,
			DataQuality: group.DataQuality,
			Methodology: fmt.Sprintf("EPA mobile factors: %.4g mi at %.1f mpg", miles, mpg),
		})
	}

	return rows, gaps
}

func calculateRefrigerants(entries []ghgtypes.RefrigerantEntry, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for i, entry := range entries {
		gwp, ok := registry.GWPFor(fs, entry.Type)
		if !ok {
			gaps = append(gaps, fmt.Sprintf("unknown refrigerant %q; skipped (apperrors.ErrUnknownRefrigerant)", entry.Type))
			continue
		}

		leakRate := entry.LeakRate
		if leakRate <= 0 {
			if r, ok := fs.DefaultLeakRateByEquip[entry.EquipmentType]; ok {
				leakRate = r
			} else {
				leakRate = units.DefaultRefrigerantLeakRate
			}
		}

		kgCO2e := entry.ChargeKg * leakRate * gwp / units.KgPerTonne

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       1,
			Category:    "fugitive_refrigerants",
			Source:      fmt.Sprintf("refrigerant[%d]:%s", i, entry.Type),
			KgCO2e:      kgCO2e,
			DataQuality: entry.DataQuality,
			Methodology: fmt.Sprintf("AR6 GWP100=%.0f, leak rate=%.2f%%, charge=%.2fkg", gwp, leakRate*100, entry.ChargeKg),
		})
	}

	return rows, gaps
}
