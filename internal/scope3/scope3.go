// Package scope3 computes value-chain emissions across the GHG Protocol's
// fifteen Scope 3 categories (spec §4.6). Only the categories the facility
// profile provides data for are computed; categories with no supporting
// input are simply absent from the result rather than zero-filled, so a
// caller can tell "reported zero" apart from "not reported."
package scope3

import (
	"fmt"

	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Result bundles every computed Scope 3 category's rows and per-category
// totals.
type Result struct {
	Rows        []ghgtypes.BreakdownRow
	ByCategory  map[string]float64
	TotalKgCO2e float64
	DataGaps    []string
}

func newResult() Result {
	return Result{ByCategory: map[string]float64{}}
}

func (r *Result) add(category string, rows []ghgtypes.BreakdownRow) {
	r.Rows = append(r.Rows, rows...)
	for _, row := range rows {
		r.ByCategory[category] += row.KgCO2e
		r.TotalKgCO2e += row.KgCO2e
	}
}

// Calculate runs every Scope 3 category the profile's inputs support.
// electricityGridEF and electricityLossPct are the same resolved values
// internal/scope2 used for the facility's electricity line item, passed
// through so category 3's transmission-and-distribution-loss component
// (spec §4.6) is computed against the identical grid resolution rather than
// re-deriving it.
func Calculate(inputs ghgtypes.Scope3Inputs, waste []ghgtypes.WasteEntry, energy map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem, occupancy *ghgtypes.Occupancy, fs *ghgtypes.FactorSet, electricityGridEF, electricityLossPct float64) Result {
	result := newResult()

	for category, entries := range inputs.Spend {
		rows, gaps := calculateSpend(category, entries, fs)
		result.add(category, rows)
		result.DataGaps = append(result.DataGaps, gaps...)
	}

	if inputs.AutoCategory3 {
		rows := calculateUpstreamFuelAndEnergy(energy, fs, electricityGridEF, electricityLossPct)
		result.add("cat3_fuel_and_energy", rows)
	}

	if len(inputs.Transport) > 0 {
		upstream, downstream, gaps := calculateTransport(inputs.Transport, fs)
		result.add("cat4_upstream_transportation", upstream)
		result.add("cat9_downstream_transportation", downstream)
		result.DataGaps = append(result.DataGaps, gaps...)
	}

	// AutoCategory5, like AutoCategory3, opts into deriving the category from
	// physical facility data (here, the reported waste streams) rather than
	// requiring the caller to supply category-5 spend entries by hand.
	if inputs.AutoCategory5 && len(waste) > 0 {
		rows, gaps := calculateWaste(waste, fs)
		result.add("cat5_waste_generated", rows)
		result.DataGaps = append(result.DataGaps, gaps...)
	}

	if len(inputs.Travel) > 0 {
		rows, gaps := calculateTravel(inputs.Travel, fs)
		result.add("cat6_business_travel", rows)
		result.DataGaps = append(result.DataGaps, gaps...)
	}

	if len(inputs.Commute) > 0 && occupancy != nil {
		workingDays := inputs.WorkingDays
		if workingDays <= 0 {
			workingDays = 260
		}
		rows, gaps := calculateCommuting(inputs.Commute, *occupancy, workingDays, fs)
		result.add("cat7_employee_commuting", rows)
		result.DataGaps = append(result.DataGaps, gaps...)
	}

	return result
}

func calculateSpend(category string, entries []ghgtypes.SpendEntry, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for i, entry := range entries {
		ef, ok := fs.SpendEFPerUSD[entry.Sector]
		methodology := fmt.Sprintf("EEIO spend factor %.4g kgCO2e/USD for sector %q", ef, entry.Sector)
		if !ok {
			ef = units.SpendFallbackEFPerUSD
			methodology = fmt.Sprintf("no sector-specific spend factor for %q; used generic fallback %.4g kgCO2e/USD", entry.Sector, ef)
			gaps = append(gaps, fmt.Sprintf("%s: no spend factor for sector %q, entry %d", category, entry.Sector, i))
		}

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    category,
			Source:      fmt.Sprintf("spend:%s", entry.Sector),
			KgCO2e:      entry.AnnualUSD * ef / units.KgPerTonne,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: methodology,
		})
	}

	return rows, gaps
}

// calculateUpstreamFuelAndEnergy applies well-to-tank upstream factors to
// every reported fuel quantity, plus electricity's transmission-and-
// distribution loss component, per spec §4.6 category 3:
// kWh * lossPct * gridEF on top of the fuels' WTT factors.
func calculateUpstreamFuelAndEnergy(energy map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem, fs *ghgtypes.FactorSet, electricityGridEF, electricityLossPct float64) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow

	for fuel, item := range energy {
		if fuel == ghgtypes.FuelElectricity {
			continue
		}
		ef, ok := fs.UpstreamWTTPerFuel[fuel]
		if !ok || ef <= 0 {
			continue
		}

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    "cat3_fuel_and_energy",
			Source:      string(fuel),
			KgCO2e:      item.AnnualQuantity() * ef / units.KgPerTonne,
			DataQuality: item.DataQuality,
			Methodology: fmt.Sprintf("well-to-tank factor %.4g kgCO2e/unit", ef),
		})
	}

	if elec, ok := energy[ghgtypes.FuelElectricity]; ok && electricityGridEF > 0 {
		kWh := elec.AnnualQuantity()
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    "cat3_fuel_and_energy",
			Source:      "electricity_td_loss",
			KgCO2e:      kWh * electricityLossPct * electricityGridEF / units.KgPerTonne,
			DataQuality: elec.DataQuality,
			Methodology: fmt.Sprintf("transmission-and-distribution loss %.1f%% of %.4g kWh at %.4g kgCO2e/kWh grid factor", electricityLossPct*100, kWh, electricityGridEF),
		})
	}

	return rows
}

// normalizeTransportMode maps a transport entry's free-text mode onto the
// registry's canonical product-transport keys, falling back to the generic
// ton-mile factor when the mode is unrecognized.
func normalizeTransportMode(mode string) string {
	switch mode {
	case "truck", "truck_medium_heavy":
		return "truck"
	case "rail":
		return "rail"
	case "waterborne", "waterborne_cargo", "ship":
		return "ship"
	case "air", "air_freight":
		return "air"
	default:
		return mode
	}
}

func calculateTransport(entries []ghgtypes.TransportEntry, fs *ghgtypes.FactorSet) (upstream, downstream []ghgtypes.BreakdownRow, gaps []string) {
	for i, entry := range entries {
		mode := normalizeTransportMode(entry.Mode)
		ef, ok := fs.ProductTransportEFPerTonMile[mode]
		methodology := fmt.Sprintf("%.4g kgCO2e/ton-mile for mode %q", ef, entry.Mode)
		if !ok {
			ef = units.TransportFallbackEFPerTonMile
			methodology = fmt.Sprintf("no factor for transport mode %q; used generic fallback %.4g kgCO2e/ton-mile", entry.Mode, ef)
			gaps = append(gaps, fmt.Sprintf("transport entry %d: no factor for mode %q", i, entry.Mode))
		}

		downstreamLeg := entry.Direction == "downstream"
		category := "cat4_upstream_transportation"
		if downstreamLeg {
			category = "cat9_downstream_transportation"
		}

		row := ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    category,
			Source:      fmt.Sprintf("transport:%s", entry.Mode),
			KgCO2e:      entry.TonMiles * ef / units.KgPerTonne,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: methodology,
		}

		if downstreamLeg {
			downstream = append(downstream, row)
		} else {
			upstream = append(upstream, row)
		}
	}

	return upstream, downstream, gaps
}

func calculateWaste(entries []ghgtypes.WasteEntry, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for i, entry := range entries {
		key := ghgtypes.WasteFactorKey{WasteType: entry.WasteType, DisposalMethod: entry.DisposalMethod}
		ef, ok := fs.WasteEFPerShortTon[key]
		methodology := fmt.Sprintf("%.4g kgCO2e/short ton for %s/%s", ef, entry.WasteType, entry.DisposalMethod)
		if !ok {
			// spec §4.6 cat 5 fall-back order: the (type, method) pair, then the
			// generic mixed_msw/landfill row, then the flat 0.52 constant.
			mixedKey := ghgtypes.WasteFactorKey{WasteType: units.WasteMixedMSWType, DisposalMethod: units.WasteMixedMSWMethod}
			if mixedEF, mixedOK := fs.WasteEFPerShortTon[mixedKey]; mixedOK {
				ef = mixedEF
				methodology = fmt.Sprintf("no factor for %s/%s; used mixed-MSW-landfill fallback %.4g kgCO2e/short ton", entry.WasteType, entry.DisposalMethod, ef)
			} else {
				ef = units.WasteFallbackEFPerShortTon
				methodology = fmt.Sprintf("no factor for %s/%s or mixed-MSW-landfill; used generic fallback %.4g kgCO2e/short ton", entry.WasteType, entry.DisposalMethod, ef)
			}
			gaps = append(gaps, fmt.Sprintf("waste entry %d: no factor for %s/%s", i, entry.WasteType, entry.DisposalMethod))
		}

		shortTons := entry.AnnualTonnes * units.ShortTonsPerTonne

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    "cat5_waste_generated",
			Source:      fmt.Sprintf("waste[%d]:%s", i, entry.WasteType),
			// Floored at 0: this version has no signed recycling-credit factor
			// table, so a negative value here would only ever come from a
			// data-entry error, per spec §4.6/§9 cat-5 "floor at 0" note.
			KgCO2e:      maxFloat(shortTons*ef, 0),
			DataQuality: entry.DataQuality,
			Methodology: methodology,
		})
	}

	return rows, gaps
}

func calculateTravel(entries []ghgtypes.TravelEntry, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for i, entry := range entries {
		ef, ok := fs.BusinessTravelEFPerPaxMile[entry.Mode]
		methodology := fmt.Sprintf("%.4g kgCO2e/passenger-mile for mode %q", ef, entry.Mode)
		if !ok {
			ef = units.BusinessTravelFallbackEFPerMile
			methodology = fmt.Sprintf("no factor for travel mode %q; used generic fallback %.4g kgCO2e/passenger-mile", entry.Mode, ef)
			gaps = append(gaps, fmt.Sprintf("travel entry %d: no factor for mode %q", i, entry.Mode))
		}

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    "cat6_business_travel",
			Source:      fmt.Sprintf("travel:%s", entry.Mode),
			KgCO2e:      entry.PaxMiles * ef / units.KgPerTonne,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: methodology,
		})
	}

	return rows, gaps
}

func calculateCommuting(modes []ghgtypes.CommuteMode, occupancy ghgtypes.Occupancy, workingDays int, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for i, mode := range modes {
		ef, ok := fs.CommutingEFPerMile[mode.Mode]
		if !ok {
			gaps = append(gaps, fmt.Sprintf("commute mode %d: no factor for %q", i, mode.Mode))
			continue
		}

		commuters := float64(occupancy.Employees) * mode.Share
		annualMiles := commuters * mode.OneWayDistance * 2 * float64(workingDays)

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       3,
			Category:    "cat7_employee_commuting",
			Source:      fmt.Sprintf("commute:%s", mode.Mode),
			KgCO2e:      annualMiles * ef / units.KgPerTonne,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: fmt.Sprintf("%.0f commuters, %.4g mi/day round trip, %d working days, %.4g kgCO2e/mile", commuters, mode.OneWayDistance*2, workingDays, ef),
		})
	}

	return rows, gaps
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
