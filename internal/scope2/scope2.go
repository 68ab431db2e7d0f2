// Package scope2 computes purchased-electricity emissions under both the
// location-based and market-based methods, always computing both per the
// GHG Protocol Scope 2 Guidance (spec §4.4). Grid factor resolution follows
// a hierarchical fall-back: eGRID subregion -> state -> country -> US
// national average, so a Calculate call never fails outright even when the
// facility profile omits every location field.
package scope2

import (
	"fmt"
	"strings"

	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Result bundles Scope 2's location-based and market-based breakdown rows
// and totals. Both totals are always populated, per spec §4.4's "always
// report both" invariant.
type Result struct {
	LocationRows []ghgtypes.BreakdownRow
	MarketRows   []ghgtypes.BreakdownRow

	LocationTotalKgCO2e float64
	MarketTotalKgCO2e   float64

	GridFactorSource string // "subregion", "state_national_average", "country", "us_national_average"

	// LocationEFKgCO2ePerKWh and LossPct are the resolved ungrossed grid
	// factor and T&D loss this call used, exposed so internal/scope3 can
	// compute category 3's electricity T&D portion against the same
	// resolution without re-deriving it (spec §4.6).
	LocationEFKgCO2ePerKWh float64
	LossPct                float64

	DataGaps []string
}

// Location carries the facility fields needed to resolve a grid factor,
// mirroring the subset of FacilityProfile that scope2 actually reads.
type Location struct {
	Country        string
	State          string
	EGRIDSubregion string
}

// Calculate computes both Scope 2 methods for a single electricity line
// item.
func Calculate(item ghgtypes.EnergyLineItem, loc Location, fs *ghgtypes.FactorSet) Result {
	var result Result

	locationEF, lossPct, source := ResolveGridFactor(loc, fs)
	result.GridFactorSource = source
	result.LocationEFKgCO2ePerKWh = locationEF
	result.LossPct = lossPct

	kWh := item.AnnualQuantity()
	grossedKWh := kWh * (1 + lossPct)

	locationKgCO2e := grossedKWh * locationEF / units.KgPerTonne
	result.LocationRows = append(result.LocationRows, ghgtypes.BreakdownRow{
		Scope:       2,
		Category:    "grid_electricity_location",
		Source:      "electricity",
		KgCO2e:      locationKgCO2e,
		DataQuality: item.DataQuality,
		Methodology: fmt.Sprintf("%s grid factor %.4g kgCO2e/kWh, %.1f%% T&D loss grossed up", source, locationEF, lossPct*100),
	})
	result.LocationTotalKgCO2e = locationKgCO2e

	marketKgCO2e, subcategory, marketMethod := resolveMarketEmissions(item, kWh, locationEF)
	result.MarketRows = append(result.MarketRows, ghgtypes.BreakdownRow{
		Scope:       2,
		Category:    "purchased_electricity_market_based",
		Subcategory: subcategory,
		Source:      "electricity",
		KgCO2e:      marketKgCO2e,
		DataQuality: item.DataQuality,
		Methodology: marketMethod,
	})
	result.MarketTotalKgCO2e = marketKgCO2e

	return result
}

// ResolveGridFactor runs the grid-factor fallback hierarchy (subregion ->
// state -> country -> US national average) on its own, exported so other
// packages that need a grid factor outside a full Calculate call — notably
// internal/scenario's baseline resolution for the solar_onsite intervention
// — resolve it the same way Calculate does rather than duplicating the
// hierarchy.
func ResolveGridFactor(loc Location, fs *ghgtypes.FactorSet) (ef, lossPct float64, source string) {
	if loc.EGRIDSubregion != "" {
		if sub, ok := registry.GridFactorForSubregion(fs, loc.EGRIDSubregion); ok {
			return sub.KgCO2ePerKWh, lossOrDefault(sub.GridGrossLossPct), "subregion:" + sub.Code
		}
	}

	if strings.EqualFold(loc.Country, "US") || strings.EqualFold(loc.Country, "USA") || strings.EqualFold(loc.Country, "United States") || loc.Country == "" {
		if loc.State != "" {
			if sub, ok := registry.GridFactorForState(fs, loc.State); ok {
				return sub.KgCO2ePerKWh, lossOrDefault(sub.GridGrossLossPct), "state:" + loc.State
			}
		}
		return units.USNationalAverageGridEF, units.DefaultTDLossPct, "us_national_average"
	}

	if ef, ok := registry.GridFactorForCountry(fs, loc.Country); ok {
		return ef, units.DefaultTDLossPct, "country:" + loc.Country
	}

	return units.USNationalAverageGridEF, units.DefaultTDLossPct, "us_national_average_fallback_unresolved_country"
}

func lossOrDefault(pct float64) float64 {
	if pct <= 0 {
		return units.DefaultTDLossPct
	}
	return pct
}

// resolveMarketEmissions applies the market-based hierarchy from spec §4.5,
// in order, terminating on the first match. Only the residual-mix step
// grosses up for T&D loss, and it always uses a flat 5% regardless of the
// location-based calculation's own resolved loss — the supplier-specific and
// renewable steps bypass grossing entirely since they describe a contracted
// delivery, not the physical grid draw.
func resolveMarketEmissions(item ghgtypes.EnergyLineItem, kWh, locationEF float64) (kgCO2e float64, subcategory, methodology string) {
	if item.SupplierEF != nil {
		return kWh * *item.SupplierEF / units.KgPerTonne, "supplier_specific", fmt.Sprintf("supplier-specific factor %.4g kgCO2e/kWh", *item.SupplierEF)
	}
	if item.IsRenewable {
		return 0, "renewable_rec", "zero-rated: renewable energy certificate / PPA claimed"
	}
	residualKWh := kWh * (1 + units.DefaultTDLossPct)
	return residualKWh * locationEF / units.KgPerTonne, "residual_mix", fmt.Sprintf("residual mix via eGRID subregion proxy %.4g kgCO2e/kWh, %.1f%% T&D loss grossed up", locationEF, units.DefaultTDLossPct*100)
}
