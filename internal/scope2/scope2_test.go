package scope2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeeraPatel2703/emissions/internal/registry"
	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

func loadFS(t *testing.T) *ghgtypes.FactorSet {
	t.Helper()
	fs, err := registry.Load(nil)
	require.NoError(t, err)
	return fs
}

func TestCalculate_AlwaysPopulatesBothLocationAndMarketTotals(t *testing.T) {
	fs := loadFS(t)
	item := ghgtypes.EnergyLineItem{Quantity: 100000, Unit: "kWh", Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured}

	result := Calculate(item, Location{Country: "US", State: "CA"}, fs)

	assert.Greater(t, result.LocationTotalKgCO2e, 0.0)
	assert.Greater(t, result.MarketTotalKgCO2e, 0.0)
	assert.Len(t, result.LocationRows, 1)
	assert.Len(t, result.MarketRows, 1)
}

func TestResolveGridFactor_PrefersSubregionOverState(t *testing.T) {
	fs := loadFS(t)

	// pick a state with a known subregion mapping and confirm that supplying
	// an explicit (possibly different) eGRID subregion code wins.
	anySubregion := ""
	for code := range fs.GridSubregions {
		anySubregion = code
		break
	}
	require.NotEmpty(t, anySubregion)

	ef, lossPct, source := ResolveGridFactor(Location{State: "CA", EGRIDSubregion: anySubregion}, fs)

	assert.Equal(t, fs.GridSubregions[anySubregion].KgCO2ePerKWh, ef)
	assert.Greater(t, lossPct, 0.0)
	assert.Contains(t, source, "subregion:")
}

func TestResolveGridFactor_FallsBackToStateWhenNoSubregionGiven(t *testing.T) {
	fs := loadFS(t)

	var knownState string
	for state := range fs.StateToSubregion {
		knownState = state
		break
	}
	require.NotEmpty(t, knownState)

	_, _, source := ResolveGridFactor(Location{Country: "US", State: knownState}, fs)
	assert.Contains(t, source, "state:")
}

func TestResolveGridFactor_FallsBackToUSNationalAverageWhenNothingResolves(t *testing.T) {
	fs := loadFS(t)

	ef, lossPct, source := ResolveGridFactor(Location{Country: "US", State: "ZZ"}, fs)

	assert.Equal(t, units.USNationalAverageGridEF, ef)
	assert.Equal(t, units.DefaultTDLossPct, lossPct)
	assert.Equal(t, "us_national_average", source)
}

func TestResolveGridFactor_NonUSCountryUsesInternationalGridTable(t *testing.T) {
	fs := loadFS(t)

	var knownCountry string
	for country := range fs.InternationalGrid {
		knownCountry = country
		break
	}
	require.NotEmpty(t, knownCountry)

	ef, _, source := ResolveGridFactor(Location{Country: knownCountry}, fs)

	assert.Equal(t, fs.InternationalGrid[knownCountry], ef)
	assert.Contains(t, source, "country:")
}

func TestResolveMarketEmissions_SupplierSpecificTakesPriority(t *testing.T) {
	supplierEF := 0.05
	item := ghgtypes.EnergyLineItem{Quantity: 1000, Period: ghgtypes.PeriodAnnual, SupplierEF: &supplierEF, IsRenewable: true}

	kgCO2e, subcategory, _ := resolveMarketEmissions(item, 1000, 0.4)

	assert.InDelta(t, 0.05, kgCO2e, 1e-9)
	assert.Equal(t, "supplier_specific", subcategory)
}

func TestResolveMarketEmissions_RenewableZeroRatesWhenNoSupplierEF(t *testing.T) {
	item := ghgtypes.EnergyLineItem{Quantity: 1000, Period: ghgtypes.PeriodAnnual, IsRenewable: true}

	kgCO2e, subcategory, _ := resolveMarketEmissions(item, 1000, 0.4)

	assert.Equal(t, 0.0, kgCO2e)
	assert.Equal(t, "renewable_rec", subcategory)
}

func TestResolveMarketEmissions_ResidualMixGrossesUpAtAFlatFivePercent(t *testing.T) {
	item := ghgtypes.EnergyLineItem{Quantity: 1000, Period: ghgtypes.PeriodAnnual}

	kgCO2e, subcategory, _ := resolveMarketEmissions(item, 1000, 0.4)

	assert.InDelta(t, 1000*(1+units.DefaultTDLossPct)*0.4/units.KgPerTonne, kgCO2e, 1e-9)
	assert.Equal(t, "residual_mix", subcategory)
}

// TestCalculate_MatchesNYLocationBasedWorkedNumber reproduces a location-based
// Scope 2 figure by hand for 500,000 kWh billed in New York, which resolves
// to eGRID subregion NYUP (0.1480 kgCO2e/kWh, 4.6% grid gross loss). None of
// these numbers are read back out of the implementation.
func TestCalculate_MatchesNYLocationBasedWorkedNumber(t *testing.T) {
	fs := loadFS(t)
	item := ghgtypes.EnergyLineItem{Quantity: 500000, Unit: "kWh", Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured}

	grossedKWh := 500000.0 * (1 + 0.046)
	wantTonnes := grossedKWh * 0.1480 / 1000

	result := Calculate(item, Location{Country: "US", State: "NY"}, fs)

	assert.InDelta(t, wantTonnes, result.LocationTotalKgCO2e, 1e-6)
	assert.InDelta(t, 77.404, result.LocationTotalKgCO2e, 1e-3)
}

func TestCalculate_MonthlyPeriodAnnualizesBeforeApplyingFactors(t *testing.T) {
	fs := loadFS(t)
	monthly := ghgtypes.EnergyLineItem{Quantity: 1000, Unit: "kWh", Period: ghgtypes.PeriodMonthly, DataQuality: ghgtypes.DataQualityMeasured}
	annual := ghgtypes.EnergyLineItem{Quantity: 12000, Unit: "kWh", Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured}

	loc := Location{Country: "US", State: "ZZ"}
	monthlyResult := Calculate(monthly, loc, fs)
	annualResult := Calculate(annual, loc, fs)

	assert.InDelta(t, annualResult.LocationTotalKgCO2e, monthlyResult.LocationTotalKgCO2e, 1e-9)
}
