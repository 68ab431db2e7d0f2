// Package registry assembles the immutable FactorSet every calculation
// package reads from (spec §3, §4 "Factor Registry"). The reference tables
// are embedded at build time from internal/registry/data, mirroring the
// teacher's convention of a single construction entry point
// (config.LoadConfig) that the rest of the codebase treats as a pure value
// once built.
package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/MeeraPatel2703/emissions/internal/units"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

//go:embed data/*.json
var dataFS embed.FS

type mobileRow struct {
	VehicleType    string  `json:"vehicle_type"`
	FuelType       string  `json:"fuel_type"`
	CO2KgPerGallon float64 `json:"co2_kg_per_gallon"`
	CH4GPerMile    float64 `json:"ch4_g_per_mile"`
	N2OGPerMile    float64 `json:"n2o_g_per_mile"`
	DefaultMPG     float64 `json:"default_mpg"`
}

type refrigerantRow struct {
	FormalName string  `json:"formal_name"`
	CommonName string  `json:"common_name"`
	GWP100     float64 `json:"gwp100"`
}

type wasteRow struct {
	WasteType      string  `json:"waste_type"`
	DisposalMethod string  `json:"disposal_method"`
	EFPerShortTon  float64 `json:"ef_per_short_ton"`
}

type scope3Doc struct {
	WaterSupplyEFPer1000Gal      float64            `json:"water_supply_ef_per_1000_gal"`
	WaterTreatmentEFPer1000Gal   float64            `json:"water_treatment_ef_per_1000_gal"`
	BusinessTravelEFPerPaxMile   map[string]float64 `json:"business_travel_ef_per_pax_mile"`
	CommutingEFPerMile           map[string]float64 `json:"commuting_ef_per_mile"`
	ProductTransportEFPerTonMile map[string]float64 `json:"product_transport_ef_per_ton_mile"`
	SpendEFPerUSD                map[string]float64 `json:"spend_ef_per_usd"`
	UpstreamWTTPerFuel           map[string]float64 `json:"upstream_wtt_per_fuel"`
}

// Load builds the immutable FactorSet from the embedded reference tables.
// The logger is nil-safe (spec §A.1): nil falls back to zap.NewNop(). Load
// only ever fails on a malformed embedded table, which would indicate a
// packaging bug rather than a runtime/data condition, so callers that
// control their own build rarely need to check the error at all.
func Load(logger *zap.Logger) (*ghgtypes.FactorSet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fs := &ghgtypes.FactorSet{
		Version:       units.FactorSetVersion,
		RawSourceDocs: map[string]datatypes.JSON{},
	}

	if err := loadRaw(fs, "data/stationary.json", &fs.Stationary); err != nil {
		return nil, fmt.Errorf("registry: loading stationary factors: %w", err)
	}

	var mobileRows []mobileRow
	if err := loadJSON("data/mobile.json", &mobileRows); err != nil {
		return nil, fmt.Errorf("registry: loading mobile factors: %w", err)
	}
	fs.Mobile = make(map[ghgtypes.MobileFactorKey]ghgtypes.MobileFactor, len(mobileRows))
	for _, r := range mobileRows {
		fs.Mobile[ghgtypes.MobileFactorKey{VehicleType: r.VehicleType, FuelType: r.FuelType}] = ghgtypes.MobileFactor{
			CO2KgPerGallon: r.CO2KgPerGallon,
			CH4GPerMile:    r.CH4GPerMile,
			N2OGPerMile:    r.N2OGPerMile,
			DefaultMPG:     r.DefaultMPG,
		}
	}

	if err := loadRaw(fs, "data/grid_subregions.json", &fs.GridSubregions); err != nil {
		return nil, fmt.Errorf("registry: loading grid subregions: %w", err)
	}
	if err := loadJSON("data/state_to_subregion.json", &fs.StateToSubregion); err != nil {
		return nil, fmt.Errorf("registry: loading state-to-subregion map: %w", err)
	}
	if err := loadJSON("data/international_grid.json", &fs.InternationalGrid); err != nil {
		return nil, fmt.Errorf("registry: loading international grid factors: %w", err)
	}

	var refRows []refrigerantRow
	if err := loadJSON("data/refrigerants.json", &refRows); err != nil {
		return nil, fmt.Errorf("registry: loading refrigerants: %w", err)
	}
	fs.Refrigerants = make(map[string]ghgtypes.RefrigerantInfo, len(refRows)*2)
	for _, r := range refRows {
		info := ghgtypes.RefrigerantInfo{FormalName: r.FormalName, CommonName: r.CommonName, GWP100: r.GWP100}
		fs.Refrigerants[strings.ToLower(r.FormalName)] = info
		if r.CommonName != "" {
			fs.Refrigerants[strings.ToLower(r.CommonName)] = info
		}
	}

	if err := loadJSON("data/leak_rates.json", &fs.DefaultLeakRateByEquip); err != nil {
		return nil, fmt.Errorf("registry: loading default leak rates: %w", err)
	}

	var wasteRows []wasteRow
	if err := loadJSON("data/waste.json", &wasteRows); err != nil {
		return nil, fmt.Errorf("registry: loading waste factors: %w", err)
	}
	fs.WasteEFPerShortTon = make(map[ghgtypes.WasteFactorKey]float64, len(wasteRows))
	for _, r := range wasteRows {
		fs.WasteEFPerShortTon[ghgtypes.WasteFactorKey{WasteType: r.WasteType, DisposalMethod: r.DisposalMethod}] = r.EFPerShortTon
	}

	var s3 scope3Doc
	if err := loadJSON("data/scope3_factors.json", &s3); err != nil {
		return nil, fmt.Errorf("registry: loading scope3 factors: %w", err)
	}
	fs.WaterSupplyEFPer1000Gal = s3.WaterSupplyEFPer1000Gal
	fs.WaterTreatmentEFPer1000Gal = s3.WaterTreatmentEFPer1000Gal
	fs.BusinessTravelEFPerPaxMile = s3.BusinessTravelEFPerPaxMile
	fs.CommutingEFPerMile = s3.CommutingEFPerMile
	fs.ProductTransportEFPerTonMile = s3.ProductTransportEFPerTonMile
	fs.SpendEFPerUSD = s3.SpendEFPerUSD
	fs.UpstreamWTTPerFuel = make(map[ghgtypes.FuelKey]float64, len(s3.UpstreamWTTPerFuel))
	for k, v := range s3.UpstreamWTTPerFuel {
		fs.UpstreamWTTPerFuel[ghgtypes.FuelKey(k)] = v
	}

	if err := loadRaw(fs, "data/benchmarks.json", &fs.Benchmarks); err != nil {
		return nil, fmt.Errorf("registry: loading benchmarks: %w", err)
	}
	if err := loadJSON("data/climate_zones.json", &fs.ClimateZones); err != nil {
		return nil, fmt.Errorf("registry: loading climate zones: %w", err)
	}
	if err := loadJSON("data/state_to_zone.json", &fs.StateToDefaultZone); err != nil {
		return nil, fmt.Errorf("registry: loading state-to-zone map: %w", err)
	}

	var gridProjection map[string]float64
	if err := loadJSON("data/grid_projection.json", &gridProjection); err != nil {
		return nil, fmt.Errorf("registry: loading grid projection: %w", err)
	}
	fs.NationalGridEFByYear = make(map[int]float64, len(gridProjection))
	for yearStr, ef := range gridProjection {
		year, convErr := strconv.Atoi(yearStr)
		if convErr != nil {
			logger.Warn("registry: skipping malformed grid projection year", zap.String("year", yearStr))
			continue
		}
		fs.NationalGridEFByYear[year] = ef
	}

	logger.Info("registry: factor set assembled",
		zap.String("version", fs.Version),
		zap.Int("stationaryFuels", len(fs.Stationary)),
		zap.Int("gridSubregions", len(fs.GridSubregions)),
		zap.Int("refrigerants", len(refRows)),
	)

	return fs, nil
}

func loadJSON(path string, dst any) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// loadRaw decodes path into dst and stashes the raw bytes on fs.RawSourceDocs
// under the file's base name, satisfying the audit-trail convention from
// SPEC_FULL.md §B (gorm.io/datatypes.JSON).
func loadRaw(fs *ghgtypes.FactorSet, path string, dst any) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	fs.RawSourceDocs[path] = datatypes.JSON(raw)
	return nil
}

// GWPFor resolves a refrigerant's AR6 GWP-100 by formal or common name,
// case-insensitively (spec §4.3). It returns apperrors.ErrUnknownRefrigerant
// wrapped with the offending name when no entry matches.
func GWPFor(fs *ghgtypes.FactorSet, name string) (float64, bool) {
	info, ok := fs.Refrigerants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return info.GWP100, true
}

// GridFactorForState resolves the location-based grid factor (kg CO2e/kWh)
// and T&D loss percentage for a US state, falling back through subregion ->
// national average per spec §4.4.
func GridFactorForState(fs *ghgtypes.FactorSet, state string) (ghgtypes.GridSubregion, bool) {
	code, ok := fs.StateToSubregion[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return ghgtypes.GridSubregion{}, false
	}
	sub, ok := fs.GridSubregions[code]
	return sub, ok
}

// GridFactorForSubregion resolves an eGRID subregion code directly.
func GridFactorForSubregion(fs *ghgtypes.FactorSet, subregion string) (ghgtypes.GridSubregion, bool) {
	sub, ok := fs.GridSubregions[strings.ToUpper(strings.TrimSpace(subregion))]
	return sub, ok
}

// GridFactorForCountry resolves a non-US country's national grid factor.
func GridFactorForCountry(fs *ghgtypes.FactorSet, country string) (float64, bool) {
	ef, ok := fs.InternationalGrid[strings.ToUpper(strings.TrimSpace(country))]
	return ef, ok
}

// ClimateZoneForState resolves a US state's default ASHRAE climate zone
// when the facility profile does not report one explicitly (spec §4.2).
func ClimateZoneForState(fs *ghgtypes.FactorSet, state string) (ghgtypes.ClimateZoneInfo, bool) {
	zone, ok := fs.StateToDefaultZone[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return ghgtypes.ClimateZoneInfo{}, false
	}
	info, ok := fs.ClimateZones[zone]
	return info, ok
}
