// Package ghgtypes holds the data model shared by the emissions core and its
// external callers: FacilityProfile and FactorSet as inputs, EmissionResult,
// SimulationResult, and ScenarioResult as outputs. It has no "internal/"
// prefix on purpose — a dashboard, persistence layer, or CLI consuming this
// module as a library needs to name these types directly, and every
// internal calculation package imports this package rather than the other
// way around, so there is no import cycle with the public facade in the
// module-root "emissions" package.
package ghgtypes

// BuildingType enumerates the facility archetypes the CBECS benchmark tables
// and estimator fallback are keyed by.
type BuildingType string

const (
	BuildingOffice       BuildingType = "office"
	BuildingWarehouse    BuildingType = "warehouse"
	BuildingManufacturing BuildingType = "manufacturing"
	BuildingDataCenter   BuildingType = "data_center"
	BuildingHospital     BuildingType = "hospital"
	BuildingRetail       BuildingType = "retail"
	BuildingEducation    BuildingType = "education"
	BuildingFoodService  BuildingType = "food_service"
	BuildingLodging      BuildingType = "lodging"
)

// InputMode selects how aggressively the estimator fallback (C3) fills gaps
// in the facility's reported energy.
type InputMode string

const (
	InputModeBasic    InputMode = "basic"
	InputModeAdvanced InputMode = "advanced"
	InputModeExpert   InputMode = "expert"
)

// DataQuality tags a single reported value with how it was obtained. It
// drives both the analytical uncertainty bands (spec §4.7) and the Monte
// Carlo parameter-type mapping (spec §4.9).
type DataQuality string

const (
	DataQualityMeasured  DataQuality = "measured"
	DataQualityEstimated DataQuality = "estimated"
	DataQualityModeled   DataQuality = "modeled"
)

// FuelKey enumerates the stationary-combustion fuels a facility can report
// energy for.
type FuelKey string

const (
	FuelElectricity FuelKey = "electricity"
	FuelNaturalGas  FuelKey = "naturalGas"
	FuelDiesel      FuelKey = "diesel"
	FuelOil2        FuelKey = "fuelOil2"
	FuelOil6        FuelKey = "fuelOil6"
	FuelPropane     FuelKey = "propane"
	FuelKerosene    FuelKey = "kerosene"
)

// Period is the reporting cadence of an EnergyLineItem.
type Period string

const (
	PeriodAnnual  Period = "annual"
	PeriodMonthly Period = "monthly"
)

// EnergyLineItem is a single fuel's reported consumption.
type EnergyLineItem struct {
	Quantity    float64     `json:"quantity"`
	Unit        string      `json:"unit"`
	Period      Period      `json:"period"`
	DataQuality DataQuality `json:"dataQuality"`
	IsRenewable bool        `json:"isRenewable,omitempty"`
	SupplierEF  *float64    `json:"supplierEF,omitempty"` // kg CO2e/kWh, market-based hierarchy step 1
}

// AnnualQuantity normalizes a monthly-reported quantity up to an annual
// figure; monthly-reported line items are assumed to repeat evenly across
// 12 months, since the core performs no per-hour temporal accounting
// (spec §1 non-goals).
func (e EnergyLineItem) AnnualQuantity() float64 {
	if e.Period == PeriodMonthly {
		return e.Quantity * 12
	}
	return e.Quantity
}

// RefrigerantEntry is a single refrigerant-charge record for the fugitive
// emissions calculator (spec §4.3).
type RefrigerantEntry struct {
	Type          string      `json:"type"`
	ChargeKg      float64     `json:"charge_kg"`
	LeakRate      float64     `json:"leak_rate"` // 0 means "use the equipment-type default"
	EquipmentType string      `json:"equipmentType,omitempty"`
	DataQuality   DataQuality `json:"dataQuality"`
}

// FleetFuelType enumerates the fuel types a fleet vehicle group can use.
type FleetFuelType string

const (
	FleetFuelGasoline FleetFuelType = "gasoline"
	FleetFuelDiesel   FleetFuelType = "diesel"
	FleetFuelEV       FleetFuelType = "ev"
	FleetFuelHybrid   FleetFuelType = "hybrid"
)

// FleetGroup is a group of vehicles sharing a type, fuel, and usage profile
// (spec §4.3 mobile combustion).
type FleetGroup struct {
	VehicleType          string        `json:"vehicleType"`
	FuelType             FleetFuelType `json:"fuelType"`
	Count                float64       `json:"count"`
	AnnualMilesPerVehicle float64       `json:"annualMilesPerVehicle"`
	FuelEfficiency       *float64      `json:"fuelEfficiency,omitempty"` // user-override mpg
	DataQuality          DataQuality   `json:"dataQuality"`
}

// WasteEntry is a single waste stream record (spec §4.6 category 5).
type WasteEntry struct {
	WasteType       string      `json:"wasteType"`
	DisposalMethod  string      `json:"disposalMethod"`
	AnnualTonnes    float64     `json:"annualTonnes"` // metric tonnes
	DataQuality     DataQuality `json:"dataQuality"`
}

// WaterEntry is a single water source record. Water supply/treatment
// emissions are not part of the Scope totals in this version of the
// spec — they are carried purely for benchmarking/reporting use by
// external collaborators.
type WaterEntry struct {
	Source         string      `json:"source"`
	AnnualGallons  float64     `json:"annualGallons"`
	TreatmentType  string      `json:"treatmentType,omitempty"`
	DataQuality    DataQuality `json:"dataQuality"`
}

// SpendEntry is a single spend-based Scope-3 activity record (categories 1,
// 2, 8, 10-15).
type SpendEntry struct {
	Sector    string  `json:"sector"`
	AnnualUSD float64 `json:"annualUSD"`
}

// TransportEntry is a single product-transport ton-mile record, covering
// either upstream (category 4) or downstream (category 9) transportation
// and distribution. Direction defaults to upstream when empty, since most
// facility profiles only track their inbound freight.
type TransportEntry struct {
	Mode      string `json:"mode"`
	TonMiles  float64 `json:"tonMiles"`
	Direction string `json:"direction,omitempty"` // "upstream" (default) or "downstream"
}

// TravelEntry is a single business-travel passenger-mile record (category 6).
type TravelEntry struct {
	Mode        string  `json:"mode"`
	PaxMiles    float64 `json:"paxMiles"`
}

// CommuteMode is a single employee-commute mode share (category 7).
type CommuteMode struct {
	Mode           string  `json:"mode"`
	Share          float64 `json:"share"`          // fraction of employees, 0-1
	OneWayDistance float64 `json:"oneWayDistance"` // miles
}

// Scope3Inputs carries every optional, set-valued Scope-3 input across the
// fifteen categories (spec §3). Categories not backed by an explicit input
// here (3, and the auto-flagged portions of 5) are derived from the rest of
// the facility profile instead.
type Scope3Inputs struct {
	Spend          map[string][]SpendEntry `json:"spend,omitempty"` // keyed by category, e.g. "cat1", "cat2"
	Transport      []TransportEntry        `json:"transport,omitempty"`
	Travel         []TravelEntry           `json:"travel,omitempty"`
	Commute        []CommuteMode           `json:"commute,omitempty"`
	WorkingDays    int                     `json:"workingDays,omitempty"` // default 260 if zero
	AutoCategory3  bool                    `json:"autoCategory3,omitempty"`
	AutoCategory5  bool                    `json:"autoCategory5,omitempty"`
}

// Occupancy carries per-employee/visitor counts used for intensity metrics
// and category-7 commuting.
type Occupancy struct {
	Employees     int `json:"employees,omitempty"`
	AnnualVisitors int `json:"annualVisitors,omitempty"`
}

// FacilityProfile is the immutable input to every public entry point. It is
// built and owned by external collaborators; the core only ever reads it.
type FacilityProfile struct {
	Name          string       `json:"name"`
	BuildingType  BuildingType `json:"buildingType"`
	SquareFeet    float64      `json:"squareFeet"`
	YearBuilt     *int         `json:"yearBuilt,omitempty"`

	Country        string  `json:"country"`
	State          string  `json:"state,omitempty"`
	Zip            string  `json:"zip,omitempty"`
	City           string  `json:"city,omitempty"`
	ClimateZone    string  `json:"climateZone,omitempty"`
	EGRIDSubregion string  `json:"egridSubregion,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`

	InputMode InputMode `json:"inputMode"`

	Energy       map[FuelKey]EnergyLineItem `json:"energy,omitempty"`
	Refrigerants []RefrigerantEntry         `json:"refrigerants,omitempty"`
	Fleet        []FleetGroup               `json:"fleet,omitempty"`
	Waste        []WasteEntry               `json:"waste,omitempty"`
	Water        []WaterEntry               `json:"water,omitempty"`
	Scope3       Scope3Inputs               `json:"scope3,omitempty"`
	Occupancy    *Occupancy                 `json:"occupancy,omitempty"`
}
