// Package uncertainty maps a perturbable parameter's type to the fixed
// distribution shape and relative width Monte Carlo draws it from (spec
// §4.9). Unlike the analytical uncertainty bands in internal/ghgengine,
// which scale with a value's measured/modeled/estimated data quality, every
// Monte Carlo parameter type in this table carries one fixed relative
// uncertainty regardless of the underlying value's own data-quality tag —
// the one exception being energy, which branches on measured vs. estimated
// at the parameter-type level instead.
package uncertainty

import (
	"math"

	"github.com/MeeraPatel2703/emissions/internal/rng"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// DistributionType names the shape Perturb draws from.
type DistributionType string

const (
	Normal     DistributionType = "normal"
	Lognormal  DistributionType = "lognormal"
	Triangular DistributionType = "triangular"
	Fixed      DistributionType = "fixed"
)

// ParameterType enumerates the fixed parameter categories from spec §4.9's
// table. ParamScope3Spend and ParamScope3Distance are named here for
// completeness but are never drawn from inside internal/montecarlo's loop:
// the canonical RNG draw order documented on montecarlo.Run does not
// include them, so perturbing them would break seed reproducibility.
type ParameterType string

const (
	ParamEnergyMeasured    ParameterType = "energy_measured"
	ParamEnergyEstimated   ParameterType = "energy_estimated"
	ParamStationaryEF      ParameterType = "stationary_ef"
	ParamGridEF            ParameterType = "grid_ef"
	ParamRefrigerantCharge ParameterType = "refrigerant_charge"
	ParamRefrigerantLeak   ParameterType = "refrigerant_leak_rate"
	ParamFleetMileage      ParameterType = "fleet_mileage"
	ParamFleetFuelEconomy  ParameterType = "fleet_fuel_economy"
	ParamScope3Spend       ParameterType = "scope3_spend"
	ParamScope3Distance    ParameterType = "scope3_distance"
	ParamWasteQuantity     ParameterType = "waste_quantity"
	ParamWaterQuantity     ParameterType = "water_quantity"
	ParamGWP               ParameterType = "gwp"
)

// Spec is a resolved (distribution shape, relative width) pair ready to
// perturb a specific point estimate. RefrigerantLeak ignores
// RelativeStdDev entirely: its bounds are a fixed 0.5x/2x multiple of the
// point estimate, per spec §4.9's explicit note, not a relative-std band.
type Spec struct {
	Type           DistributionType
	RelativeStdDev float64
}

var specByParameterType = map[ParameterType]Spec{
	ParamEnergyMeasured:    {Normal, 0.025},
	ParamEnergyEstimated:   {Lognormal, 0.15},
	ParamStationaryEF:      {Normal, 0.01},
	ParamGridEF:            {Normal, 0.05},
	ParamRefrigerantCharge: {Normal, 0.20},
	ParamRefrigerantLeak:   {Triangular, 0.50},
	ParamFleetMileage:      {Normal, 0.10},
	ParamFleetFuelEconomy:  {Normal, 0.08},
	ParamScope3Spend:       {Lognormal, 0.30},
	ParamScope3Distance:    {Normal, 0.15},
	ParamWasteQuantity:     {Normal, 0.20},
	ParamWaterQuantity:     {Normal, 0.10},
	ParamGWP:               {Fixed, 0},
}

// SpecFor resolves the fixed Spec for a parameter type.
func SpecFor(paramType ParameterType) Spec {
	if spec, ok := specByParameterType[paramType]; ok {
		return spec
	}
	return Spec{Type: Triangular, RelativeStdDev: 0.15}
}

// EnergyParameterType picks energy_measured or energy_estimated per spec
// §4.9: "measured ? energy_measured : energy_estimated" — modeled data
// quality is treated as not-measured for Monte Carlo purposes.
func EnergyParameterType(dq ghgtypes.DataQuality) ParameterType {
	if dq == ghgtypes.DataQualityMeasured {
		return ParamEnergyMeasured
	}
	return ParamEnergyEstimated
}

// Perturb draws a single perturbed value around point using gen, consuming
// whatever number of draws the chosen distribution requires (1 for
// triangular, 2 for normal and lognormal — see internal/rng), and floors
// the result at zero per spec §4.9: "perturb(...) returns max(0, sample)".
// A zero point estimate still consumes its draw (for RNG-order fidelity)
// but perturbs to zero.
func Perturb(gen *rng.Mulberry32, point float64, spec Spec) float64 {
	switch spec.Type {
	case Fixed:
		return point
	case Normal:
		return floorZero(gen.Normal(point, math.Abs(point)*spec.RelativeStdDev))
	case Lognormal:
		if point == 0 {
			gen.Normal(0, 1) // consume the draw Lognormal would have taken
			return 0
		}
		sigma := math.Sqrt(math.Log(1 + spec.RelativeStdDev*spec.RelativeStdDev))
		mu := math.Log(math.Abs(point)) - 0.5*sigma*sigma
		return floorZero(gen.Lognormal(mu, sigma))
	default: // Triangular — refrigerant_leak_rate's explicit 0.5x/2x bounds
		return floorZero(gen.Triangular(point*0.5, point, point*2.0))
	}
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
