package montecarlo

import (
	"sort"

	"github.com/MeeraPatel2703/emissions/internal/rng"
	"github.com/MeeraPatel2703/emissions/internal/uncertainty"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// perturbProfile draws a perturbed copy of profile's activity data in the
// canonical order from spec §4.10: energy, refrigerants (charge then leak
// rate) in input order, fleet (mileage then fuel economy) in input order,
// waste, water. Every collection with no inherent order (the energy map) is
// walked in a stable, sorted order so that two runs with the same seed draw
// from the stream in the same sequence every time — this is what makes Run's
// output bit-reproducible across processes and platforms.
func perturbProfile(gen *rng.Mulberry32, profile ghgtypes.FacilityProfile) ghgtypes.FacilityProfile {
	p := profile

	if len(profile.Energy) > 0 {
		fuels := make([]ghgtypes.FuelKey, 0, len(profile.Energy))
		for k := range profile.Energy {
			fuels = append(fuels, k)
		}
		sort.Slice(fuels, func(i, j int) bool { return fuels[i] < fuels[j] })

		newEnergy := make(map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem, len(profile.Energy))
		for _, fuel := range fuels {
			item := profile.Energy[fuel]
			spec := uncertainty.SpecFor(uncertainty.EnergyParameterType(item.DataQuality))
			item.Quantity = uncertainty.Perturb(gen, item.Quantity, spec)
			newEnergy[fuel] = item
		}
		p.Energy = newEnergy
	}

	if len(profile.Refrigerants) > 0 {
		newRef := make([]ghgtypes.RefrigerantEntry, len(profile.Refrigerants))
		chargeSpec := uncertainty.SpecFor(uncertainty.ParamRefrigerantCharge)
		leakSpec := uncertainty.SpecFor(uncertainty.ParamRefrigerantLeak)
		for i, r := range profile.Refrigerants {
			r.ChargeKg = uncertainty.Perturb(gen, r.ChargeKg, chargeSpec)
			if r.LeakRate > 0 {
				r.LeakRate = clamp01(uncertainty.Perturb(gen, r.LeakRate, leakSpec))
			}
			newRef[i] = r
		}
		p.Refrigerants = newRef
	}

	if len(profile.Fleet) > 0 {
		newFleet := make([]ghgtypes.FleetGroup, len(profile.Fleet))
		mileageSpec := uncertainty.SpecFor(uncertainty.ParamFleetMileage)
		economySpec := uncertainty.SpecFor(uncertainty.ParamFleetFuelEconomy)
		for i, g := range profile.Fleet {
			g.AnnualMilesPerVehicle = uncertainty.Perturb(gen, g.AnnualMilesPerVehicle, mileageSpec)
			if g.FuelEfficiency != nil && *g.FuelEfficiency > 0 {
				perturbed := uncertainty.Perturb(gen, *g.FuelEfficiency, economySpec)
				g.FuelEfficiency = &perturbed
			}
			newFleet[i] = g
		}
		p.Fleet = newFleet
	}

	if len(profile.Waste) > 0 {
		newWaste := make([]ghgtypes.WasteEntry, len(profile.Waste))
		spec := uncertainty.SpecFor(uncertainty.ParamWasteQuantity)
		for i, w := range profile.Waste {
			w.AnnualTonnes = uncertainty.Perturb(gen, w.AnnualTonnes, spec)
			newWaste[i] = w
		}
		p.Waste = newWaste
	}

	if len(profile.Water) > 0 {
		newWater := make([]ghgtypes.WaterEntry, len(profile.Water))
		spec := uncertainty.SpecFor(uncertainty.ParamWaterQuantity)
		for i, w := range profile.Water {
			w.AnnualGallons = uncertainty.Perturb(gen, w.AnnualGallons, spec)
			newWater[i] = w
		}
		p.Water = newWater
	}

	return p
}

// perturbFactorSet draws a perturbed clone of the stationary combustion
// factors for fuels the profile actually reports, followed by every grid
// subregion in the table — the last two steps of the canonical draw order.
// Both are walked in a fixed order (fuel keys sorted lexically; subregion
// codes sorted lexically, standing in for the spec's "insertion order" since
// a Go map carries none) for the same reproducibility reason as
// perturbProfile.
func perturbFactorSet(gen *rng.Mulberry32, profile ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) *ghgtypes.FactorSet {
	clone := fs.Clone()

	fuels := make([]ghgtypes.FuelKey, 0, len(profile.Energy))
	for k := range profile.Energy {
		if k == ghgtypes.FuelElectricity {
			continue
		}
		fuels = append(fuels, k)
	}
	sort.Slice(fuels, func(i, j int) bool { return fuels[i] < fuels[j] })

	efSpec := uncertainty.SpecFor(uncertainty.ParamStationaryEF)
	for _, fuel := range fuels {
		sf, ok := clone.Stationary[fuel]
		if !ok {
			continue
		}
		sf.CO2KgPerUnit = uncertainty.Perturb(gen, sf.CO2KgPerUnit, efSpec)
		sf.CH4GPerUnit = uncertainty.Perturb(gen, sf.CH4GPerUnit, efSpec)
		sf.N2OGPerUnit = uncertainty.Perturb(gen, sf.N2OGPerUnit, efSpec)
		clone.Stationary[fuel] = sf
	}

	codes := make([]string, 0, len(clone.GridSubregions))
	for code := range clone.GridSubregions {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	gridSpec := uncertainty.SpecFor(uncertainty.ParamGridEF)
	for _, code := range codes {
		sub := clone.GridSubregions[code]
		sub.KgCO2ePerKWh = uncertainty.Perturb(gen, sub.KgCO2ePerKWh, gridSpec)
		clone.GridSubregions[code] = sub
	}

	return clone
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
