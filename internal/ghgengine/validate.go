package ghgengine

import (
	"strconv"

	"github.com/MeeraPatel2703/emissions/internal/apperrors"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// Validate checks the structural and range invariants spec §7 requires
// before any calculator runs: a malformed or out-of-range input fails the
// whole call rather than producing a silently wrong total.
func Validate(profile ghgtypes.FacilityProfile) error {
	if profile.SquareFeet <= 0 {
		return apperrors.NewValidationError("squareFeet", "must be greater than zero")
	}

	for fuel, item := range profile.Energy {
		if item.Quantity < 0 {
			return apperrors.NewValidationError("energy."+string(fuel)+".quantity", "must not be negative")
		}
		if item.SupplierEF != nil && *item.SupplierEF < 0 {
			return apperrors.NewValidationError("energy."+string(fuel)+".supplierEF", "must not be negative")
		}
	}

	for i, r := range profile.Refrigerants {
		if r.ChargeKg < 0 {
			return apperrors.NewValidationError(fieldIndex("refrigerants", i, "chargeKg"), "must not be negative")
		}
		if r.LeakRate < 0 || r.LeakRate > 1 {
			return apperrors.NewValidationError(fieldIndex("refrigerants", i, "leakRate"), "must be between 0 and 1")
		}
	}

	for i, g := range profile.Fleet {
		if g.Count < 0 {
			return apperrors.NewValidationError(fieldIndex("fleet", i, "count"), "must not be negative")
		}
		if g.AnnualMilesPerVehicle < 0 {
			return apperrors.NewValidationError(fieldIndex("fleet", i, "annualMilesPerVehicle"), "must not be negative")
		}
	}

	for i, w := range profile.Waste {
		if w.AnnualTonnes < 0 {
			return apperrors.NewValidationError(fieldIndex("waste", i, "annualTonnes"), "must not be negative")
		}
	}

	for i, w := range profile.Water {
		if w.AnnualGallons < 0 {
			return apperrors.NewValidationError(fieldIndex("water", i, "annualGallons"), "must not be negative")
		}
	}

	for _, modes := range profile.Scope3.Commute {
		if modes.Share < 0 || modes.Share > 1 {
			return apperrors.NewValidationError("scope3.commute.share", "must be between 0 and 1")
		}
	}

	return nil
}

func fieldIndex(collection string, i int, field string) string {
	return collection + "[" + strconv.Itoa(i) + "]." + field
}
