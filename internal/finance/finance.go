// Package finance implements the NPV/IRR/payback math behind the scenario
// evaluator (spec §6). Cash-flow amounts are shopspring/decimal-typed,
// grounded on the pack's santoshpalla27-real-cost cost-estimation engine,
// which keeps CapEx/OpEx money fields as decimal.Decimal rather than
// float64 to avoid compounding rounding error across a multi-year
// projection; the root-finding in IRR still operates on plain float64s,
// since Newton-Raphson's convergence behavior is what matters there, not
// exact decimal arithmetic.
package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// CashFlow is one year's net cash flow in a scenario's financial
// projection. Year 0 carries the up-front CapEx as a negative amount.
type CashFlow struct {
	Year      int
	AmountUSD decimal.Decimal
}

// BuildCashFlows lays out a horizonYears-year cash-flow series: a single
// negative CapEx outflow in year 0, followed by a constant annual net cash
// flow (savings minus added OpEx) in every subsequent year.
func BuildCashFlows(capExUSD, annualNetUSD float64, horizonYears int) []CashFlow {
	flows := make([]CashFlow, horizonYears+1)
	flows[0] = CashFlow{Year: 0, AmountUSD: decimal.NewFromFloat(-capExUSD)}
	for year := 1; year <= horizonYears; year++ {
		flows[year] = CashFlow{Year: year, AmountUSD: decimal.NewFromFloat(annualNetUSD)}
	}
	return flows
}

// NPV discounts every cash flow back to year 0 at discountRatePct and sums
// them.
func NPV(discountRatePct float64, flows []CashFlow) decimal.Decimal {
	total := decimal.Zero
	for _, cf := range flows {
		denom := math.Pow(1+discountRatePct, float64(cf.Year))
		total = total.Add(cf.AmountUSD.Div(decimal.NewFromFloat(denom)))
	}
	return total
}

const (
	maxNewtonIterations = 100
	newtonTolerance     = 1e-7
	newtonInitialGuess  = 0.10
)

// IRR solves for the discount rate at which NPV(flows) == 0 via
// Newton-Raphson, starting from a 10% guess. It returns nil when the
// iteration diverges, hits a near-zero derivative, or fails to converge
// within maxNewtonIterations — spec §4.11 treats a non-convergent IRR as
// "unknown," not an error.
func IRR(flows []CashFlow) *float64 {
	amounts := make([]float64, len(flows))
	for i, cf := range flows {
		amounts[i] = cf.AmountUSD.InexactFloat64()
	}

	rate := newtonInitialGuess
	for iter := 0; iter < maxNewtonIterations; iter++ {
		npv := npvFloat(rate, amounts)
		deriv := npvDerivative(rate, amounts)
		if math.Abs(deriv) < 1e-15 {
			return nil
		}

		next := rate - npv/deriv
		if math.IsNaN(next) || math.IsInf(next, 0) || next < -0.99 {
			return nil
		}
		if math.Abs(npv) < newtonTolerance || math.Abs(next-rate) < newtonTolerance {
			return &next
		}
		rate = next
	}

	return nil
}

func npvFloat(rate float64, amounts []float64) float64 {
	total := 0.0
	for year, amt := range amounts {
		total += amt / math.Pow(1+rate, float64(year))
	}
	return total
}

func npvDerivative(rate float64, amounts []float64) float64 {
	total := 0.0
	for year, amt := range amounts {
		if year == 0 {
			continue
		}
		total += -float64(year) * amt / math.Pow(1+rate, float64(year)+1)
	}
	return total
}

// PaybackYears implements spec §4.11's closed-form payback period:
// capex / annualSavings, or +Inf when the intervention never pays for
// itself (annualSavingsUSD <= 0). Unlike NPV and IRR this ignores the
// discount rate and cash-flow horizon entirely — it is a simple-payback
// figure, not a discounted one.
func PaybackYears(capexUSD, annualSavingsUSD float64) float64 {
	if annualSavingsUSD <= 0 {
		return math.Inf(1)
	}
	return capexUSD / annualSavingsUSD
}
