package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCashFlows_NegativeCapExInYearZero(t *testing.T) {
	flows := BuildCashFlows(10000, 2000, 5)

	assert.Len(t, flows, 6)
	assert.Equal(t, 0, flows[0].Year)
	assert.True(t, flows[0].AmountUSD.IsNegative())
	assert.Equal(t, "-10000", flows[0].AmountUSD.String())

	for year := 1; year <= 5; year++ {
		assert.Equal(t, "2000", flows[year].AmountUSD.String())
	}
}

func TestNPV_ZeroDiscountRateEqualsSimpleSum(t *testing.T) {
	flows := BuildCashFlows(1000, 500, 4)
	npv := NPV(0, flows)

	got, _ := npv.Float64()
	assert.InDelta(t, 1000.0, got, 1e-9) // -1000 + 500*4
}

func TestNPV_PositiveDiscountRateDiscountsFutureFlows(t *testing.T) {
	flows := BuildCashFlows(1000, 500, 4)
	npvAtZero := NPV(0, flows)
	npvAtEight := NPV(0.08, flows)

	z, _ := npvAtZero.Float64()
	e, _ := npvAtEight.Float64()
	assert.Less(t, e, z, "discounting future savings should reduce NPV")
}

func TestIRR_ConvergesForAProfitableProjectile(t *testing.T) {
	// -1000 up front, 400/year for 5 years clearly earns a positive IRR.
	flows := BuildCashFlows(1000, 400, 5)
	irr := IRR(flows)

	if assert.NotNil(t, irr) {
		assert.Greater(t, *irr, 0.0)
		npv := NPV(*irr, flows)
		got, _ := npv.Float64()
		assert.InDelta(t, 0.0, got, 1e-3, "NPV at the solved IRR should be ~0")
	}
}

func TestIRR_NilWhenProjectNeverPaysBack(t *testing.T) {
	// capex with no positive return at all: NPV is monotonically negative at
	// every rate >= -1, so Newton-Raphson has no root to find.
	flows := BuildCashFlows(1000, 0, 5)
	irr := IRR(flows)

	assert.Nil(t, irr)
}

func TestPaybackYears_SimpleDivision(t *testing.T) {
	assert.InDelta(t, 5.0, PaybackYears(10000, 2000), 1e-9)
}

func TestPaybackYears_InfiniteWhenSavingsIsZero(t *testing.T) {
	assert.True(t, math.IsInf(PaybackYears(10000, 0), 1))
}

func TestPaybackYears_InfiniteWhenSavingsIsNegative(t *testing.T) {
	assert.True(t, math.IsInf(PaybackYears(10000, -500), 1))
}

func TestPaybackYears_ZeroWhenNoCapExAndPositiveSavings(t *testing.T) {
	assert.Equal(t, 0.0, PaybackYears(0, 500))
}
