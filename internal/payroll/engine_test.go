package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	payrollerrors "hrconnect/internal/payroll/errors"
)

func money(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestCompute_StandardMonth(t *testing.T) {
	// 26000 total over 26 working days is 1000 per day; 20 present and
	// 4 half days make 22 effective days.
	pay := EmployeePay{
		Basic:      money(16000),
		HRA:        money(6000),
		Allowances: money(4000),
		Deductions: money(0),
	}
	tally := Tally{Present: 20, HalfDay: 4, Total: 26}

	comp, err := Compute(pay, tally, 26, Adjustment{})
	require.NoError(t, err)

	assert.True(t, comp.EffectiveDays.Equal(money(22)), "effective: %s", comp.EffectiveDays)
	earned := comp.BasicEarned.Add(comp.HRAEarned).Add(comp.AllowancesEarned)
	assert.True(t, earned.Equal(money(22000)), "earned: %s", earned)
	assert.True(t, comp.GrossPay.Equal(money(22000)), "gross: %s", comp.GrossPay)
	assert.True(t, comp.NetPay.Equal(money(22000)), "net: %s", comp.NetPay)
}

func TestCompute_ComponentsSumToEarned(t *testing.T) {
	// Awkward numbers whose individually rounded components would not
	// sum cleanly; the basic component absorbs the remainder.
	pay := EmployeePay{
		Basic:      money(10000.33),
		HRA:        money(3333.33),
		Allowances: money(1111.11),
		Deductions: money(500),
	}
	tally := Tally{Present: 17, HalfDay: 3, Total: 22}

	comp, err := Compute(pay, tally, 27, Adjustment{})
	require.NoError(t, err)

	total := pay.Basic.Add(pay.HRA).Add(pay.Allowances)
	expectedEarned := total.Mul(comp.EffectiveDays).Div(decimal.NewFromInt(27)).Round(2)

	sum := comp.BasicEarned.Add(comp.HRAEarned).Add(comp.AllowancesEarned)
	assert.True(t, sum.Equal(expectedEarned), "sum %s != earned %s", sum, expectedEarned)
	assert.True(t, comp.NetPay.Equal(expectedEarned.Sub(money(500))))
}

func TestCompute_Adjustments(t *testing.T) {
	pay := EmployeePay{
		Basic:      money(26000),
		Deductions: money(1000),
	}
	tally := Tally{Present: 26, Total: 26}

	comp, err := Compute(pay, tally, 26, Adjustment{
		Allowance: money(1500),
		Deduction: money(200),
	})
	require.NoError(t, err)

	assert.True(t, comp.GrossPay.Equal(money(27500)), "gross: %s", comp.GrossPay)
	// 27500 - 1000 flat - 200 ad hoc
	assert.True(t, comp.NetPay.Equal(money(26300)), "net: %s", comp.NetPay)
}

func TestCompute_NoAttendanceMeansZeroEarnings(t *testing.T) {
	pay := EmployeePay{Basic: money(26000), Deductions: money(1000)}

	comp, err := Compute(pay, Tally{}, 26, Adjustment{})
	require.NoError(t, err)

	assert.True(t, comp.GrossPay.Equal(decimal.Zero))
	assert.True(t, comp.NetPay.Equal(money(-1000)), "net: %s", comp.NetPay)
}

func TestCompute_RejectsNonPositiveWorkingDays(t *testing.T) {
	_, err := Compute(EmployeePay{Basic: money(26000)}, Tally{Present: 20}, 0, Adjustment{})
	assert.ErrorIs(t, err, payrollerrors.ErrInsufficientWorkingDays)

	_, err = Compute(EmployeePay{Basic: money(26000)}, Tally{Present: 20}, -3, Adjustment{})
	assert.ErrorIs(t, err, payrollerrors.ErrInsufficientWorkingDays)
}
