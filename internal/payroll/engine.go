package payroll

import (
	"github.com/shopspring/decimal"

	payrollerrors "hrconnect/internal/payroll/errors"
)

// EmployeePay is the salary snapshot the engine prices a month from.
type EmployeePay struct {
	ID             string
	FullName       string
	EmployeeNumber string
	Basic          decimal.Decimal
	HRA            decimal.Decimal
	Allowances     decimal.Decimal
	Deductions     decimal.Decimal
}

// Tally is an employee's attendance count for the month. Days with no
// row, and rows in any other status, all count as absent.
type Tally struct {
	Present int
	HalfDay int
	Total   int
}

// Adjustment is the per-employee ad-hoc delta applied on top of the
// prorated amounts.
type Adjustment struct {
	Allowance decimal.Decimal
	Deduction decimal.Decimal
}

// Computation is the priced month for one employee, before persistence.
type Computation struct {
	WorkingDays   int
	PresentDays   int
	HalfDays      int
	TotalDays     int
	EffectiveDays decimal.Decimal

	BasicEarned      decimal.Decimal
	HRAEarned        decimal.Decimal
	AllowancesEarned decimal.Decimal
	Deductions       decimal.Decimal
	AdHocAllowance   decimal.Decimal
	AdHocDeduction   decimal.Decimal
	GrossPay         decimal.Decimal
	NetPay           decimal.Decimal
}

var half = decimal.NewFromFloat(0.5)

// Compute prices one employee's month. Earning components prorate by
// effectiveDays/workingDays; deductions apply flat. The basic component
// absorbs the cent-level rounding remainder so the three components
// always sum to the earned total.
func Compute(pay EmployeePay, tally Tally, workingDays int, adj Adjustment) (Computation, error) {
	if workingDays <= 0 {
		return Computation{}, payrollerrors.ErrInsufficientWorkingDays
	}

	effective := decimal.NewFromInt(int64(tally.Present)).
		Add(half.Mul(decimal.NewFromInt(int64(tally.HalfDay))))

	days := decimal.NewFromInt(int64(workingDays))
	factor := effective.Div(days)

	total := pay.Basic.Add(pay.HRA).Add(pay.Allowances)
	earned := total.Mul(factor).Round(2)

	basicEarned := pay.Basic.Mul(factor).Round(2)
	hraEarned := pay.HRA.Mul(factor).Round(2)
	allowancesEarned := pay.Allowances.Mul(factor).Round(2)
	basicEarned = basicEarned.Add(earned.Sub(basicEarned.Add(hraEarned).Add(allowancesEarned)))

	gross := earned.Add(adj.Allowance)
	net := gross.Sub(pay.Deductions).Sub(adj.Deduction)

	return Computation{
		WorkingDays:      workingDays,
		PresentDays:      tally.Present,
		HalfDays:         tally.HalfDay,
		TotalDays:        tally.Total,
		EffectiveDays:    effective,
		BasicEarned:      basicEarned,
		HRAEarned:        hraEarned,
		AllowancesEarned: allowancesEarned,
		Deductions:       pay.Deductions,
		AdHocAllowance:   adj.Allowance,
		AdHocDeduction:   adj.Deduction,
		GrossPay:         gross,
		NetPay:           net,
	}, nil
}
