package payroll

import "github.com/shopspring/decimal"

type AdjustmentRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	Allowance  decimal.Decimal `json:"allowance"`
	Deduction  decimal.Decimal `json:"deduction"`
}

type ProcessPayrollRequest struct {
	Month string `json:"month" binding:"required"`
	// WorkingDays overrides the calendar-derived value when positive.
	WorkingDays int                 `json:"working_days"`
	Adjustments []AdjustmentRequest `json:"adjustments" binding:"dive"`
}

type PayrollResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	EmployeeNumber string          `json:"employee_number,omitempty"`
	Month          string          `json:"month"`
	WorkingDays    int             `json:"working_days"`
	PresentDays    int             `json:"present_days"`
	HalfDays       int             `json:"half_days"`
	EffectiveDays  decimal.Decimal `json:"effective_days"`

	BasicEarned      decimal.Decimal `json:"basic_earned"`
	HRAEarned        decimal.Decimal `json:"hra_earned"`
	AllowancesEarned decimal.Decimal `json:"allowances_earned"`
	Deductions       decimal.Decimal `json:"deductions"`
	AdHocAllowance   decimal.Decimal `json:"ad_hoc_allowance"`
	AdHocDeduction   decimal.Decimal `json:"ad_hoc_deduction"`
	GrossPay         decimal.Decimal `json:"gross_pay"`
	NetPay           decimal.Decimal `json:"net_pay"`

	ProcessedOn string `json:"processed_on"`
}

type ProcessPayrollResponse struct {
	Month       string            `json:"month"`
	WorkingDays int               `json:"working_days"`
	Employees   int               `json:"employees"`
	Records     []PayrollResponse `json:"records"`
}
