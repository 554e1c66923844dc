package employee

import "github.com/shopspring/decimal"

type SalaryStructure struct {
	Basic      decimal.Decimal `json:"basic" binding:"required"`
	HRA        decimal.Decimal `json:"hra"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
}

type BankAccount struct {
	Number   string `json:"number"`
	IFSC     string `json:"ifsc"`
	BankName string `json:"bank_name"`
}

type CreateEmployeeRequest struct {
	FullName      string          `json:"full_name" binding:"required"`
	Mobile        string          `json:"mobile"`
	Email         string          `json:"email" binding:"required,email"`
	Department    string          `json:"department"`
	Designation   string          `json:"designation"`
	DateOfJoining string          `json:"date_of_joining" binding:"required"`
	Salary        SalaryStructure `json:"salary" binding:"required"`
	BankAccount   BankAccount     `json:"bank_account"`
}

type UpdateEmployeeRequest struct {
	FullName      string          `json:"full_name" binding:"required"`
	Mobile        string          `json:"mobile"`
	Email         string          `json:"email" binding:"required,email"`
	Department    string          `json:"department"`
	Designation   string          `json:"designation"`
	DateOfJoining string          `json:"date_of_joining" binding:"required"`
	Salary        SalaryStructure `json:"salary" binding:"required"`
	BankAccount   BankAccount     `json:"bank_account"`
}

type EmployeeResponse struct {
	ID                string          `json:"id"`
	EmployeeNumber    string          `json:"employee_number"`
	FullName          string          `json:"full_name"`
	Mobile            string          `json:"mobile,omitempty"`
	Email             string          `json:"email"`
	Department        string          `json:"department,omitempty"`
	Designation       string          `json:"designation,omitempty"`
	DateOfJoining     string          `json:"date_of_joining"`
	Salary            SalaryStructure `json:"salary"`
	BankAccount       BankAccount     `json:"bank_account"`
	LeaveBalance      decimal.Decimal `json:"leave_balance"`
	LeaveBalanceMonth *string         `json:"leave_balance_month,omitempty"`
}
