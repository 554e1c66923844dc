package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	FullName       string    `gorm:"type:varchar(120);not null"`
	Mobile         string    `gorm:"type:varchar(20)"`
	Email          string    `gorm:"type:varchar(120);uniqueIndex"`
	Department     string    `gorm:"type:varchar(80)"`
	Designation    string    `gorm:"type:varchar(80)"`
	DateOfJoining  time.Time `gorm:"type:date"`

	// Standing monthly salary structure; the payroll engine prorates
	// the earning components, deductions stay flat.
	SalaryBasic      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SalaryHRA        decimal.Decimal `gorm:"column:salary_hra;type:numeric(12,2);not null;default:0"`
	SalaryAllowances decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SalaryDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	BankAccountNumber string `gorm:"type:varchar(34)"`
	BankIFSC          string `gorm:"column:bank_ifsc;type:varchar(16)"`
	BankName          string `gorm:"type:varchar(80)"`

	// Leave ledger state. LeaveBalanceCurrent never goes negative;
	// LeaveBalanceMonth is the last "YYYY-MM" the balance was accrued
	// for, nil until the first approval touches it.
	LeaveBalanceCurrent decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	LeaveBalanceMonth   *string         `gorm:"type:varchar(7)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
