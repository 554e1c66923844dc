package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollRecord is one employee's settled month. The (employee, month)
// key makes reprocessing an overwrite, never a duplicate.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_month"`
	Month      string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_employee_month"`

	WorkingDays   int             `gorm:"not null"`
	PresentDays   int             `gorm:"not null"`
	HalfDays      int             `gorm:"not null"`
	TotalDays     int             `gorm:"not null"`
	EffectiveDays decimal.Decimal `gorm:"type:numeric(5,1);not null"`

	BasicEarned      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	HRAEarned        decimal.Decimal `gorm:"column:hra_earned;type:numeric(12,2);not null"`
	AllowancesEarned decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Deductions       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AdHocAllowance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	AdHocDeduction   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	GrossPay         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetPay           decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	PayslipPath *string    `gorm:"type:varchar(255)"`
	GeneratedAt *time.Time `gorm:""`

	ProcessedOn time.Time `gorm:"not null"`
	ProcessedBy uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}
