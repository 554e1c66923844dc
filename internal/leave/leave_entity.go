package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Type is a free-form leave code chosen by the tenant (CASUAL, SICK,
// "CL", ...). Only HALF_DAY carries special semantics: a half session
// on a single day that upgrades attendance at check-out.
type Type string

const (
	TypeCasual  Type = "CASUAL"
	TypeSick    Type = "SICK"
	TypeEarned  Type = "EARNED"
	TypeHalfDay Type = "HALF_DAY"
)

type Session string

const (
	SessionFullDay    Session = "FULL_DAY"
	SessionFirstHalf  Session = "FIRST_HALF"
	SessionSecondHalf Session = "SECOND_HALF"
)

func (s Session) Valid() bool {
	switch s {
	case SessionFullDay, SessionFirstHalf, SessionSecondHalf:
		return true
	default:
		return false
	}
}

// Status transitions only Pending -> Approved or Pending -> Rejected;
// reviewed requests are immutable.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       Type      `gorm:"type:varchar(20);not null"`
	Session    Session   `gorm:"type:varchar(20);not null;default:'FULL_DAY'"`
	StartDate  time.Time `gorm:"type:date;not null"`
	EndDate    time.Time `gorm:"type:date;not null"`
	Reason     string    `gorm:"type:varchar(500)"`

	// DaysCount is fixed at apply time: 1.0 for a full-day session,
	// 0.5 for a half session.
	DaysCount decimal.Decimal `gorm:"type:numeric(4,1);not null"`

	Status Status `gorm:"type:varchar(20);not null;default:'Pending'"`

	// IsPaid is set only on approval: whether the balance covered the
	// request at that moment. Informational; payroll does not read it.
	IsPaid *bool `gorm:"column:is_paid"`

	RequestedOn time.Time  `gorm:"type:date;not null"`
	ReviewedOn  *time.Time `gorm:"type:date"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Leave) TableName() string {
	return "leaves"
}
