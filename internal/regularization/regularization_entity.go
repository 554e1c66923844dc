package regularization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Regularization is a correction request for a missed or disputed
// check-out on a past day.
type Regularization struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Date       time.Time `gorm:"type:date;not null"`

	RequestedCheckOut string `gorm:"type:varchar(8);not null"`
	Reason            string `gorm:"type:varchar(500)"`

	Status     Status     `gorm:"type:varchar(20);not null;default:'Pending'"`
	ReviewedOn *time.Time `gorm:"type:date"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Regularization) TableName() string {
	return "regularizations"
}
