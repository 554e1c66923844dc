package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the closed set of per-day attendance outcomes. The values
// are the persisted strings; every switch over Status must be exhaustive.
type Status string

const (
	StatusPresent Status = "Present"
	StatusHalfDay Status = "Half Day"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent:
		return true
	default:
		return false
	}
}

type Attendance struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`

	// Wall-clock times of day; no date component is carried, a check-out
	// reading earlier than the check-in means a next-day check-out.
	CheckIn  *string `gorm:"column:check_in;type:varchar(8)"`
	CheckOut *string `gorm:"column:check_out;type:varchar(8)"`

	Status    Status         `gorm:"column:status;type:varchar(20);not null;default:'Present'"`
	Source    string         `gorm:"column:source;type:varchar(30);not null;default:'SELF'"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee  *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

const (
	SourceSelf   = "SELF"
	SourceManual = "MANUAL"
)

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
