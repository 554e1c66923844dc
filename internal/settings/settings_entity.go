package settings

import (
	"time"

	"github.com/google/uuid"
)

// CompanySettings is a single-row table; the fixed id keeps every
// writer on the same row.
type CompanySettings struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName        string    `gorm:"type:varchar(120);not null"`
	DefaultWorkingDays int       `gorm:"not null;default:26"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanySettings) TableName() string {
	return "company_settings"
}

// SettingsRowID pins the singleton row.
var SettingsRowID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
