package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document holds metadata only; the file bytes live in external object
// storage under StorageKey.
type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(200);not null"`
	Category   string    `gorm:"type:varchar(50)"`

	StorageKey  string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(100)"`
	SizeBytes   int64  `gorm:"not null;default:0"`

	UploadedBy uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
