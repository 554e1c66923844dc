package announcement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Body        string    `gorm:"type:text;not null"`
	PublishedOn time.Time `gorm:"type:date;not null"`
	CreatedBy   uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Announcement) TableName() string {
	return "announcements"
}
