package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid;index"`

	LastLoginAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
