package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values stored on a profile
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Profile attaches an application role to a user. Exactly one profile
// exists per user; admin-ness is decided by Role alone.
type Profile struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Role      string         `json:"role" gorm:"type:varchar(10);not null;default:'employee'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
