package model

import (
	"time"

	"gorm.io/gorm"
)

// LeaveType is an admin-managed catalogue entry for the kinds of leave
// employees can request.
type LeaveType struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(50);uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
