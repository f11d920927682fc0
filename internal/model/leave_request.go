package model

import (
	"time"

	"gorm.io/gorm"
)

// Leave request status vocabulary. The mixed casing is intentional: the
// default is lowercase while the decision actions write capitalized
// values, and clients match on the exact strings.
const (
	StatusPending  = "pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// LeaveRequest is a leave application owned by one user. Dates travel as
// YYYY-MM-DD strings and are stored as DATE columns.
type LeaveRequest struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	LeaveType string         `json:"leave_type" gorm:"type:varchar(50)"`
	StartDate string         `json:"start_date" gorm:"type:date"`
	EndDate   string         `json:"end_date" gorm:"type:date"`
	Reason    string         `json:"reason" gorm:"type:text"`
	Status    string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
