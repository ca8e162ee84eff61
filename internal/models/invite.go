package models

import "time"

// InviteCode grants enrollment eligibility for one course.
// Code is compared case-insensitively.
type InviteCode struct {
	Base
	Code        string     `gorm:"index;size:64;not null" json:"code"`
	CourseID    string     `gorm:"column:course_id;size:64;not null" json:"course"`
	MaxUses     int        `json:"max_uses"`
	CurrentUses int        `json:"current_uses"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsActive    bool       `json:"is_active"`
	AutoApprove bool       `json:"auto_approve"`
	CreatedBy   string     `gorm:"size:64" json:"created_by"`
}

func (InviteCode) TableName() string { return "invite_codes" }
