package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a visibility group that notifications can be targeted at.
// The two built-in role groups (IsRoleGroup=true) are joined automatically by
// every user of the matching role; regular groups are opt-in.
type Group struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"not null" json:"name"`
	IsRoleGroup bool           `gorm:"default:false" json:"is_role_group"`
	Role        Role           `gorm:"type:varchar(20)" json:"role,omitempty"` // set only on role groups

	// Relationships
	Members []UserGroup `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}
