package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user's system-wide role
type Role string

const (
	RoleProgramManager Role = "program_manager"
	RoleStudent        Role = "student"
)

// Valid reports whether r is one of the two known roles
func (r Role) Valid() bool {
	return r == RoleProgramManager || r == RoleStudent
}

// User represents a user in the system
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null" json:"role"`

	// Relationships
	GroupMemberships []UserGroup `gorm:"foreignKey:UserID" json:"group_memberships,omitempty"`
}
