package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification represents a board notification.
// A notification with no NotificationGroup rows is public; one with rows is
// restricted to the union of the listed groups.
type Notification struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"not null" json:"content"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	CreatedByID uint           `gorm:"not null;index" json:"created_by_id"`

	// Relationships
	CreatedBy    User                `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	TargetGroups []NotificationGroup `gorm:"foreignKey:NotificationID" json:"target_groups,omitempty"`
}
