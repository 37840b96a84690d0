package models

import "time"

// NotificationGroup restricts a notification to a target group
type NotificationGroup struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	NotificationID uint      `gorm:"not null;uniqueIndex:idx_notification_group" json:"notification_id"`
	GroupID        uint      `gorm:"not null;uniqueIndex:idx_notification_group" json:"group_id"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
