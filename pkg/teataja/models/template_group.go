package models

import "time"

// TemplateGroup stores a template's default target groups, same shape as
// NotificationGroup
type TemplateGroup struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	TemplateID uint      `gorm:"not null;uniqueIndex:idx_template_group" json:"template_id"`
	GroupID    uint      `gorm:"not null;uniqueIndex:idx_template_group" json:"group_id"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
