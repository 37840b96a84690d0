package models

import (
	"time"

	"gorm.io/gorm"
)

// Template is a reusable notification blueprint. Title and content may embed
// {variable} placeholders filled in at use time. Templates are private to
// their creator.
type Template struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"not null" json:"name"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"not null" json:"content"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	CreatedByID uint           `gorm:"not null;index" json:"created_by_id"`

	// Relationships
	TargetGroups []TemplateGroup `gorm:"foreignKey:TemplateID" json:"target_groups,omitempty"`
}
