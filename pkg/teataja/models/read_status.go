package models

import "time"

// ReadStatus tracks whether a user has read a notification.
// Rows are created lazily on the first mark; the unique index guarantees at
// most one row per (user, notification) pair. Absence of a row means unread.
type ReadStatus struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_notification_read" json:"user_id"`
	NotificationID uint      `gorm:"not null;uniqueIndex:idx_user_notification_read" json:"notification_id"`
	Read           bool      `gorm:"default:false" json:"read"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
