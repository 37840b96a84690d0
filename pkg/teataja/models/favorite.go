package models

import "time"

// Favorite marks a notification as favorited by a user. Existence-only set
// membership: inserts and deletes are idempotent at the handler layer.
type Favorite struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_notification_fav" json:"user_id"`
	NotificationID uint      `gorm:"not null;uniqueIndex:idx_user_notification_fav" json:"notification_id"`
}
