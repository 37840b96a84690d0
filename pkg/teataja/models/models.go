package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: User and Group must be migrated before the association tables that
// reference them
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&UserGroup{},
		&Notification{},
		&NotificationGroup{},
		&ReadStatus{},
		&Favorite{},
		&Template{},
		&TemplateGroup{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
