package db

import (
	"beezen/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.SyncStatus{},
		&models.Ticket{},
		&models.User{},
		&models.SyncRun{},
	)
}
