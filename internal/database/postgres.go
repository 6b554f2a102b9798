package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// seatsCheckDDL adds the CHECK constraint once; a second run is a no-op.
const seatsCheckDDL = `DO $$ BEGIN
	ALTER TABLE showings ADD CONSTRAINT chk_showings_seats CHECK (available_seats >= 0);
EXCEPTION WHEN duplicate_object THEN NULL; END $$`

// OpenPostgres connects to Postgres through GORM and migrates the showings
// table.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.AutoMigrate(&model.Showing{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := ensureSeatsCheck(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureSeatsCheck keeps seat counts non-negative even for writers that
// bypass the service.
func ensureSeatsCheck(db *gorm.DB) error {
	if err := db.Exec(seatsCheckDDL).Error; err != nil {
		return fmt.Errorf("add seats check: %w", err)
	}
	return nil
}
