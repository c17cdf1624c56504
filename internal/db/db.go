package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/client-followup/internal/config"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

// NewDB opens the postgres pool. Schema changes are left to Migrate.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the schema plus the uniqueness indexes that back the
// one-open-appointment and one-interaction-per-appointment rules.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.ClientField{},
		&models.Tag{},
		&models.Client{},
		&models.ClientFieldValue{},
		&models.ClientTag{},
		&models.Appointment{},
		&models.Interaction{},
		&models.ClientHistory{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_one_open
        ON appointments (client_id)
        WHERE status = 'OPEN'
    `).Error; err != nil {
		return fmt.Errorf("open appointment index: %w", err)
	}

	return nil
}
