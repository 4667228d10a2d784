package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/config"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.AvailabilityBlock{},
		&models.Referral{},
		&models.ReferralPayout{},
		&models.FinancialRecord{},
		&models.Product{},
		&models.Sale{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Write-time booking guard: two scheduled appointments for the same
	// barber and day must never hold overlapping minute ranges, regardless
	// of what the availability pre-check saw.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to install btree_gist extension: %v", err)
	}
	if err := db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    barber_id WITH =,
                    date WITH =,
                    int4range(start_minutes, end_minutes) WITH &&
                )
                WHERE (status = 'scheduled');
            END IF;
        END $$
    `).Error; err != nil {
		log.Fatalf("failed to install appointment overlap constraint: %v", err)
	}

	return db
}
