package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/rental-platform/internal/config"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsDev() {
		level = logger.Info
	}

	if dsn, ok := strings.CutPrefix(cfg.DBUrl, "sqlite://"); ok {
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		log.Info("database connected", "driver", db.Dialector.Name())
		return db, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(level),
		NowFunc:     utcNow,
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

	log.Info("database connected", "driver", db.Dialector.Name())
	return db, nil
}

// OpenSQLite opens a single-connection SQLite database, used for local runs
// ("sqlite://" URLs) and repository tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: utcNow,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}

var tables = []any{
	&models.Property{},
	&models.ShortTermRental{},
	&models.LongTermRental{},
	&models.PropertyAvailability{},
	&models.BookingRequest{},
	&models.ViewingSchedule{},
	&models.RentalApplication{},
	&models.Contract{},
	&models.CommissionTracking{},
	&models.AuditLog{},
}

// Migrate creates the schema. On PostgreSQL it also installs the
// constraints that AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, stmt := range postgresConstraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate constraints: %w", err)
		}
	}
	return nil
}

var postgresConstraints = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	addConstraint("booking_requests", "booking_requests_dates_ordered",
		`CHECK (check_out_date > check_in_date)`),
	addConstraint("booking_requests", "booking_requests_no_overlap",
		`EXCLUDE USING gist (
			property_id WITH =,
			daterange(check_in_date, check_out_date, '[)') WITH &&
		) WHERE (booking_status IN ('pending', 'confirmed'))`),
	addConstraint("viewing_schedules", "viewing_schedules_duration_range",
		`CHECK (duration_minutes BETWEEN 15 AND 120)`),
	addConstraint("commission_tracking", "commission_tracking_rate_range",
		`CHECK (commission_rate >= 0 AND commission_rate <= 1)`),
	addConstraint("contracts", "contracts_lease_dates_ordered",
		`CHECK (lease_end_date > lease_start_date)`),
}

func addConstraint(table, name, definition string) string {
	return fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s %s;
	END IF;
END $$`, name, table, name, definition)
}
