package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medidesk/frontdesk/internal/config"
	"github.com/medidesk/frontdesk/internal/domain"
	"github.com/medidesk/frontdesk/internal/domain/appointment"
	"github.com/medidesk/frontdesk/internal/domain/doctor"
	"github.com/medidesk/frontdesk/internal/domain/patient"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:          true,
		DisableAutomaticPing: false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&patient.Patient{},
		&doctor.Doctor{},
		&appointment.Appointment{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// createConstraints installs the referential rules the record store must
// enforce: deleting a patient or doctor removes every appointment that
// references it, so no orphaned appointment ever persists.
func createConstraints(db *gorm.DB) error {
	constraints := []struct {
		name  string
		query string
	}{
		{
			name: "fk_appointments_patient",
			query: `ALTER TABLE appointments
				ADD CONSTRAINT fk_appointments_patient
				FOREIGN KEY (patient_id) REFERENCES patients (id)
				ON DELETE CASCADE`,
		},
		{
			name: "fk_appointments_doctor",
			query: `ALTER TABLE appointments
				ADD CONSTRAINT fk_appointments_doctor
				FOREIGN KEY (doctor_id) REFERENCES doctors (id)
				ON DELETE CASCADE`,
		},
	}

	for _, c := range constraints {
		if db.Migrator().HasConstraint(&appointment.Appointment{}, c.name) {
			continue
		}
		if err := db.Exec(c.query).Error; err != nil {
			return fmt.Errorf("creating constraint %s: %w", c.name, err)
		}
	}

	return nil
}
