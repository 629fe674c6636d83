// Package postgres opens the GORM connection shared by the Postgres-backed
// adapters.
package postgres

import (
	"errors"
	"fmt"
	"log/slog"

	"starmap/internal/adapters/out/postgres/objectstore"
	"starmap/internal/pkg/errs"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionSettings describes where the database lives.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (s ConnectionSettings) Validate() error {
	var err error
	if s.Host == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("host"))
	}
	if s.Port == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("port"))
	}
	if s.User == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("user"))
	}
	if s.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	return err
}

// DSN renders the settings in libpq key/value form.
func (s ConnectionSettings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, sslMode)
}

// Open connects to the database and migrates the object table.
func Open(settings ConnectionSettings, logger *slog.Logger) (*gorm.DB, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("database settings: %w", err)
	}

	db, err := gorm.Open(postgresdriver.Open(settings.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := objectstore.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate objects: %w", err)
	}

	logger.Info("database ready", "host", settings.Host, "database", settings.Name)
	return db, nil
}
