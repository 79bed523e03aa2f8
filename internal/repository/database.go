package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrDatabaseNotInitialized is returned when a repository is used without an open connection.
var ErrDatabaseNotInitialized = errors.New("database connection is not initialized")

// OpenSQLite opens (creating if needed) the SQLite database at path and migrates the schema.
func OpenSQLite(path string, logger zerolog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newGormLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.AutoMigrate(&models.LocationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("SQLite database ready")
	return db, nil
}

// CloseDB closes the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter adapts zerolog to gorm's logger.Writer. gorm only emits through it at Warn level
// and above (slow queries, failed statements), so everything is logged as a warning.
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

// newGormLogger routes gorm warnings and errors through zerolog.
func newGormLogger(logger zerolog.Logger) gormlogger.Interface {
	w := gormWriter{logger: logger.With().Str("component", "gorm").Logger()}
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
