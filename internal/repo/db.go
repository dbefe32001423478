// Package repo implements the data persistence layer for stored agent
// outputs, backed by GORM. This file contains database bootstrapping: driver
// selection (pure Go SQLite or Postgres), the bounded startup connect retry,
// and idempotent schema creation.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-content-backend/internal/config"
	"github.com/tbourn/go-content-backend/internal/domain"
)

// connState models the startup connection lifecycle: the process is
// Connecting until an open succeeds (Ready) or the attempt budget is spent
// (Failed). Failed is terminal; the caller is expected to exit.
type connState int

const (
	stateConnecting connState = iota
	stateReady
	stateFailed
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist (instead of the
	// opaque sqlite "out of memory (14)").
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// OpenPostgres opens a Postgres database and tunes the connection pool.
func OpenPostgres(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// Open selects the driver from config, opens the database, installs the OTel
// tracing plugin, and creates the schema. One call yields a fully usable
// handle or an error.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = OpenPostgres(cfg)
	default:
		db, err = OpenSQLite(cfg.Path)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Connect drives the bounded startup retry around open. It attempts open up
// to cfg.ConnectAttempts times with cfg.ConnectBackoff between attempts and
// returns the handle from the first success. Exhausting the budget returns
// the last error; there is no runtime re-connect beyond this loop.
//
// The open argument is injected so the retry policy can be exercised without
// a real database.
func Connect(cfg config.DBConfig, open func() (*gorm.DB, error)) (*gorm.DB, error) {
	var (
		db      *gorm.DB
		lastErr error
	)

	state := stateConnecting
	for attempt := 1; state == stateConnecting; attempt++ {
		db, lastErr = open()
		if lastErr == nil {
			state = stateReady
			break
		}
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("attempts_max", cfg.ConnectAttempts).
			Msg("database connect failed")
		if attempt >= cfg.ConnectAttempts {
			state = stateFailed
			break
		}
		time.Sleep(cfg.ConnectBackoff)
	}

	if state != stateReady {
		return nil, fmt.Errorf("connect database after %d attempts: %w", cfg.ConnectAttempts, lastErr)
	}
	return db, nil
}

// AutoMigrate creates the agent_outputs table when absent. It is safe to run
// on every startup; there are no versioned migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Content{})
}
