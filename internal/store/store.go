// Package store persists lookup history in a local SQLite database.
//
// Every successful lookup appends one row, which powers the
// `flightcal history` command. The database lives under the user cache
// directory by default and is created (with schema migration) on first
// open.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// LookupRecord is one row of lookup history.
type LookupRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	// FlightNumber is the canonical designator that was looked up.
	FlightNumber string `gorm:"index"`

	// Date is the requested departure date in YYYY-MM-DD form.
	Date string

	// Matches is the number of candidate flights returned.
	Matches int

	// Guess is true when the candidates were reconstructed from schedule
	// history rather than matched on the requested date.
	Guess bool
}

// Store wraps the gorm handle for the history database.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the history database at the given path, creating
// parent directories and migrating the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to create history database directory %s", dir), err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// gorm logs slow queries to stdout by default, which corrupts
		// the CLI's machine-readable output. Structured logging happens
		// at the call sites instead.
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to open history database %s", path), err)
	}

	if err := db.AutoMigrate(&LookupRecord{}); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to migrate history database schema", err)
	}

	return &Store{db: db}, nil
}

// RecordLookup appends one history row. Satisfies schedule.Recorder.
func (s *Store) RecordLookup(flightNumber string, date time.Time, matches int, guess bool) error {
	record := LookupRecord{
		FlightNumber: flightNumber,
		Date:         date.Format(model.DateFormat),
		Matches:      matches,
		Guess:        guess,
	}
	return s.db.Create(&record).Error
}

// Recent returns up to limit history rows, newest first.
func (s *Store) Recent(limit int) ([]LookupRecord, error) {
	var records []LookupRecord
	result := s.db.Order("created_at desc").Limit(limit).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
