package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sentinel errors returned by the database client. Handlers map these to
// HTTP statuses; a row owned by another user is reported as ErrNotFound so
// its existence is never leaked.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailRequired = errors.New("email address is required")
	ErrEmailExists   = errors.New("email already registered")
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&AuthToken{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WaitForDatabase blocks until the database at dbpath answers a ping,
// probing at the given interval. Connectivity failures are never fatal;
// the loop only ends when the database is reachable or ctx is cancelled.
func WaitForDatabase(ctx context.Context, dbpath string, interval time.Duration) error {
	log.Info("waiting for database...")
	for {
		if pingDatabase(ctx, dbpath) {
			log.Info("database available")
			return nil
		}
		log.Info("database unavailable, waiting...", "interval", interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func pingDatabase(ctx context.Context, dbpath string) bool {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	defer sqlDB.Close() //nolint: errcheck
	return sqlDB.PingContext(ctx) == nil
}
