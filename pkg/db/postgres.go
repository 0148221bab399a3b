package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

var (
	shared    *sql.DB
	sharedErr error
	once      sync.Once
)

// Connect opens a new pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// Shared returns the process-wide pool, opening it on first use. Later calls
// return the first result regardless of the URL they pass.
func Shared(ctx context.Context, databaseURL string) (*sql.DB, error) {
	once.Do(func() {
		shared, sharedErr = Connect(ctx, databaseURL)
	})
	return shared, sharedErr
}

// Close releases the shared pool if it was opened.
func Close() error {
	if shared == nil {
		return nil
	}
	return shared.Close()
}
