// Package spatialite is the embedded file-backed spatial backend. SQLite
// has no native spatial support, so every new connection loads the
// mod_spatialite extension and initialises the spatial metadata tables
// before it is handed out. Both steps are idempotent, which makes them safe
// across pooled connections.
package spatialite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/samirrijal/puntu/internal/core/domain"
)

const (
	driverName = "spatialite"

	dirPermissions    = 0750
	connectionTimeout = 5 * time.Second
)

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		Extensions: []string{"mod_spatialite"},
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// No-op when the metadata tables already exist.
			_, err := conn.Exec("SELECT InitSpatialMetaData(1)", nil)
			if err != nil {
				return fmt.Errorf("init spatial metadata: %w", err)
			}
			return nil
		},
	})
}

// Config contains embedded-engine options.
type Config struct {
	// Path is the filesystem path to the database file. The directory is
	// created if it does not exist.
	Path string

	// BusyTimeout is the maximum time to wait for the database lock, in
	// seconds.
	BusyTimeout int
}

// DSN builds the go-sqlite3 connection string with the pragmas the store
// relies on: WAL for concurrent readers and a busy timeout under
// contention.
func (c Config) DSN() string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on",
		c.Path, c.BusyTimeout*1000)
}

// DB wraps a sql.DB backed by SQLite with SpatiaLite loaded.
type DB struct {
	*sql.DB
	path string
}

// Open connects to the database file, loading mod_spatialite on the way.
// A missing extension fails Open; there is no fallback to a connection
// without spatial functions.
func Open(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating database directory: %v", domain.ErrStorageUnavailable, err)
	}

	sqlDB, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStorageUnavailable, err)
	}

	// SQLite supports a single writer; keep the pool small.
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db := &DB{DB: sqlDB, path: cfg.Path}

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: verifying connection: %v", domain.ErrStorageUnavailable, err)
	}

	return db, nil
}

// Ping verifies the connection and, because the connect hook runs on every
// new connection, that the spatial extension loads.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	return db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// Path returns the filesystem path to the database file.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database.
func (db *DB) Close() error {
	return db.DB.Close()
}
