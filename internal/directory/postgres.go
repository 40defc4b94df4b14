// Package directory provides the entity-directory collaborator.
//
// This file implements the PostgreSQL-backed directory.
package directory

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresDirectory is a directory backed by a PostgreSQL database.
type PostgresDirectory struct {
	db *sql.DB
}

// NewPostgresDirectory opens a Postgres-backed directory based on the
// provided options.
func NewPostgresDirectory(opts ...Option) (*PostgresDirectory, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresDirectory invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresDirectory DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		db.Close()
		return nil, err
	}

	slog.Debug("Running Postgres directory migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("PostgresDirectory ready")
	return &PostgresDirectory{db: db}, nil
}

// Put inserts or replaces a directory entry.
func (d *PostgresDirectory) Put(e Entry) error {
	_, err := d.db.Exec(
		`INSERT INTO directory_entries (name, office_hours, office) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET office_hours = EXCLUDED.office_hours, office = EXCLUDED.office`,
		normalizeName(e.Name), e.OfficeHours, e.Office,
	)
	if err != nil {
		slog.Error("PostgresDirectory Put failed", "error", err, "name", e.Name)
		return fmt.Errorf("put directory entry: %w", err)
	}
	return nil
}

// Lookup returns the entry for a name, or ErrNotFound.
func (d *PostgresDirectory) Lookup(name string) (Entry, error) {
	var e Entry
	row := d.db.QueryRow(
		`SELECT name, office_hours, office FROM directory_entries WHERE name = $1`,
		normalizeName(name),
	)
	if err := row.Scan(&e.Name, &e.OfficeHours, &e.Office); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, ErrNotFound
		}
		slog.Error("PostgresDirectory Lookup failed", "error", err, "name", name)
		return Entry{}, fmt.Errorf("lookup directory entry: %w", err)
	}
	return e, nil
}

// Names returns all known entity names in sorted order.
func (d *PostgresDirectory) Names() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM directory_entries ORDER BY name`)
	if err != nil {
		slog.Error("PostgresDirectory Names failed", "error", err)
		return nil, fmt.Errorf("list directory names: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan directory name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Close releases the underlying database handle.
func (d *PostgresDirectory) Close() error {
	return d.db.Close()
}
