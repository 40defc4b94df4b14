// Package directory provides the entity-directory collaborator.
//
// This file implements the SQLite-backed directory.
package directory

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteDirectory is a directory backed by an SQLite database file.
type SQLiteDirectory struct {
	db *sql.DB
}

// NewSQLiteDirectory opens (creating if necessary) an SQLite-backed
// directory. The DSN is the database file path; its parent directory is
// created when missing.
func NewSQLiteDirectory(opts ...Option) (*SQLiteDirectory, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteDirectory invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteDirectory DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		db.Close()
		return nil, err
	}

	slog.Debug("Running SQLite directory migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("SQLiteDirectory ready", "dsn", dsn)
	return &SQLiteDirectory{db: db}, nil
}

// Put inserts or replaces a directory entry.
func (d *SQLiteDirectory) Put(e Entry) error {
	_, err := d.db.Exec(
		`INSERT INTO directory_entries (name, office_hours, office) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET office_hours = excluded.office_hours, office = excluded.office`,
		normalizeName(e.Name), e.OfficeHours, e.Office,
	)
	if err != nil {
		slog.Error("SQLiteDirectory Put failed", "error", err, "name", e.Name)
		return fmt.Errorf("put directory entry: %w", err)
	}
	return nil
}

// Lookup returns the entry for a name, or ErrNotFound.
func (d *SQLiteDirectory) Lookup(name string) (Entry, error) {
	var e Entry
	row := d.db.QueryRow(
		`SELECT name, office_hours, office FROM directory_entries WHERE name = ?`,
		normalizeName(name),
	)
	if err := row.Scan(&e.Name, &e.OfficeHours, &e.Office); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, ErrNotFound
		}
		slog.Error("SQLiteDirectory Lookup failed", "error", err, "name", name)
		return Entry{}, fmt.Errorf("lookup directory entry: %w", err)
	}
	return e, nil
}

// Names returns all known entity names in sorted order.
func (d *SQLiteDirectory) Names() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM directory_entries ORDER BY name`)
	if err != nil {
		slog.Error("SQLiteDirectory Names failed", "error", err)
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
func (d *SQLiteDirectory) Close() error {
	return d.db.Close()
}
