// Package directory provides the entity-directory collaborator: it resolves
// a recognized entity name (a professor) to its display data (office hours
// and office location).
//
// The dialogue engine never talks to the directory itself; domain-script
// handlers that render slots do. Backends are interchangeable: a static
// in-memory directory plus SQLite and PostgreSQL stores.
package directory

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a name has no directory entry.
var ErrNotFound = errors.New("directory entry not found")

// Entry is the display data associated with one entity name.
type Entry struct {
	Name        string `json:"name"`
	OfficeHours string `json:"office_hours"`
	Office      string `json:"office"`
}

// Directory resolves entity names to display data.
type Directory interface {
	// Lookup returns the entry for a name, or ErrNotFound.
	Lookup(name string) (Entry, error)
	// Names returns all known entity names in sorted order.
	Names() ([]string, error)
}

// Opts holds backend configuration collected from Options.
type Opts struct {
	// DSN is the data source name: a file path for SQLite, a connection
	// string for Postgres.
	DSN string
}

// Option configures a directory backend.
type Option func(*Opts)

// WithDSN sets the backend's data source name.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// StaticDirectory is a simple in-memory directory keyed by lower-cased name.
type StaticDirectory struct {
	entries map[string]Entry
}

// NewStaticDirectory creates an in-memory directory from the given entries.
func NewStaticDirectory(entries ...Entry) *StaticDirectory {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[strings.ToLower(e.Name)] = e
	}
	return &StaticDirectory{entries: m}
}

// Lookup returns the entry for a name, or ErrNotFound.
func (d *StaticDirectory) Lookup(name string) (Entry, error) {
	e, ok := d.entries[strings.ToLower(name)]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Names returns all known entity names in sorted order.
func (d *StaticDirectory) Names() ([]string, error) {
	names := make([]string, 0, len(d.entries))
	for n := range d.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
