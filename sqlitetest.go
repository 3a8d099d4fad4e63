// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sqlitetest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/uuid"
)

// MemoryToken is the database location reported for in-memory provisioners.
const MemoryToken = ":memory:"

// Config selects the source for a provisioned database. Exactly one of
// Database, Schema, or Memory must be set.
type Config struct {
	// Database is the path to an existing SQLite database file. The
	// provisioner copies it byte-for-byte to a fresh ephemeral file, so
	// tests can mutate the copy freely.
	Database string

	// Schema is the path to a SQL script executed into a fresh ephemeral
	// database. See the package documentation for the script format.
	Schema string

	// Memory provisions an in-memory database with no backing file.
	Memory bool

	// Options are connection pragmas merged over the driver defaults
	// (foreign keys on, 5s busy timeout). Names and values use the syntax
	// of the compiled-in driver.
	Options map[string]string

	// Logger for operational logging. Uses slog.Default() if nil.
	Logger *slog.Logger
}

// defaults returns a copy of cfg with default values applied.
func (cfg Config) defaults() Config {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// validate checks the mutual-exclusivity and existence constraints.
func (cfg Config) validate() error {
	sources := 0
	if cfg.Database != "" {
		sources++
	}
	if cfg.Schema != "" {
		sources++
	}
	if cfg.Memory {
		sources++
	}
	if sources == 0 {
		return &ConfigurationError{Reason: "one of Database, Schema, or Memory is required"}
	}
	if sources > 1 {
		return &ConfigurationError{Reason: "Database, Schema, and Memory are mutually exclusive"}
	}
	if cfg.Database != "" && !isRegularFile(cfg.Database) {
		return &ConfigurationError{Reason: fmt.Sprintf("%s: database file not found", cfg.Database)}
	}
	if cfg.Schema != "" && !isRegularFile(cfg.Schema) {
		return &ConfigurationError{Reason: fmt.Sprintf("%s: schema file not found", cfg.Schema)}
	}
	return nil
}

// connPragmas merges cfg.Options over the compiled-in driver defaults,
// sorted by name so the DSN is deterministic.
func (cfg Config) connPragmas() []pragma {
	merged := make(map[string]string, len(defaultPragmas)+len(cfg.Options))
	for _, p := range defaultPragmas {
		merged[p.name] = p.value
	}
	for name, value := range cfg.Options {
		merged[name] = value
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	pragmas := make([]pragma, 0, len(names))
	for _, name := range names {
		pragmas = append(pragmas, pragma{name: name, value: merged[name]})
	}
	return pragmas
}

// Provisioner materializes one disposable database on first use and hands
// out its location, connection string, and connection handle. Accessors are
// lazy and memoized. A provisioner is not safe for concurrent use; each
// test constructs its own.
type Provisioner struct {
	cfg Config

	// lazily initialized, in order: location, then dsn, then db
	location string
	dsn      string
	db       *sql.DB
}

// New returns a provisioner for the configured source. The database is not
// materialized until the first accessor call.
func New(cfg Config) (*Provisioner, error) {
	cfg = cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Provisioner{cfg: cfg}, nil
}

// ForTest returns a provisioner whose database lives for the duration of
// the test. Construction errors fail the test. Cleanup closes any handle
// opened via Conn and removes the ephemeral file.
func ForTest(tb testing.TB, cfg Config) *Provisioner {
	tb.Helper()
	p, err := New(cfg)
	if err != nil {
		tb.Fatalf("sqlitetest: %v", err)
	}
	tb.Cleanup(func() {
		if p.db != nil {
			p.db.Close()
		}
		if err := p.Close(); err != nil {
			tb.Errorf("sqlitetest: close: %v", err)
		}
	})
	return p
}

// Database materializes the database on first call and returns its
// location: MemoryToken for in-memory provisioners, otherwise the path of
// the ephemeral file. Intended mainly for diagnostics; most callers want
// Conn.
func (p *Provisioner) Database(ctx context.Context) (string, error) {
	if p.location != "" {
		return p.location, nil
	}

	switch {
	case p.cfg.Memory:
		p.cfg.Logger.Debug("DB mode: in-memory")
		p.location = MemoryToken
	case p.cfg.Database != "":
		path := ephemeralPath()
		p.cfg.Logger.Debug("DB mode: copy", "source", p.cfg.Database, "path", path)
		if err := copyFile(p.cfg.Database, path); err != nil {
			return "", err
		}
		p.location = path
	default:
		path := ephemeralPath()
		p.cfg.Logger.Debug("DB mode: schema", "schema", p.cfg.Schema, "path", path)
		if err := p.runSchema(ctx, path); err != nil {
			return "", err
		}
		p.location = path
	}

	return p.location, nil
}

// ConnString returns the connection string for the materialized database,
// triggering materialization on first call. The result is cached; repeated
// calls return the identical string.
func (p *Provisioner) ConnString(ctx context.Context) (string, error) {
	if p.dsn != "" {
		return p.dsn, nil
	}
	location, err := p.Database(ctx)
	if err != nil {
		return "", err
	}
	p.dsn = buildDSN(location, p.cfg.connPragmas())
	return p.dsn, nil
}

// Conn returns a connection handle for the materialized database. The first
// call opens the handle; later calls return the same one. The caller owns
// the handle and must close it; Close does not.
func (p *Provisioner) Conn(ctx context.Context) (*sql.DB, error) {
	if p.db != nil {
		return p.db, nil
	}

	dsn, err := p.ConnString(ctx)
	if err != nil {
		return nil, err
	}
	p.cfg.Logger.Debug("opening database", "dsn", dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, &ConnectionError{DSN: dsn, Err: err}
	}

	// SQLite works best with limited connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{DSN: dsn, Err: err}
	}

	p.db = db
	return p.db, nil
}

// Close removes the ephemeral database file and its WAL sidecars. It is a
// no-op for in-memory or never-materialized provisioners and is safe to
// call more than once. Handles returned by Conn are not closed.
func (p *Provisioner) Close() error {
	if p.location == "" || p.location == MemoryToken {
		return nil
	}

	// WAL mode creates sidecar files
	var firstErr error
	for _, suffix := range []string{"", "-shm", "-wal"} {
		name := p.location + suffix
		if !fileExists(name) {
			continue
		}
		if err := os.Remove(name); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("remove %s: %w", p.location, firstErr)
	}
	return nil
}

// ephemeralPath allocates a unique path for one disposable database.
func ephemeralPath() string {
	return filepath.Join(os.TempDir(), "sqlitetest-"+uuid.NewString()+".db")
}

// File system helpers

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
