package slot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteFile is the database filename inside the data directory.
const SQLiteFile = "wardrobe.db"

// sqlDialect holds the statements that differ between SQL backends.
type sqlDialect struct {
	driver string
	schema string
	read   string
	write  string
}

var sqliteDialect = sqlDialect{
	driver: "sqlite",
	schema: `
		CREATE TABLE IF NOT EXISTS slots (
			name       TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);`,
	read: `SELECT data FROM slots WHERE name = ?`,
	write: `INSERT INTO slots (name, data, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
}

var postgresDialect = sqlDialect{
	driver: "pgx",
	schema: `
		CREATE TABLE IF NOT EXISTS wardrobe_slots (
			name       TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	read: `SELECT data FROM wardrobe_slots WHERE name = $1`,
	write: `INSERT INTO wardrobe_slots (name, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
}

// SQLSlot stores the document as one row of a key/value table.
type SQLSlot struct {
	db      *sql.DB
	name    string
	dialect sqlDialect
}

// NewSQLiteSlot opens (or creates) <dir>/wardrobe.db with WAL mode and
// returns the slot row called name.
func NewSQLiteSlot(dir, name string) (*SQLSlot, error) {
	if dir == "" {
		return nil, fmt.Errorf("slot: sqlite backend needs a directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("slot: create data dir: %w", err)
	}

	db, err := openDB(sqliteDialect.driver, filepath.Join(dir, SQLiteFile))
	if err != nil {
		return nil, fmt.Errorf("slot: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("slot: pragma %q: %w", p, err)
		}
	}

	return newSQLSlot(db, name, sqliteDialect)
}

// NewPostgresSlot connects to databaseURL through pgx and returns the slot
// row called name.
func NewPostgresSlot(databaseURL, name string) (*SQLSlot, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("slot: postgres backend needs a database URL")
	}

	db, err := openDB(postgresDialect.driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("slot: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("slot: ping database: %w", err)
	}

	return newSQLSlot(db, name, postgresDialect)
}

func newSQLSlot(db *sql.DB, name string, d sqlDialect) (*SQLSlot, error) {
	if _, err := db.Exec(d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("slot: migration: %w", err)
	}
	return &SQLSlot{db: db, name: name, dialect: d}, nil
}

// Name returns the slot name.
func (s *SQLSlot) Name() string { return s.name }

// Read returns the stored document, or ErrAbsent when the row is missing.
func (s *SQLSlot) Read() ([]byte, error) {
	var data string
	err := s.db.QueryRow(s.dialect.read, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("slot: read %q: %w", s.name, err)
	}
	return []byte(data), nil
}

// Write upserts the row.
func (s *SQLSlot) Write(data []byte) error {
	if _, err := s.db.Exec(s.dialect.write, s.name, string(data)); err != nil {
		return fmt.Errorf("slot: write %q: %w", s.name, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLSlot) Close() error {
	return s.db.Close()
}
