package conversion

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/forgelabs/unitforge/internal/registry"
)

// schema contains the DDL executed on open. IF NOT EXISTS makes it safe
// to run against an existing artifact.
const schema = `
CREATE TABLE IF NOT EXISTS units (
    name     TEXT PRIMARY KEY,
    identity TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS facts (
    a      TEXT NOT NULL,
    b      TEXT NOT NULL,
    result TEXT NOT NULL,
    is_mul INTEGER NOT NULL,
    PRIMARY KEY (a, b, result, is_mul)
);
`

// Store persists a resolved catalog snapshot into a SQLite file, the
// queryable form of the export artifact. Generators that prefer SQL
// over parsing TOML read this directly.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite artifact at path and ensures
// the schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening facts db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing facts db schema: %w", err)
	}
	return &Store{db: db}, nil
}

// WriteSnapshot replaces the stored units and facts with the given
// resolution result, atomically within one transaction.
func (s *Store) WriteSnapshot(ctx context.Context, reg *registry.Registry, facts []Fact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"facts", "units"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, name := range reg.Names() {
		id, _ := reg.Identity(name)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO units (name, identity) VALUES (?, ?)", name, id.Key()); err != nil {
			return fmt.Errorf("inserting unit %s: %w", name, err)
		}
	}

	for _, f := range facts {
		isMul := 0
		if f.Mul {
			isMul = 1
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO facts (a, b, result, is_mul) VALUES (?, ?, ?, ?)",
			f.A, f.B, f.Result, isMul); err != nil {
			return fmt.Errorf("inserting fact %s %s %s: %w", f.A, f.B, f.Result, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Counts returns the number of stored units and facts.
func (s *Store) Counts(ctx context.Context) (units, facts int, err error) {
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM units").Scan(&units); err != nil {
		return 0, 0, fmt.Errorf("counting units: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM facts").Scan(&facts); err != nil {
		return 0, 0, fmt.Errorf("counting facts: %w", err)
	}
	return units, facts, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
