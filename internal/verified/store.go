package verified

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump when the schema
// changes; existing databases with another version are rejected.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created with a different
// schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists the verified-person table in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the verified database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d", ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

const personColumns = "egoid, spouse, mother, father, children, siblings, cousins, niblings, grandchildren"

// Get fetches one person by ego id, nil when absent.
func (s *Store) Get(ctx context.Context, egoid string) (*Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM verified_persons WHERE egoid = ?`, egoid)
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

// All returns every person ordered by numeric ego id.
func (s *Store) All(ctx context.Context) ([]*Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personColumns+` FROM verified_persons ORDER BY CAST(egoid AS INTEGER), egoid`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var people []*Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// Upsert writes one person row.
func (s *Store) Upsert(ctx context.Context, p *Person) error {
	if p == nil || p.EgoID == "" {
		return errors.New("person missing ego id")
	}
	return s.upsert(ctx, s.db, p)
}

// UpsertAll writes every person in one transaction; the batch commits
// fully or not at all.
func (s *Store) UpsertAll(ctx context.Context, people []*Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range people {
		if p == nil || p.EgoID == "" {
			return errors.New("person missing ego id")
		}
		if err := s.upsert(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) upsert(ctx context.Context, db execer, p *Person) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO verified_persons (`+personColumns+`, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(egoid) DO UPDATE SET
             spouse = excluded.spouse, mother = excluded.mother, father = excluded.father,
             children = excluded.children, siblings = excluded.siblings, cousins = excluded.cousins,
             niblings = excluded.niblings, grandchildren = excluded.grandchildren,
             updated_at = excluded.updated_at`,
		p.EgoID, p.Spouse, p.Mother, p.Father,
		JoinIDs(p.Children), JoinIDs(p.Siblings), JoinIDs(p.Cousins),
		JoinIDs(p.Niblings), JoinIDs(p.Grandchildren),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert person %s: %w", p.EgoID, err)
	}
	return nil
}

// Count returns the number of verified persons.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM verified_persons`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return count, nil
}

// NextEgoID returns one past the highest numeric ego id in the table, 1
// for an empty table. Non-numeric ids are ignored for seeding.
func (s *Store) NextEgoID(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT egoid FROM verified_persons`)
	if err != nil {
		return 0, fmt.Errorf("scan ego ids: %w", err)
	}
	defer rows.Close()

	maxID := 0
	for rows.Next() {
		var egoid string
		if err := rows.Scan(&egoid); err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(egoid); err == nil && n > maxID {
			maxID = n
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

func scanPerson(scanner interface{ Scan(dest ...any) error }) (*Person, error) {
	var (
		egoid, spouse, mother, father                    string
		children, siblings, cousins, niblings, grandkids string
	)
	if err := scanner.Scan(&egoid, &spouse, &mother, &father,
		&children, &siblings, &cousins, &niblings, &grandkids); err != nil {
		return nil, err
	}
	return &Person{
		EgoID:         egoid,
		Spouse:        spouse,
		Mother:        mother,
		Father:        father,
		Children:      SplitIDs(children),
		Siblings:      SplitIDs(siblings),
		Cousins:       SplitIDs(cousins),
		Niblings:      SplitIDs(niblings),
		Grandchildren: SplitIDs(grandkids),
	}, nil
}
