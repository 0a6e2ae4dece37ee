// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package checkpoint persists completed search results so an interrupted
// mining run can resume without re-querying the search service. One
// checkpoint per term category; a category is either fully present or
// absent.
package checkpoint

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bverhoef/metamine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "metamine.db"
)

// Store manages the checkpoint SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the checkpoint database at
// folder/index/metamine.db, creating the schema if it does not exist.
func NewStore(folder string) (*Store, error) {
	dbDir := filepath.Join(folder, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS results (
			category TEXT NOT NULL,
			term TEXT NOT NULL,
			paper_id TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_category ON results(category)`,
		`CREATE TABLE IF NOT EXISTS runs (
			category TEXT PRIMARY KEY,
			completed_at TEXT NOT NULL,
			terms INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces the stored results for a category with the given
// mapping and marks the category complete. The write is transactional:
// a crash mid-save leaves the previous checkpoint intact.
func (s *Store) Save(ctx context.Context, cat types.Category, results map[string]mapset.Set[string]) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE category = ?`, string(cat)); err != nil {
		return fmt.Errorf("deleting old checkpoint: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (category, term, paper_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for term, ids := range results {
		var insertErr error
		ids.Each(func(id string) bool {
			if _, err := stmt.ExecContext(ctx, string(cat), term, id); err != nil {
				insertErr = fmt.Errorf("inserting %s/%s: %w", term, id, err)
				return true
			}
			return false
		})
		if insertErr != nil {
			return insertErr
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (category, completed_at, terms) VALUES (?, ?, ?)
		 ON CONFLICT(category) DO UPDATE SET
			completed_at=excluded.completed_at, terms=excluded.terms`,
		string(cat), time.Now().UTC().Format(time.RFC3339), len(results),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	return tx.Commit()
}

// Load returns the stored results for a category. The second return
// value reports whether a completed checkpoint exists.
func (s *Store) Load(ctx context.Context, cat types.Category) (map[string]mapset.Set[string], bool, error) {
	var terms int
	err := s.db.QueryRowContext(ctx,
		`SELECT terms FROM runs WHERE category = ?`, string(cat),
	).Scan(&terms)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("checking run status: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT term, paper_id FROM results WHERE category = ?`, string(cat))
	if err != nil {
		return nil, false, fmt.Errorf("loading checkpoint: %w", err)
	}
	defer rows.Close()

	results := make(map[string]mapset.Set[string], terms)
	for rows.Next() {
		var term, id string
		if err := rows.Scan(&term, &id); err != nil {
			return nil, false, fmt.Errorf("scanning checkpoint row: %w", err)
		}
		set, ok := results[term]
		if !ok {
			set = mapset.NewThreadUnsafeSet[string]()
			results[term] = set
		}
		set.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("reading checkpoint rows: %w", err)
	}
	return results, true, nil
}

// Clear removes the checkpoint for a category, forcing the next run to
// search it again.
func (s *Store) Clear(ctx context.Context, cat types.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE category = ?`, string(cat)); err != nil {
		return fmt.Errorf("deleting checkpoint rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE category = ?`, string(cat)); err != nil {
		return fmt.Errorf("deleting run record: %w", err)
	}
	return tx.Commit()
}
