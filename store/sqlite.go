// Package store persists experiment runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nihei9/cky/experiment"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			batch_id TEXT,
			number INTEGER,
			probabilistic BOOLEAN,
			cnf BOOLEAN,
			want_member BOOLEAN,
			grammar TEXT,
			converted TEXT,
			word_found BOOLEAN,
			word TEXT,
			member BOOLEAN,
			probability REAL,
			PRIMARY KEY (batch_id, number)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores run under batchID. A run with the same batch and number is replaced.
func (s *SQLiteStore) SaveRun(ctx context.Context, batchID string, run *experiment.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (batch_id, number, probabilistic, cnf, want_member, grammar, converted, word_found, word, member, probability)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(batch_id, number) DO UPDATE SET
			probabilistic=excluded.probabilistic,
			cnf=excluded.cnf,
			want_member=excluded.want_member,
			grammar=excluded.grammar,
			converted=excluded.converted,
			word_found=excluded.word_found,
			word=excluded.word,
			member=excluded.member,
			probability=excluded.probability
	`, batchID, run.Number, run.Probabilistic, run.CNF, run.WantMember, run.Grammar, run.Converted, run.WordFound, run.Word, run.Member, run.Probability)

	return err
}

// ListRuns returns the runs of batchID ordered by number.
func (s *SQLiteStore) ListRuns(ctx context.Context, batchID string) ([]*experiment.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, probabilistic, cnf, want_member, grammar, converted, word_found, word, member, probability
		FROM runs
		WHERE batch_id = ?
		ORDER BY number
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*experiment.Run
	for rows.Next() {
		run := &experiment.Run{}
		if err := rows.Scan(
			&run.Number,
			&run.Probabilistic,
			&run.CNF,
			&run.WantMember,
			&run.Grammar,
			&run.Converted,
			&run.WordFound,
			&run.Word,
			&run.Member,
			&run.Probability,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListBatches returns the IDs of the stored batches in ascending order.
func (s *SQLiteStore) ListBatches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT batch_id FROM runs ORDER BY batch_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
