// internal/results/store.go
//
// Persistence for benchmark runs.
//   - SaveRun:    one runs row plus one solves row per answer, in a single transaction.
//   - RecentRuns: newest runs first.
//   - Hardest:    the words a run needed the most rounds for.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Run is a stored benchmark summary.
type Run struct {
	ID        int64   `json:"id"`
	StartWord string  `json:"startWord"`
	Alternate bool    `json:"alternate"`
	Games     int     `json:"games"`
	Mean      float64 `json:"mean"`
	Worst     int     `json:"worst"`
	Failures  int     `json:"failures"`
	ElapsedMs int64   `json:"elapsedMs"`
	CreatedAt string  `json:"createdAt"`
}

// Solve is a stored per-word result.
type Solve struct {
	Word    string   `json:"word"`
	Rounds  int      `json:"rounds"`
	Solved  bool     `json:"solved"`
	Guesses []string `json:"guesses"`
	Err     string   `json:"error,omitempty"`
}

// Row limits for RecentRuns and Hardest.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Store wraps the results database.
type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun stores r and returns the new run ID.
func (s *Store) SaveRun(ctx context.Context, r *stats.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO runs (start_word, alternate, games, mean, worst, failures, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.StartWord.String(), r.Alternate, len(r.Results), r.Mean, r.Worst, r.Failures, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO solves (run_id, word, rounds, solved, guesses, error)
        VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, sv := range r.Results {
		guesses := strings.Join(words.Strings(sv.Guesses), " ")
		if _, err := stmt.ExecContext(ctx, id, sv.Word.String(), sv.Rounds, sv.Solved, guesses, sv.Err); err != nil {
			return 0, fmt.Errorf("insert solve %s: %w", sv.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
// limit defaults to DefaultLimit and is capped at MaxLimit.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, start_word, alternate, games, mean, worst, failures, elapsed_ms, created_at
        FROM runs
        ORDER BY id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartWord, &r.Alternate, &r.Games, &r.Mean, &r.Worst,
			&r.Failures, &r.ElapsedMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Hardest returns the solves of a run ordered by rounds DESC, then word ASC.
// limit defaults to DefaultLimit and is capped at MaxLimit.
func (s *Store) Hardest(ctx context.Context, runID int64, limit int) ([]Solve, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT word, rounds, solved, guesses, error
        FROM solves
        WHERE run_id=?
        ORDER BY rounds DESC, word ASC
        LIMIT ?`, runID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Solve{}
	for rows.Next() {
		var sv Solve
		var guesses string
		if err := rows.Scan(&sv.Word, &sv.Rounds, &sv.Solved, &guesses, &sv.Err); err != nil {
			return nil, err
		}
		sv.Guesses = strings.Fields(guesses)
		out = append(out, sv)
	}
	return out, rows.Err()
}
