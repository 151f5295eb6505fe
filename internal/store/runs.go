package store

import (
	"database/sql"
	"errors"
	"fmt"

	"gittrack/schema"
)

// AppendRun appends one run row and returns its id. Runs are append-only
// and never updated after insert.
func (s *StoreImpl) AppendRun(run schema.Run) (int64, error) {
	var errMsg any
	if run.ErrorMessage != "" {
		errMsg = run.ErrorMessage
	}

	switch s.backend {
	case schema.PostgreSQLBackend:
		query := `INSERT INTO runs (started_at, finished_at, status, error_message, duration_ms, scanned_repos)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		var id int64
		err := s.db.QueryRow(query,
			run.StartedAt, run.FinishedAt, string(run.Status), errMsg, run.DurationMs, run.ScannedRepos,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to append run: %w", err)
		}
		return id, nil

	default: // SQLite and MySQL
		query := `INSERT INTO runs (started_at, finished_at, status, error_message, duration_ms, scanned_repos)
			VALUES (?, ?, ?, ?, ?, ?)`
		result, err := s.db.Exec(query,
			formatTime(run.StartedAt, s.backend), formatTime(run.FinishedAt, s.backend),
			string(run.Status), errMsg, run.DurationMs, run.ScannedRepos,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append run: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read run id: %w", err)
		}
		return id, nil
	}
}

const runColumns = `id, started_at, finished_at, status, error_message, duration_ms, scanned_repos`

// LastRun returns the most recent run by finish time, or nil when the
// ledger is empty.
func (s *StoreImpl) LastRun() (*schema.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY finished_at DESC LIMIT 1`
	return s.queryOneRun(query)
}

// LastSuccessRun returns the most recent success run by finish time, or
// nil when no run ever succeeded.
func (s *StoreImpl) LastSuccessRun() (*schema.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE status = 'success' ORDER BY finished_at DESC LIMIT 1`
	return s.queryOneRun(query)
}

// RecentRuns returns the most recent runs, newest first. A non-positive
// limit returns all rows.
func (s *StoreImpl) RecentRuns(limit int) ([]schema.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY finished_at DESC`
	var args []any
	if limit > 0 {
		switch s.backend {
		case schema.PostgreSQLBackend:
			query += ` LIMIT $1`
		default:
			query += ` LIMIT ?`
		}
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.Run
	for rows.Next() {
		run, err := s.scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *StoreImpl) queryOneRun(query string) (*schema.Run, error) {
	row := s.db.QueryRow(query)
	run, err := s.scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// scanRun reads one run row through the given Scan function, handling the
// backend-specific timestamp representations.
func (s *StoreImpl) scanRun(scan func(...any) error) (*schema.Run, error) {
	var run schema.Run
	var status string
	var errMsg sql.NullString
	started := newTimeScanner(s.backend, &run.StartedAt)
	finished := newTimeScanner(s.backend, &run.FinishedAt)

	err := scan(&run.ID, started.target(), finished.target(), &status, &errMsg, &run.DurationMs, &run.ScannedRepos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run row: %w", err)
	}
	if err := started.resolve(); err != nil {
		return nil, err
	}
	if err := finished.resolve(); err != nil {
		return nil, err
	}

	run.Status = schema.RunStatus(status)
	run.ErrorMessage = errMsg.String
	return &run, nil
}
