package store

import (
	"database/sql"
	"errors"
	"fmt"

	"gittrack/schema"
)

// UpsertRepo inserts a repository or refreshes its name, re-activating it
// if it was previously disabled.
func (s *StoreImpl) UpsertRepo(path, name string) error {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT INTO repos (path, name, is_active) VALUES (?, ?, 1) AS new
			ON DUPLICATE KEY UPDATE name = new.name, is_active = 1`
	case schema.PostgreSQLBackend:
		query = `INSERT INTO repos (path, name, is_active) VALUES ($1, $2, TRUE)
			ON CONFLICT (path) DO UPDATE SET name = EXCLUDED.name, is_active = TRUE`
	default: // SQLite
		query = `INSERT INTO repos (path, name, is_active) VALUES (?, ?, 1)
			ON CONFLICT(path) DO UPDATE SET name = excluded.name, is_active = 1`
	}

	if _, err := s.db.Exec(query, path, name); err != nil {
		return fmt.Errorf("failed to upsert repo %q: %w", path, err)
	}
	return nil
}

// ActiveRepos returns all repositories not flagged as disabled.
func (s *StoreImpl) ActiveRepos() ([]schema.Repo, error) {
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = `SELECT id, path, name, is_active::int FROM repos WHERE is_active ORDER BY id`
	default: // SQLite and MySQL
		query = `SELECT id, path, name, is_active FROM repos WHERE is_active = 1 ORDER BY id`
	}
	return s.queryRepos(query)
}

// AllRepos returns every tracked repository.
func (s *StoreImpl) AllRepos() ([]schema.Repo, error) {
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = `SELECT id, path, name, is_active::int FROM repos ORDER BY id`
	default: // SQLite and MySQL
		query = `SELECT id, path, name, is_active FROM repos ORDER BY id`
	}
	return s.queryRepos(query)
}

func (s *StoreImpl) queryRepos(query string, args ...any) ([]schema.Repo, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query repos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var repos []schema.Repo
	for rows.Next() {
		var r schema.Repo
		var active int
		if err := rows.Scan(&r.ID, &r.Path, &r.Name, &active); err != nil {
			return nil, fmt.Errorf("failed to scan repo row: %w", err)
		}
		r.Active = active != 0
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

// SetRepoActive toggles the active flag of one repository.
func (s *StoreImpl) SetRepoActive(id int64, active bool) error {
	var query string
	var flag any
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = `UPDATE repos SET is_active = $1 WHERE id = $2`
		flag = active
	default: // SQLite and MySQL
		query = `UPDATE repos SET is_active = ? WHERE id = ?`
		if active {
			flag = 1
		} else {
			flag = 0
		}
	}

	result, err := s.db.Exec(query, flag, id)
	if err != nil {
		return fmt.Errorf("failed to update repo %d: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no repo with id %d", id)
	}
	return nil
}

// UpsertRepoDayStat writes one per-repo, per-day record, replacing all
// numeric fields atomically when the (repo, date) key already exists.
func (s *StoreImpl) UpsertRepoDayStat(stat schema.RepoDayStat) error {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT INTO daily_repo_stats (repo_id, date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES (?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE
				insertions = new.insertions,
				deletions = new.deletions,
				edits = new.edits,
				commits = new.commits`
	case schema.PostgreSQLBackend:
		query = `INSERT INTO daily_repo_stats (repo_id, date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (repo_id, date_yyyy_mm_dd) DO UPDATE SET
				insertions = EXCLUDED.insertions,
				deletions = EXCLUDED.deletions,
				edits = EXCLUDED.edits,
				commits = EXCLUDED.commits`
	default: // SQLite
		query = `INSERT INTO daily_repo_stats (repo_id, date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(repo_id, date_yyyy_mm_dd) DO UPDATE SET
				insertions = excluded.insertions,
				deletions = excluded.deletions,
				edits = excluded.edits,
				commits = excluded.commits`
	}

	if _, err := s.db.Exec(query, stat.RepoID, stat.Date, stat.Insertions, stat.Deletions, stat.Edits, stat.Commits); err != nil {
		return fmt.Errorf("failed to upsert repo stat for repo %d on %s: %w", stat.RepoID, stat.Date, err)
	}
	return nil
}

// UpsertDailyTotal writes one per-day total, replacing all numeric fields
// atomically when the date already has a row.
func (s *StoreImpl) UpsertDailyTotal(total schema.DailyTotal) error {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT INTO daily_totals (date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE
				insertions = new.insertions,
				deletions = new.deletions,
				edits = new.edits,
				commits = new.commits`
	case schema.PostgreSQLBackend:
		query = `INSERT INTO daily_totals (date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (date_yyyy_mm_dd) DO UPDATE SET
				insertions = EXCLUDED.insertions,
				deletions = EXCLUDED.deletions,
				edits = EXCLUDED.edits,
				commits = EXCLUDED.commits`
	default: // SQLite
		query = `INSERT INTO daily_totals (date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(date_yyyy_mm_dd) DO UPDATE SET
				insertions = excluded.insertions,
				deletions = excluded.deletions,
				edits = excluded.edits,
				commits = excluded.commits`
	}

	if _, err := s.db.Exec(query, total.Date, total.Insertions, total.Deletions, total.Edits, total.Commits); err != nil {
		return fmt.Errorf("failed to upsert daily total for %s: %w", total.Date, err)
	}
	return nil
}

// InsertDailyTotalIfAbsent writes one per-day total only when no row
// exists for the date. It never overwrites a row, including one holding
// real nonzero data.
func (s *StoreImpl) InsertDailyTotalIfAbsent(total schema.DailyTotal) error {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT IGNORE INTO daily_totals (date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES (?, ?, ?, ?, ?)`
	case schema.PostgreSQLBackend:
		query = `INSERT INTO daily_totals (date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (date_yyyy_mm_dd) DO NOTHING`
	default: // SQLite
		query = `INSERT INTO daily_totals (date_yyyy_mm_dd, insertions, deletions, edits, commits)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(date_yyyy_mm_dd) DO NOTHING`
	}

	if _, err := s.db.Exec(query, total.Date, total.Insertions, total.Deletions, total.Edits, total.Commits); err != nil {
		return fmt.Errorf("failed to insert daily total for %s: %w", total.Date, err)
	}
	return nil
}

// TotalDates returns all recorded dates in ascending order.
func (s *StoreImpl) TotalDates() ([]string, error) {
	rows, err := s.db.Query(`SELECT date_yyyy_mm_dd FROM daily_totals ORDER BY date_yyyy_mm_dd ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query total dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date row: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Totals returns the most recent daily totals up to limit rows, in
// ascending date order. A non-positive limit returns all rows.
func (s *StoreImpl) Totals(limit int) ([]schema.DailyTotal, error) {
	// Pull newest first so LIMIT trims the oldest days, then reverse for
	// charting order.
	query := `SELECT date_yyyy_mm_dd, insertions, deletions, edits, commits
		FROM daily_totals ORDER BY date_yyyy_mm_dd DESC`
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
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []schema.DailyTotal
	for rows.Next() {
		var t schema.DailyTotal
		if err := rows.Scan(&t.Date, &t.Insertions, &t.Deletions, &t.Edits, &t.Commits); err != nil {
			return nil, fmt.Errorf("failed to scan daily total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(totals)-1; i < j; i, j = i+1, j-1 {
		totals[i], totals[j] = totals[j], totals[i]
	}
	return totals, nil
}

// TotalForDate returns the total row for one date, or nil if absent.
func (s *StoreImpl) TotalForDate(date string) (*schema.DailyTotal, error) {
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = `SELECT date_yyyy_mm_dd, insertions, deletions, edits, commits
			FROM daily_totals WHERE date_yyyy_mm_dd = $1`
	default:
		query = `SELECT date_yyyy_mm_dd, insertions, deletions, edits, commits
			FROM daily_totals WHERE date_yyyy_mm_dd = ?`
	}

	var t schema.DailyTotal
	err := s.db.QueryRow(query, date).Scan(&t.Date, &t.Insertions, &t.Deletions, &t.Edits, &t.Commits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query total for %s: %w", date, err)
	}
	return &t, nil
}

// CountDays returns the number of distinct recorded days.
func (s *StoreImpl) CountDays() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_totals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count days: %w", err)
	}
	return count, nil
}

// AllRepoDayStats returns every per-repo daily record joined with its
// repository name, ordered by date then repository id.
func (s *StoreImpl) AllRepoDayStats() ([]schema.RepoDayRecord, error) {
	query := `SELECT d.repo_id, r.name, d.date_yyyy_mm_dd,
			d.insertions, d.deletions, d.edits, d.commits
		FROM daily_repo_stats d JOIN repos r ON r.id = d.repo_id
		ORDER BY d.date_yyyy_mm_dd ASC, d.repo_id ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repo day stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.RepoDayRecord
	for rows.Next() {
		var rec schema.RepoDayRecord
		if err := rows.Scan(&rec.RepoID, &rec.RepoName, &rec.Date,
			&rec.Insertions, &rec.Deletions, &rec.Edits, &rec.Commits); err != nil {
			return nil, fmt.Errorf("failed to scan repo day row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RepoStatsForRange returns per-repo contributions for the inclusive date
// range, summed per repository and ordered by edits descending.
func (s *StoreImpl) RepoStatsForRange(from, to string) ([]schema.RepoContribution, error) {
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = `SELECT r.id, r.name,
				COALESCE(SUM(d.insertions), 0), COALESCE(SUM(d.deletions), 0),
				COALESCE(SUM(d.edits), 0), COALESCE(SUM(d.commits), 0)
			FROM daily_repo_stats d JOIN repos r ON r.id = d.repo_id
			WHERE d.date_yyyy_mm_dd >= $1 AND d.date_yyyy_mm_dd <= $2
			GROUP BY r.id, r.name
			ORDER BY SUM(d.edits) DESC`
	default: // SQLite and MySQL
		query = `SELECT r.id, r.name,
				COALESCE(SUM(d.insertions), 0), COALESCE(SUM(d.deletions), 0),
				COALESCE(SUM(d.edits), 0), COALESCE(SUM(d.commits), 0)
			FROM daily_repo_stats d JOIN repos r ON r.id = d.repo_id
			WHERE d.date_yyyy_mm_dd >= ? AND d.date_yyyy_mm_dd <= ?
			GROUP BY r.id, r.name
			ORDER BY SUM(d.edits) DESC`
	}

	rows, err := s.db.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query repo stats for %s..%s: %w", from, to, err)
	}
	defer func() { _ = rows.Close() }()

	var contribs []schema.RepoContribution
	for rows.Next() {
		var c schema.RepoContribution
		if err := rows.Scan(&c.RepoID, &c.Name, &c.Insertions, &c.Deletions, &c.Edits, &c.Commits); err != nil {
			return nil, fmt.Errorf("failed to scan contribution row: %w", err)
		}
		contribs = append(contribs, c)
	}
	return contribs, rows.Err()
}

// GetSetting returns the value for key, or empty string if unset.
func (s *StoreImpl) GetSetting(key string) (string, error) {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = "SELECT value FROM settings WHERE `key` = ?"
	case schema.PostgreSQLBackend:
		query = `SELECT value FROM settings WHERE key = $1`
	default:
		query = `SELECT value FROM settings WHERE key = ?`
	}

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting inserts or replaces one settings key.
func (s *StoreImpl) SetSetting(key, value string) error {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = "INSERT INTO settings (`key`, value) VALUES (?, ?) AS new ON DUPLICATE KEY UPDATE value = new.value"
	case schema.PostgreSQLBackend:
		query = `INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	default:
		query = `INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	}

	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
