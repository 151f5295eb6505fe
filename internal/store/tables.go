package store

import "gittrack/schema"

// Table names for the aggregate store.
const (
	reposTable       = "repos"
	runsTable        = "runs"
	repoStatsTable   = "daily_repo_stats"
	dailyTotalsTable = "daily_totals"
	settingsTable    = "settings"
)

// TableNames returns all store table names in display order.
func TableNames() []string {
	return []string{reposTable, repoStatsTable, dailyTotalsTable, runsTable, settingsTable}
}

// createTableQueries returns the CREATE TABLE statements for the given
// backend, in dependency order.
func createTableQueries(backend schema.DatabaseBackend) []string {
	switch backend {
	case schema.MySQLBackend:
		return []string{
			`CREATE TABLE IF NOT EXISTS repos (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				path VARCHAR(1024) NOT NULL,
				name VARCHAR(255) NOT NULL,
				is_active TINYINT NOT NULL DEFAULT 1,
				created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				UNIQUE KEY uq_repos_path (path(255))
			);`,
			`CREATE TABLE IF NOT EXISTS runs (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				started_at DATETIME(6) NOT NULL,
				finished_at DATETIME(6) NOT NULL,
				status VARCHAR(16) NOT NULL,
				error_message TEXT,
				duration_ms BIGINT NOT NULL,
				scanned_repos INT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS daily_repo_stats (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				repo_id BIGINT NOT NULL,
				date_yyyy_mm_dd CHAR(10) NOT NULL,
				insertions INT NOT NULL DEFAULT 0,
				deletions INT NOT NULL DEFAULT 0,
				edits INT NOT NULL DEFAULT 0,
				commits INT NOT NULL DEFAULT 0,
				UNIQUE KEY uq_repo_date (repo_id, date_yyyy_mm_dd),
				KEY idx_daily_repo_stats_date (date_yyyy_mm_dd),
				FOREIGN KEY (repo_id) REFERENCES repos(id) ON DELETE CASCADE
			);`,
			`CREATE TABLE IF NOT EXISTS daily_totals (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				date_yyyy_mm_dd CHAR(10) NOT NULL UNIQUE,
				insertions INT NOT NULL DEFAULT 0,
				deletions INT NOT NULL DEFAULT 0,
				edits INT NOT NULL DEFAULT 0,
				commits INT NOT NULL DEFAULT 0
			);`,
			`CREATE TABLE IF NOT EXISTS settings (
				` + "`key`" + ` VARCHAR(255) PRIMARY KEY,
				value TEXT NOT NULL
			);`,
		}

	case schema.PostgreSQLBackend:
		return []string{
			`CREATE TABLE IF NOT EXISTS repos (
				id BIGSERIAL PRIMARY KEY,
				path TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);`,
			`CREATE TABLE IF NOT EXISTS runs (
				id BIGSERIAL PRIMARY KEY,
				started_at TIMESTAMPTZ NOT NULL,
				finished_at TIMESTAMPTZ NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('success','failed')),
				error_message TEXT,
				duration_ms BIGINT NOT NULL,
				scanned_repos INT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS daily_repo_stats (
				id BIGSERIAL PRIMARY KEY,
				repo_id BIGINT NOT NULL REFERENCES repos(id) ON DELETE CASCADE,
				date_yyyy_mm_dd TEXT NOT NULL,
				insertions INT NOT NULL DEFAULT 0,
				deletions INT NOT NULL DEFAULT 0,
				edits INT NOT NULL DEFAULT 0,
				commits INT NOT NULL DEFAULT 0,
				UNIQUE (repo_id, date_yyyy_mm_dd)
			);`,
			`CREATE INDEX IF NOT EXISTS idx_daily_repo_stats_date
				ON daily_repo_stats(date_yyyy_mm_dd);`,
			`CREATE TABLE IF NOT EXISTS daily_totals (
				id BIGSERIAL PRIMARY KEY,
				date_yyyy_mm_dd TEXT NOT NULL UNIQUE,
				insertions INT NOT NULL DEFAULT 0,
				deletions INT NOT NULL DEFAULT 0,
				edits INT NOT NULL DEFAULT 0,
				commits INT NOT NULL DEFAULT 0
			);`,
			`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);`,
		}

	default: // SQLite
		return []string{
			`CREATE TABLE IF NOT EXISTS repos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				path TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				is_active INTEGER NOT NULL DEFAULT 1,
				created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
			);`,
			`CREATE TABLE IF NOT EXISTS runs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				started_at TEXT NOT NULL,
				finished_at TEXT NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('success','failed')),
				error_message TEXT,
				duration_ms INTEGER NOT NULL,
				scanned_repos INTEGER NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS daily_repo_stats (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				repo_id INTEGER NOT NULL,
				date_yyyy_mm_dd TEXT NOT NULL,
				insertions INTEGER NOT NULL DEFAULT 0,
				deletions INTEGER NOT NULL DEFAULT 0,
				edits INTEGER NOT NULL DEFAULT 0,
				commits INTEGER NOT NULL DEFAULT 0,
				FOREIGN KEY (repo_id) REFERENCES repos(id) ON DELETE CASCADE,
				UNIQUE (repo_id, date_yyyy_mm_dd)
			);`,
			`CREATE INDEX IF NOT EXISTS idx_daily_repo_stats_date
				ON daily_repo_stats(date_yyyy_mm_dd);`,
			`CREATE INDEX IF NOT EXISTS idx_daily_repo_stats_repo
				ON daily_repo_stats(repo_id);`,
			`CREATE TABLE IF NOT EXISTS daily_totals (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				date_yyyy_mm_dd TEXT NOT NULL UNIQUE,
				insertions INTEGER NOT NULL DEFAULT 0,
				deletions INTEGER NOT NULL DEFAULT 0,
				edits INTEGER NOT NULL DEFAULT 0,
				commits INTEGER NOT NULL DEFAULT 0
			);`,
			`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);`,
		}
	}
}
