package store

import (
	"fmt"

	"gittrack/schema"
)

// Status holds connection info and row counts for the store.
type Status struct {
	Backend   schema.DatabaseBackend
	Connected bool
	RowCounts map[string]int
}

// GetStatus reports connection state and per-table row counts.
func (s *StoreImpl) GetStatus() (Status, error) {
	status := Status{Backend: s.backend}

	if err := s.db.Ping(); err != nil {
		return status, nil
	}
	status.Connected = true
	status.RowCounts = make(map[string]int)

	for _, table := range TableNames() {
		var count int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := s.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.RowCounts[table] = count
	}
	return status, nil
}
