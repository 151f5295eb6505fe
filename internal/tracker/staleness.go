package tracker

import (
	"time"

	"gittrack/internal/contract"
	"gittrack/schema"
)

// StaleSince reports whether the last successful run finished longer
// than threshold ago. The run is returned for messaging; it is nil
// when no successful run exists.
func StaleSince(store contract.Store, now time.Time, threshold time.Duration) (bool, *schema.Run) {
	last, err := store.LastSuccessRun()
	if err != nil || last == nil {
		return true, nil
	}
	return now.Sub(last.FinishedAt) > threshold, last
}
