package tracker

import (
	"fmt"
	"time"

	"gittrack/internal/contract"
	"gittrack/schema"
)

// FillMissingDays inserts zero-valued total rows for every calendar day
// between the earliest recorded date and yesterday that has no row.
// Existing rows are never touched.
func FillMissingDays(store contract.Store, now time.Time) error {
	dates, err := store.TotalDates()
	if err != nil {
		return fmt.Errorf("list total dates: %w", err)
	}
	if len(dates) == 0 {
		return nil
	}

	existing := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		existing[d] = struct{}{}
	}

	first, err := contract.ParseDayKey(dates[0])
	if err != nil {
		return fmt.Errorf("parse earliest date %q: %w", dates[0], err)
	}

	today := contract.StartOfDay(now)
	for day := first; day.Before(today); day = day.AddDate(0, 0, 1) {
		key := contract.DayKey(day)
		if _, ok := existing[key]; ok {
			continue
		}
		if err := store.InsertDailyTotalIfAbsent(schema.DailyTotal{Date: key}); err != nil {
			return fmt.Errorf("fill %s: %w", key, err)
		}
	}
	return nil
}
