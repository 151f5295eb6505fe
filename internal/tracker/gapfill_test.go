package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrack/internal/store"
	"gittrack/schema"
)

func newGapStore(t *testing.T) *store.StoreImpl {
	t.Helper()
	s, err := store.New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFillMissingDays(t *testing.T) {
	s := newGapStore(t)
	require.NoError(t, s.UpsertDailyTotal(schema.DailyTotal{Date: "2025-10-19", DayStat: schema.NewDayStat(4, 1, 1)}))
	require.NoError(t, s.UpsertDailyTotal(schema.DailyTotal{Date: "2025-10-21", DayStat: schema.NewDayStat(6, 2, 1)}))

	now := time.Date(2025, time.October, 22, 9, 0, 0, 0, time.Local)
	require.NoError(t, FillMissingDays(s, now))

	dates, err := s.TotalDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-19", "2025-10-20", "2025-10-21"}, dates)

	filled, err := s.TotalForDate("2025-10-20")
	require.NoError(t, err)
	require.NotNil(t, filled)
	assert.True(t, filled.IsZero())

	// Real rows survive untouched.
	kept, err := s.TotalForDate("2025-10-19")
	require.NoError(t, err)
	assert.Equal(t, 5, kept.Edits)
}

func TestFillMissingDaysEmptyStore(t *testing.T) {
	s := newGapStore(t)
	require.NoError(t, FillMissingDays(s, time.Now()))

	count, err := s.CountDays()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFillMissingDaysNeverFillsToday(t *testing.T) {
	s := newGapStore(t)
	require.NoError(t, s.UpsertDailyTotal(schema.DailyTotal{Date: "2025-10-21", DayStat: schema.NewDayStat(1, 0, 1)}))

	now := time.Date(2025, time.October, 22, 9, 0, 0, 0, time.Local)
	require.NoError(t, FillMissingDays(s, now))

	today, err := s.TotalForDate("2025-10-22")
	require.NoError(t, err)
	assert.Nil(t, today, "today is the scanner's to write")
}

func TestStaleSince(t *testing.T) {
	s := newGapStore(t)
	now := time.Date(2025, time.October, 22, 9, 0, 0, 0, time.UTC)

	stale, last := StaleSince(s, now, 36*time.Hour)
	assert.True(t, stale)
	assert.Nil(t, last)

	run := schema.Run{
		StartedAt:  now.Add(-12 * time.Hour),
		FinishedAt: now.Add(-12 * time.Hour),
		Status:     schema.RunSuccess,
	}
	_, err := s.AppendRun(run)
	require.NoError(t, err)

	stale, last = StaleSince(s, now, 36*time.Hour)
	assert.False(t, stale)
	require.NotNil(t, last)

	stale, _ = StaleSince(s, now.Add(48*time.Hour), 36*time.Hour)
	assert.True(t, stale)
}
