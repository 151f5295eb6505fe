package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrack/internal/contract"
	"gittrack/internal/lockfile"
	"gittrack/internal/store"
	"gittrack/schema"
)

// fakeGitClient serves canned numstat logs keyed by repo path.
type fakeGitClient struct {
	logs map[string]string
}

func (f *fakeGitClient) Run(_ context.Context, repoPath string, _ ...string) ([]byte, error) {
	return f.DayActivityLog(context.Background(), repoPath, time.Time{})
}

func (f *fakeGitClient) DayActivityLog(_ context.Context, repoPath string, _ time.Time) ([]byte, error) {
	out, ok := f.logs[repoPath]
	if !ok {
		return nil, errors.New("not a git repository")
	}
	return []byte(out), nil
}

type fixture struct {
	coord  *Coordinator
	dbPath string
	now    time.Time
}

func newFixture(t *testing.T, git contract.GitClient) *fixture {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, contract.StoreFileName)

	s, err := store.New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.UpsertRepo("/code/alpha", "alpha"))
	require.NoError(t, s.UpsertRepo("/code/beta", "beta"))
	require.NoError(t, s.UpsertRepo("/code/gamma", "gamma"))
	require.NoError(t, s.Close())

	now := time.Date(2025, time.October, 22, 23, 50, 0, 0, time.Local)
	return &fixture{
		coord: &Coordinator{
			Lock:           lockfile.New(filepath.Join(dir, contract.LockFileName), 2*time.Hour, nil),
			Health:         func() error { return lockfile.DBExistsAndWritable(dbPath) },
			OpenStore:      func() (contract.Store, error) { return store.New(schema.SQLiteBackend, dbPath) },
			Git:            git,
			Clock:          func() time.Time { return now },
			Workers:        2,
			ExtractTimeout: 5 * time.Second,
			StaleThreshold: 36 * time.Hour,
		},
		dbPath: dbPath,
		now:    now,
	}
}

func (f *fixture) openStore(t *testing.T) contract.Store {
	t.Helper()
	s, err := f.coord.OpenStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func scenarioGit() *fakeGitClient {
	return &fakeGitClient{logs: map[string]string{
		"/code/alpha": "--aaa1\n10\t2\tmain.go\n",
		"/code/beta":  "",
		"/code/gamma": "--ccc1\n3\t2\ta.go\n--ccc2\n2\t3\tb.go\n",
	}}
}

func TestRunScanScenario(t *testing.T) {
	f := newFixture(t, scenarioGit())

	result, err := f.coord.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-10-22", result.Date)
	assert.Equal(t, 3, result.ScannedRepos)
	assert.Equal(t, schema.DayStat{Insertions: 15, Deletions: 7, Edits: 22, Commits: 3}, result.Total)

	s := f.openStore(t)
	total, err := s.TotalForDate("2025-10-22")
	require.NoError(t, err)
	require.NotNil(t, total)
	assert.Equal(t, 22, total.Edits)

	contribs, err := s.RepoStatsForRange("2025-10-22", "2025-10-22")
	require.NoError(t, err)
	require.Len(t, contribs, 3)
	assert.Equal(t, "alpha", contribs[0].Name)
	assert.Equal(t, 12, contribs[0].Edits)

	last, err := s.LastRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, schema.RunSuccess, last.Status)
	assert.Equal(t, 3, last.ScannedRepos)

	date, err := s.GetSetting("last_scan_date")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-22", date)
}

func TestRunIdempotentSameDay(t *testing.T) {
	f := newFixture(t, scenarioGit())

	_, err := f.coord.Run(context.Background())
	require.NoError(t, err)
	_, err = f.coord.Run(context.Background())
	require.NoError(t, err)

	s := f.openStore(t)
	total, err := s.TotalForDate("2025-10-22")
	require.NoError(t, err)
	assert.Equal(t, 22, total.Edits, "second run must replace, not double")

	count, err := s.CountDays()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 2, "each run leaves its own ledger row")
}

func TestRunBrokenRepoYieldsZeroRow(t *testing.T) {
	git := scenarioGit()
	delete(git.logs, "/code/beta") // extraction now errors for beta
	f := newFixture(t, git)

	result, err := f.coord.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.ScannedRepos)
	assert.Equal(t, 22, result.Total.Edits)

	s := f.openStore(t)
	contribs, err := s.RepoStatsForRange("2025-10-22", "2025-10-22")
	require.NoError(t, err)
	require.Len(t, contribs, 3, "broken repo still gets a zero row")
}

func TestRunLockContention(t *testing.T) {
	f := newFixture(t, scenarioGit())

	holder := lockfile.New(filepath.Join(filepath.Dir(f.dbPath), contract.LockFileName), 2*time.Hour, nil)
	require.NoError(t, holder.Acquire())
	defer holder.Release()

	_, err := f.coord.Run(context.Background())
	assert.ErrorIs(t, err, ErrAnotherRunActive)

	s := f.openStore(t)
	last, err := s.LastRun()
	require.NoError(t, err)
	assert.Nil(t, last, "a blocked run must not touch the ledger")
}

func TestRunHealthFailure(t *testing.T) {
	f := newFixture(t, scenarioGit())

	// Store file deleted before the run starts.
	require.NoError(t, os.Remove(f.dbPath))

	_, err := f.coord.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check")

	// Lock was released and no database reappeared.
	lockPath := filepath.Join(filepath.Dir(f.dbPath), contract.LockFileName)
	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(f.dbPath)
	assert.True(t, os.IsNotExist(err), "a failed health check must not create the database")
}

// failingStore breaks the totals upsert to exercise the failure epilogue.
type failingStore struct {
	contract.Store
}

func (f *failingStore) UpsertDailyTotal(schema.DailyTotal) error {
	return errors.New("disk full")
}

func TestRunFailureRecorded(t *testing.T) {
	f := newFixture(t, scenarioGit())
	open := f.coord.OpenStore
	f.coord.OpenStore = func() (contract.Store, error) {
		s, err := open()
		if err != nil {
			return nil, err
		}
		return &failingStore{Store: s}, nil
	}

	_, err := f.coord.Run(context.Background())
	require.Error(t, err)

	s := f.openStore(t)
	last, err := s.LastRun()
	require.NoError(t, err)
	require.NotNil(t, last, "failures must still reach the ledger")
	assert.Equal(t, schema.RunFailed, last.Status)
	assert.Equal(t, 0, last.ScannedRepos)
	assert.Contains(t, last.ErrorMessage, "disk full")

	// Lock is released, a retry can proceed.
	f.coord.OpenStore = open
	_, err = f.coord.Run(context.Background())
	assert.NoError(t, err)
}
