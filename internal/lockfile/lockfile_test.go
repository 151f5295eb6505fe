package lockfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gittrack.lock")
	lock := New(path, 2*time.Hour, nil)

	require.NoError(t, lock.Acquire())
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, lock.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gittrack.lock")
	first := New(path, 2*time.Hour, nil)
	second := New(path, 2*time.Hour, nil)

	require.NoError(t, first.Acquire())
	assert.ErrorIs(t, second.Acquire(), ErrLockHeld)

	require.NoError(t, first.Release())
	assert.NoError(t, second.Acquire())
	require.NoError(t, second.Release())
}

func TestReleaseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gittrack.lock")
	lock := New(path, 2*time.Hour, nil)

	require.NoError(t, lock.Acquire())
	require.NoError(t, lock.Release())
	assert.NoError(t, lock.Release())
}

func TestReleaseWithoutAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gittrack.lock")
	other := New(path, 2*time.Hour, nil)
	require.NoError(t, other.Acquire())

	// A lock that never acquired must not remove someone else's marker.
	bystander := New(path, 2*time.Hour, nil)
	require.NoError(t, bystander.Release())
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStaleLockReclaimed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gittrack.lock")
	stale := New(path, 2*time.Hour, nil)
	require.NoError(t, stale.Acquire())

	// Age the marker past the staleness threshold.
	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	fresh := New(path, 2*time.Hour, nil)
	assert.NoError(t, fresh.Acquire())
	require.NoError(t, fresh.Release())
}

func TestFreshLockNotReclaimed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gittrack.lock")
	holder := New(path, 2*time.Hour, nil)
	require.NoError(t, holder.Acquire())

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	contender := New(path, 2*time.Hour, nil)
	assert.ErrorIs(t, contender.Acquire(), ErrLockHeld)
}

func TestDBExistsAndWritable(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "gittrack.db")

	assert.Error(t, DBExistsAndWritable(dbPath))

	require.NoError(t, os.WriteFile(dbPath, []byte("sqlite"), 0o644))
	assert.NoError(t, DBExistsAndWritable(dbPath))

	assert.Error(t, DBExistsAndWritable(dir))
}
