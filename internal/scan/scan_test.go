package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gittrack/internal/store"
	"gittrack/schema"
)

func mkRepo(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(path, ".git"), 0o755))
}

func TestFindRepos(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "alpha"))
	mkRepo(t, filepath.Join(root, "work", "beta"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	repos, err := FindRepos(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "alpha"),
		filepath.Join(root, "work", "beta"),
	}, repos)
}

func TestFindReposDoesNotDescendIntoRepos(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "outer"))
	mkRepo(t, filepath.Join(root, "outer", "embedded"))

	repos, err := FindRepos(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "outer")}, repos)
}

func TestFindReposSkipsHiddenAndDependencyDirs(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, ".cache", "hidden"))
	mkRepo(t, filepath.Join(root, "app", "node_modules", "dep"))
	mkRepo(t, filepath.Join(root, "app"))

	repos, err := FindRepos(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app")}, repos)
}

func TestFindReposMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")

	repos, err := FindRepos(missing)
	require.Error(t, err)
	assert.Nil(t, repos)
}

func TestFindReposIgnoresGitFile(t *testing.T) {
	root := t.TempDir()
	// Worktrees and submodules use a .git file, not a directory.
	sub := filepath.Join(root, "worktree")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, ".git"), []byte("gitdir: elsewhere"), 0o644))

	repos, err := FindRepos(root)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestSaveRepos(t *testing.T) {
	s, err := store.New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	n, err := SaveRepos(s, []string{"/code/alpha", "/code/beta"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	repos, err := s.AllRepos()
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "alpha", repos[0].Name)

	// Re-discovery is idempotent.
	_, err = SaveRepos(s, []string{"/code/alpha"})
	require.NoError(t, err)
	repos, err = s.AllRepos()
	require.NoError(t, err)
	assert.Len(t, repos, 2)
}
