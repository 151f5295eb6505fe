// Package gitstat extracts daily change statistics from local git history.
package gitstat

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"gittrack/internal/contract"
)

// commitMarker prefixes each commit header in the activity log output.
// Numstat lines always start with a digit or a single "-", so the marker
// cannot collide with them.
const commitMarker = "--"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ contract.GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// DayActivityLog implements the GitClient interface. The output is a
// stream of commit marker lines followed by per-file numstat records.
func (c *LocalGitClient) DayActivityLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	args := []string{
		"log",
		"--numstat",
		"--no-merges",
		"--pretty=format:" + commitMarker + "%H",
		fmt.Sprintf("--since=%s", since.Format(time.RFC3339)),
	}
	return c.Run(ctx, repoPath, args...)
}
