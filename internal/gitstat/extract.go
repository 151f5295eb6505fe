package gitstat

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gittrack/internal/contract"
	"gittrack/schema"
)

// ExtractDayStats computes insertions, deletions and commit count for all
// non-merge commits since dayStart. Extraction is best-effort: an
// unreachable repository, a missing git binary or a timeout all yield the
// zero-valued result rather than an error. One broken repository must
// never abort a run.
func ExtractDayStats(ctx context.Context, client contract.GitClient, repoPath string, dayStart time.Time, timeout time.Duration) schema.DayStat {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := client.DayActivityLog(ctx, repoPath, dayStart)
	if err != nil {
		return schema.DayStat{}
	}
	return ParseActivityLog(out)
}

// ParseActivityLog sums per-file numstat records and counts commit
// boundary markers in the raw activity log output. Blank lines and
// non-numeric change indicators (binary file markers) are skipped.
func ParseActivityLog(out []byte) schema.DayStat {
	var insertions, deletions, commits int

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, commitMarker) {
			commits++
			continue
		}

		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		add, okAdd := parseChangeCount(parts[0])
		del, okDel := parseChangeCount(parts[1])
		if !okAdd || !okDel {
			// Binary file markers ("-") and malformed records contribute nothing.
			continue
		}
		insertions += add
		deletions += del
	}

	return schema.NewDayStat(insertions, deletions, commits)
}

// parseChangeCount converts a numstat change field to an int. The second
// return value is false for non-numeric indicators such as "-".
func parseChangeCount(s string) (int, bool) {
	val, err := strconv.Atoi(s)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}
