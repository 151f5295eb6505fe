// Package outwriter renders dashboard views as terminal tables.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"gittrack/internal/contract"
	"gittrack/schema"
)

// Space reserved for the fixed columns of each table, including
// borders and padding.
const (
	reposBaseWidth = 50 // ID + Name + State
	runsBaseWidth  = 68 // ID + Started + Status + Duration + Repos
)

// TerminalWidth returns the configured width override, or the detected
// terminal width, or a conservative default for pipes and CI.
func TerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// MaxPathCellWidth calculates the width available for the path column
// in the repos table based on terminal width.
func MaxPathCellWidth(cfg *contract.Config) int {
	available := TerminalWidth(cfg) - reposBaseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// MaxErrorCellWidth calculates the width available for the error
// column in the runs table based on terminal width.
func MaxErrorCellWidth(cfg *contract.Config) int {
	available := TerminalWidth(cfg) - runsBaseWidth
	if available < 20 {
		return 20
	}
	if available > 60 {
		return 60
	}
	return available
}

// truncatePath truncates a path to maxWidth runes with an ellipsis
// prefix, keeping the tail.
func truncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

func renderRows(w io.Writer, headers []string, rows [][]string) error {
	table := newTable(w, headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// WriteRepos renders the tracked repository list, with paths sized to
// the terminal.
func WriteRepos(w io.Writer, repos []schema.Repo, cfg *contract.Config) error {
	pathWidth := MaxPathCellWidth(cfg)
	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		state := "active"
		if !r.Active {
			state = "disabled"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10), r.Name, truncatePath(r.Path, pathWidth), state,
		})
	}
	return renderRows(w, []string{"ID", "Name", "Path", "State"}, rows)
}

// WriteSummary renders the top-line view: last run plus day count.
func WriteSummary(w io.Writer, summary *schema.Summary) error {
	if summary.LastRun == nil {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintf(w, "Days tracked: %d\n", summary.TotalDays)
		return nil
	}
	last := summary.LastRun
	rows := [][]string{
		{"Last run", last.FinishedAt.Format("2006-01-02 15:04:05")},
		{"Status", contract.ColorStatus(string(last.Status))},
		{"Duration", (time.Duration(last.DurationMs) * time.Millisecond).String()},
		{"Repos scanned", strconv.Itoa(last.ScannedRepos)},
		{"Days tracked", strconv.Itoa(summary.TotalDays)},
	}
	if last.ErrorMessage != "" {
		rows = append(rows, []string{"Error", last.ErrorMessage})
	}
	return renderRows(w, []string{"Field", "Value"}, rows)
}

// WriteDailyEdits renders the edits series with moving averages.
func WriteDailyEdits(w io.Writer, points []schema.EditPoint) error {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date,
			strconv.Itoa(p.Insertions),
			strconv.Itoa(p.Deletions),
			strconv.Itoa(p.Edits),
			strconv.Itoa(p.Commits),
			fmt.Sprintf("%.1f", p.MA7),
			fmt.Sprintf("%.1f", p.MA30),
		})
	}
	return renderRows(w, []string{"Date", "Ins", "Del", "Edits", "Commits", "MA7", "MA30"}, rows)
}

// WriteNetLines renders the cumulative net-lines series.
func WriteNetLines(w io.Writer, points []schema.NetLinePoint) error {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date, strconv.FormatInt(p.Net, 10)})
	}
	return renderRows(w, []string{"Date", "Net Lines"}, rows)
}

// WriteBreakdown renders per-repo contributions, busiest first.
func WriteBreakdown(w io.Writer, contribs []schema.RepoContribution) error {
	rows := make([][]string, 0, len(contribs))
	for _, c := range contribs {
		rows = append(rows, []string{
			c.Name,
			strconv.Itoa(c.Insertions),
			strconv.Itoa(c.Deletions),
			strconv.Itoa(c.Edits),
			strconv.Itoa(c.Commits),
		})
	}
	return renderRows(w, []string{"Repo", "Ins", "Del", "Edits", "Commits"}, rows)
}

// WriteRuns renders the run ledger, newest first, with error messages
// sized to the terminal.
func WriteRuns(w io.Writer, runs []schema.Run, cfg *contract.Config) error {
	errWidth := MaxErrorCellWidth(cfg)
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		errMsg := r.ErrorMessage
		if len(errMsg) > errWidth {
			errMsg = errMsg[:errWidth-3] + "..."
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Format("2006-01-02 15:04:05"),
			contract.ColorStatus(string(r.Status)),
			(time.Duration(r.DurationMs) * time.Millisecond).String(),
			strconv.Itoa(r.ScannedRepos),
			errMsg,
		})
	}
	return renderRows(w, []string{"ID", "Started", "Status", "Duration", "Repos", "Error"}, rows)
}

// WriteStreaks renders activity streaks and run duration stats.
func WriteStreaks(w io.Writer, streaks *schema.Streaks, durations *schema.RunDurationStats) error {
	rows := [][]string{
		{"Current streak", fmt.Sprintf("%d days", streaks.Current)},
		{"Longest streak", fmt.Sprintf("%d days", streaks.Longest)},
	}
	if durations != nil {
		rows = append(rows,
			[]string{"Mean run time", fmt.Sprintf("%.0f ms", durations.MeanMs)},
			[]string{"Median run time", fmt.Sprintf("%.0f ms", durations.MedianMs)},
		)
	}
	return renderRows(w, []string{"Field", "Value"}, rows)
}
