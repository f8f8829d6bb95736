package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	"github.com/pmlite/pmlite/internal/metrics"
	"github.com/pmlite/pmlite/internal/tui"
)

// statsFlags holds the flags for the stats command.
type statsFlags struct {
	json bool
}

// newStatsCmd creates the stats command.
func newStatsCmd(_ *GlobalFlags) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task and note statistics",
		Long: `Show aggregate statistics over the current snapshot.

Task stats cover column counts, open high-priority work, overdue tasks
and the completion rate. Note stats cover counts by type, the last
seven days, and the most frequent tags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd.Context(), cmd.OutOrStdout(), getOutputFormat(cmd, flags.json))
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

// statsReport is the JSON output shape for the stats command.
type statsReport struct {
	Tasks struct {
		Total          int `json:"total"`
		Done           int `json:"done"`
		InProgress     int `json:"inProgress"`
		Todo           int `json:"todo"`
		HighPriority   int `json:"highPriority"`
		Overdue        int `json:"overdue"`
		CompletionRate int `json:"completionRate"`
	} `json:"tasks"`
	Notes struct {
		Total    int            `json:"total"`
		ByType   map[string]int `json:"byType"`
		ThisWeek int            `json:"thisWeek"`
	} `json:"notes"`
	SuggestedTags []metrics.TagCount `json:"suggestedTags"`
}

// runStats executes the stats command.
func runStats(ctx context.Context, w io.Writer, format string) error {
	out := tui.NewOutput(w, format)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	tasks, err := s.Tasks(ctx)
	if err != nil {
		out.Error(err)
		return err
	}
	notes, err := s.Notes(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	c := clock.RealClock{}
	taskStats := metrics.ComputeTaskStats(c, tasks)
	noteStats := metrics.ComputeNoteStats(c, notes)
	tags := metrics.SuggestedTags(notes, constants.SuggestedTagLimit)

	if format == OutputJSON {
		var report statsReport
		report.Tasks.Total = taskStats.Total
		report.Tasks.Done = taskStats.Done
		report.Tasks.InProgress = taskStats.InProgress
		report.Tasks.Todo = taskStats.Todo
		report.Tasks.HighPriority = taskStats.HighPriority
		report.Tasks.Overdue = taskStats.Overdue
		report.Tasks.CompletionRate = taskStats.CompletionRate
		report.Notes.Total = noteStats.Total
		report.Notes.ByType = make(map[string]int, len(noteStats.ByType))
		for t, n := range noteStats.ByType {
			report.Notes.ByType[string(t)] = n
		}
		report.Notes.ThisWeek = noteStats.ThisWeek
		report.SuggestedTags = tags
		return out.JSON(report)
	}

	bold := tui.StyleBold

	fmt.Fprintln(w, bold.Render("Tasks"))
	tui.RenderTable(w, []string{"METRIC", "VALUE"}, [][]string{
		{"Total", strconv.Itoa(taskStats.Total)},
		{"Done", strconv.Itoa(taskStats.Done)},
		{"In Progress", strconv.Itoa(taskStats.InProgress)},
		{"To Do", strconv.Itoa(taskStats.Todo)},
		{"High priority (open)", strconv.Itoa(taskStats.HighPriority)},
		{"Overdue", strconv.Itoa(taskStats.Overdue)},
		{"Completion rate", strconv.Itoa(taskStats.CompletionRate) + "%"},
	})

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold.Render("Notes"))
	noteRows := [][]string{
		{"Total", strconv.Itoa(noteStats.Total)},
		{"This week", strconv.Itoa(noteStats.ThisWeek)},
	}
	for _, t := range domain.ValidNoteTypes() {
		if n := noteStats.ByType[t]; n > 0 {
			noteRows = append(noteRows, []string{string(t), strconv.Itoa(n)})
		}
	}
	tui.RenderTable(w, []string{"METRIC", "VALUE"}, noteRows)

	if len(tags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold.Render("Frequent tags"))
		tagRows := make([][]string, 0, len(tags))
		for _, tc := range tags {
			tagRows = append(tagRows, []string{tc.Tag, strconv.Itoa(tc.Count)})
		}
		tui.RenderTable(w, []string{"TAG", "NOTES"}, tagRows)
	}

	return nil
}
