package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/pmlite/pmlite/internal/tui"
)

// activityFlags holds the flags for the activity command.
type activityFlags struct {
	limit int
	json  bool
}

// newActivityCmd creates the activity command and its subcommands.
func newActivityCmd(global *GlobalFlags) *cobra.Command {
	flags := &activityFlags{}

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the activity feed",
		Long: `Show the activity feed, newest entry first.

Every create, edit, delete and cross-column move appends an entry. The
feed grows until cleared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActivityList(cmd.Context(), cmd.OutOrStdout(), getOutputFormat(cmd, flags.json), flags.limit)
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "show at most n entries (0 = all)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	cmd.AddCommand(newActivityClearCmd(global))

	return cmd
}

// runActivityList executes the activity command.
func runActivityList(ctx context.Context, w io.Writer, format string, limit int) error {
	out := tui.NewOutput(w, format)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	var entries []domainActivity
	raw, err := s.Activity(ctx)
	if err != nil {
		out.Error(err)
		return err
	}
	if limit > 0 && limit < len(raw) {
		raw = raw[:limit]
	}
	for _, e := range raw {
		entries = append(entries, domainActivity{
			Action:    e.Action,
			Timestamp: e.Timestamp.Format("2006-01-02 15:04"),
			Relative:  tui.RelativeTime(e.Timestamp),
		})
	}

	if format == OutputJSON {
		return out.JSON(entries)
	}

	if len(entries) == 0 {
		out.Info("no activity yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Relative, e.Action})
	}
	tui.RenderTable(w, []string{"WHEN", "ACTION"}, rows)
	return nil
}

// domainActivity is the JSON output shape for a feed entry.
type domainActivity struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	Relative  string `json:"relative"`
}

// newActivityClearCmd creates the activity clear subcommand.
func newActivityClearCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire activity feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActivityClear(cmd.Context(), cmd.OutOrStdout(), global)
		},
	}
}

// runActivityClear executes the activity clear subcommand.
func runActivityClear(ctx context.Context, w io.Writer, global *GlobalFlags) error {
	out := tui.NewTTYOutput(w)

	confirmed, err := confirmDeletion(global, "activity feed", "all entries")
	if err != nil {
		return err
	}
	if !confirmed {
		out.Info("clear canceled")
		return nil
	}

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := s.ClearActivity(ctx); err != nil {
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Msg("activity feed cleared")
	out.Success("activity feed cleared")
	return nil
}
