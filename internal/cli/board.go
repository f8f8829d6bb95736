package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pmlite/pmlite/internal/tui"
)

// boardFlags holds the flags for the board command.
type boardFlags struct {
	watch    bool
	interval time.Duration
	width    int
}

// newBoardCmd creates the board command.
func newBoardCmd(_ *GlobalFlags) *cobra.Command {
	flags := &boardFlags{}

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board",
		Long: `Show the three-column kanban board.

With --watch the board redraws on an interval until q or ctrl+c. Card
numbers are the column positions used by 'pmlite task move'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "refresh the board until interrupted")
	cmd.Flags().DurationVar(&flags.interval, "interval", 2*time.Second, "refresh interval for --watch")
	cmd.Flags().IntVar(&flags.width, "column-width", 0, "inner column width (0 = default)")

	return cmd
}

// runBoard executes the board command.
func runBoard(ctx context.Context, w io.Writer, flags *boardFlags) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	boardCfg := tui.DefaultBoardConfig()
	if flags.width > 0 {
		boardCfg.ColumnWidth = flags.width
	}

	objectives, err := s.Objectives(ctx)
	if err != nil {
		out.Error(err)
		return err
	}
	boardCfg.Objectives = objectives

	if flags.watch {
		cfg := tui.DefaultWatchConfig()
		cfg.Interval = flags.interval
		cfg.Board = boardCfg

		model := tui.NewWatchModel(ctx, s, cfg)
		program := tea.NewProgram(model, tea.WithOutput(w), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			out.Error(err)
			return err
		}
		return nil
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	fmt.Fprintln(w, tui.RenderBoard(tasks, boardCfg))
	return nil
}
