package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
	"github.com/pmlite/pmlite/internal/metrics"
	"github.com/pmlite/pmlite/internal/tui"
)

// okrFlags holds the flags shared by okr subcommands.
type okrFlags struct {
	owner      string
	due        string
	keyResults []string
	json       bool
}

// newOKRCmd creates the okr command and its subcommands.
func newOKRCmd(global *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "okr",
		Short: "Manage objectives and key results",
		Long: `Manage objectives and key results.

Progress and health are derived on every read: progress is the done
percentage of the key results, and the status classification weighs
that progress against the time left until the due date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newOKRListCmd())
	cmd.AddCommand(newOKRAddCmd())
	cmd.AddCommand(newOKREditCmd())
	cmd.AddCommand(newOKRRmCmd(global))
	cmd.AddCommand(newOKRToggleCmd())
	cmd.AddCommand(newOKRTitleCmd())

	return cmd
}

// newOKRListCmd creates the okr list subcommand.
func newOKRListCmd() *cobra.Command {
	flags := &okrFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objectives with derived progress and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOKRList(cmd.Context(), cmd.OutOrStdout(), getOutputFormat(cmd, flags.json))
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

// okrView is the JSON output shape for a single objective.
type okrView struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Owner       string             `json:"owner"`
	Due         string             `json:"due"`
	Progress    int                `json:"progress"`
	Status      string             `json:"status"`
	Remaining   string             `json:"remaining,omitempty"`
	KeyResults  []domain.KeyResult `json:"keyResults"`
	LinkedTasks struct {
		Total int `json:"total"`
		Done  int `json:"done"`
	} `json:"linkedTasks"`
}

// runOKRList executes the okr list subcommand.
func runOKRList(ctx context.Context, w io.Writer, format string) error {
	out := tui.NewOutput(w, format)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	objectives, err := s.Objectives(ctx)
	if err != nil {
		out.Error(err)
		return err
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		out.Error(err)
		return err
	}
	title, err := s.PageTitle(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	c := clock.RealClock{}

	if format == OutputJSON {
		views := make([]okrView, 0, len(objectives))
		for _, o := range objectives {
			v := okrView{
				ID:         o.ID.String(),
				Title:      o.Title,
				Owner:      o.Owner,
				Due:        o.Due,
				Progress:   metrics.Progress(o),
				Status:     string(metrics.ClassifyStatus(c, o)),
				Remaining:  metrics.DaysRemaining(c, o.Due),
				KeyResults: o.KeyResults,
			}
			v.LinkedTasks.Total, v.LinkedTasks.Done = metrics.LinkedTaskCounts(tasks, o.ID)
			views = append(views, v)
		}
		return out.JSON(struct {
			Title      string    `json:"title"`
			Objectives []okrView `json:"objectives"`
		}{Title: title, Objectives: views})
	}

	fmt.Fprintln(w, tui.StyleBold.Render(title))
	fmt.Fprintln(w)

	if len(objectives) == 0 {
		out.Info("no objectives yet; add one with: pmlite okr add")
		return nil
	}

	bar := tui.NewProgressBar(24)
	statusColors := tui.ObjectiveStatusColors()

	for i, o := range objectives {
		progress := metrics.Progress(o)
		status := metrics.ClassifyStatus(c, o)
		remaining := metrics.DaysRemaining(c, o.Due)
		total, done := metrics.LinkedTaskCounts(tasks, o.ID)

		statusStyle := tui.StyleBold
		if color, ok := statusColors[status]; ok {
			statusStyle = statusStyle.Foreground(color)
		}

		fmt.Fprintf(w, "%d. %s %s\n", i+1, tui.ObjectiveStatusIcon(status), tui.StyleBold.Render(o.Title))
		fmt.Fprintf(w, "   %s %3d%%  %s\n", bar.Render(float64(progress)/100), progress, statusStyle.Render(string(status)))

		meta := []string{o.Owner, "due " + o.Due}
		if remaining != "" {
			meta = append(meta, remaining)
		}
		if total > 0 {
			meta = append(meta, fmt.Sprintf("%d/%d linked tasks done", done, total))
		}
		fmt.Fprintf(w, "   %s\n", tui.StyleDim.Render(strings.Join(meta, " · ")))

		for j, kr := range o.KeyResults {
			check := "[ ]"
			if kr.Done {
				check = "[x]"
			}
			fmt.Fprintf(w, "   %s %d. %s\n", check, j+1, kr.Text)
		}
		fmt.Fprintf(w, "   %s\n\n", tui.StyleDim.Render("id: "+o.ID.String()))
	}

	return nil
}

// newOKRAddCmd creates the okr add subcommand.
func newOKRAddCmd() *cobra.Command {
	flags := &okrFlags{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new objective",
		Long: `Create a new objective.

Blank key results are dropped and every kept key result starts
unchecked. When --due is omitted the objective is due "End of Quarter".
Without a title argument an interactive form collects the fields.

Examples:
  pmlite okr add "Ship the v2 API" --kr "Design review" --kr "Cutover"
  pmlite okr add "Hire two engineers" --due 2025-06-30`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			return runOKRAdd(cmd.Context(), cmd.OutOrStdout(), flags, title)
		},
	}

	cmd.Flags().StringVar(&flags.owner, "owner", "", "objective owner")
	cmd.Flags().StringVar(&flags.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&flags.keyResults, "kr", nil, "key result text (repeatable)")

	return cmd
}

// runOKRAdd executes the okr add subcommand.
func runOKRAdd(ctx context.Context, w io.Writer, flags *okrFlags, title string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	draft := domain.Objective{
		Title: title,
		Owner: flags.owner,
		Due:   flags.due,
	}
	for _, text := range flags.keyResults {
		draft.KeyResults = append(draft.KeyResults, domain.KeyResult{Text: text})
	}

	if draft.Title == "" {
		if err := runOKRForm(&draft); err != nil {
			return err
		}
	}

	created, err := s.CreateObjective(ctx, draft)
	if err != nil {
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("id", created.ID.String()).Msg("objective created")
	out.Success(fmt.Sprintf("created objective %q (id: %s)", created.Title, created.ID))
	return nil
}

// runOKRForm fills the draft interactively. Key results are entered one
// per line; blank lines are dropped later by the store.
func runOKRForm(draft *domain.Objective) error {
	var keyResults string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title),
			huh.NewInput().
				Title("Owner").
				Value(&draft.Owner),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, blank for End of Quarter").
				Value(&draft.Due),
			huh.NewText().
				Title("Key results").
				Description("one per line").
				Value(&keyResults),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	for _, line := range strings.Split(keyResults, "\n") {
		if text := strings.TrimSpace(line); text != "" {
			draft.KeyResults = append(draft.KeyResults, domain.KeyResult{Text: text})
		}
	}
	return nil
}

// newOKREditCmd creates the okr edit subcommand.
func newOKREditCmd() *cobra.Command {
	flags := &okrFlags{}
	var title string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an objective",
		Long: `Edit an objective. Flags that are set replace the stored field;
an omitted --due keeps the previous due date. Passing --kr replaces the
whole key result list and resets completion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOKREdit(cmd.Context(), cmd.OutOrStdout(), flags, title, args[0])
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&flags.owner, "owner", "", "new owner")
	cmd.Flags().StringVar(&flags.due, "due", "", "new due date")
	cmd.Flags().StringArrayVar(&flags.keyResults, "kr", nil, "replace key results (repeatable)")

	return cmd
}

// runOKREdit executes the okr edit subcommand.
func runOKREdit(ctx context.Context, w io.Writer, flags *okrFlags, title, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	current, err := s.Objective(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	draft := current
	if title != "" {
		draft.Title = title
	}
	if flags.owner != "" {
		draft.Owner = flags.owner
	}
	draft.Due = flags.due // empty keeps the stored date
	if flags.keyResults != nil {
		draft.KeyResults = nil
		for _, text := range flags.keyResults {
			draft.KeyResults = append(draft.KeyResults, domain.KeyResult{Text: text})
		}
	}

	if err := s.UpdateObjective(ctx, current.ID, draft); err != nil {
		out.Error(err)
		return err
	}

	out.Success(fmt.Sprintf("updated objective %q", draft.Title))
	return nil
}

// newOKRRmCmd creates the okr rm subcommand.
func newOKRRmCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an objective",
		Long: `Delete an objective after confirmation.

Tasks linked to the objective are kept; their link simply resolves as
unlinked afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOKRRm(cmd.Context(), cmd.OutOrStdout(), global, args[0])
		},
	}
}

// runOKRRm executes the okr rm subcommand.
func runOKRRm(ctx context.Context, w io.Writer, global *GlobalFlags, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	current, err := s.Objective(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	confirmed, err := confirmDeletion(global, "objective", current.Title)
	if err != nil {
		return err
	}

	if err := s.DeleteObjective(ctx, current.ID, confirmed); err != nil {
		if errors.Is(err, pmerrors.ErrNotConfirmed) {
			out.Info("delete canceled")
			return nil
		}
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("id", id).Msg("objective deleted")
	out.Success(fmt.Sprintf("deleted objective %q", current.Title))
	return nil
}

// newOKRToggleCmd creates the okr toggle subcommand.
func newOKRToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id> <n>",
		Short: "Toggle the n-th key result of an objective",
		Long: `Flip completion of the n-th key result (1-based) of an objective.
Toggling is not recorded in the activity feed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOKRToggle(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

// runOKRToggle executes the okr toggle subcommand.
func runOKRToggle(ctx context.Context, w io.Writer, id, position string) error {
	out := tui.NewTTYOutput(w)

	n, err := strconv.Atoi(position)
	if err != nil || n < 1 {
		err = fmt.Errorf("%w: key result position %q must be a positive number", pmerrors.ErrInvalidArgument, position)
		out.Error(err)
		return err
	}

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := s.ToggleKeyResult(ctx, domain.ID(id), n-1); err != nil {
		out.Error(err)
		return err
	}

	updated, err := s.Objective(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	out.Success(fmt.Sprintf("objective %q now at %d%%", updated.Title, metrics.Progress(updated)))
	return nil
}

// newOKRTitleCmd creates the okr title subcommand.
func newOKRTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title [new title]",
		Short: "Show or set the OKR page heading",
		Long: fmt.Sprintf(`Show or set the OKR page heading.

Without an argument the current heading is printed; the default before
any override is %q.`, constants.DefaultPageTitle),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newTitle := ""
			if len(args) == 1 {
				newTitle = args[0]
			}
			return runOKRTitle(cmd.Context(), cmd.OutOrStdout(), newTitle)
		},
	}
}

// runOKRTitle executes the okr title subcommand.
func runOKRTitle(ctx context.Context, w io.Writer, newTitle string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if newTitle == "" {
		title, err := s.PageTitle(ctx)
		if err != nil {
			out.Error(err)
			return err
		}
		fmt.Fprintln(w, title)
		return nil
	}

	if err := s.SetPageTitle(ctx, newTitle); err != nil {
		out.Error(err)
		return err
	}

	out.Success(fmt.Sprintf("page heading set to %q", newTitle))
	return nil
}
