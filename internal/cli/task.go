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

	"github.com/pmlite/pmlite/internal/board"
	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
	"github.com/pmlite/pmlite/internal/metrics"
	"github.com/pmlite/pmlite/internal/tui"
)

// taskFlags holds the flags shared by task subcommands.
type taskFlags struct {
	description string
	priority    string
	status      string
	due         string
	effort      string
	tags        string
	okr         string
	json        bool
}

// newTaskCmd creates the task command and its subcommands.
func newTaskCmd(global *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage backlog tasks",
		Long: `Manage backlog tasks.

Tasks live in one ordered sequence partitioned by status into the three
board columns. Due-date urgency is derived on every read.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskEditCmd())
	cmd.AddCommand(newTaskRmCmd(global))
	cmd.AddCommand(newTaskMoveCmd())

	return cmd
}

// newTaskListCmd creates the task list subcommand.
func newTaskListCmd() *cobra.Command {
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with due-date urgency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskList(cmd.Context(), cmd.OutOrStdout(), getOutputFormat(cmd, flags.json), flags.status, flags.priority)
		},
	}

	cmd.Flags().StringVar(&flags.status, "status", "", "filter by column (todo, in-progress, done)")
	cmd.Flags().StringVar(&flags.priority, "priority", "", "filter by priority (High, Medium, Low)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

// taskView is the JSON output shape for a single task.
type taskView struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Priority string   `json:"priority"`
	Status   string   `json:"status"`
	Due      string   `json:"due,omitempty"`
	DueLabel string   `json:"dueLabel,omitempty"`
	Urgency  string   `json:"urgency,omitempty"`
	Effort   string   `json:"effort"`
	Tags     []string `json:"tags,omitempty"`
	OKRID    string   `json:"okrId,omitempty"`
	OKRTitle string   `json:"okrTitle,omitempty"`
}

// runTaskList executes the task list subcommand.
func runTaskList(ctx context.Context, w io.Writer, format, statusFilter, priorityFilter string) error {
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

	objectives, err := s.Objectives(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	if statusFilter != "" {
		status, err := parseColumn(statusFilter)
		if err != nil {
			out.Error(err)
			return err
		}
		tasks = board.Column(tasks, status)
	}

	if priorityFilter != "" {
		p := domain.Priority(priorityFilter)
		if !p.IsValid() {
			err := fmt.Errorf("%w: priority %q must be one of %v", pmerrors.ErrInvalidArgument, priorityFilter, domain.ValidPriorities())
			out.Error(err)
			return err
		}
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Priority == p {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	c := clock.RealClock{}

	if format == OutputJSON {
		views := make([]taskView, 0, len(tasks))
		for _, t := range tasks {
			urgency, label := metrics.DueStatus(c, t)
			okrID := ""
			if !t.OKRID.IsZero() {
				okrID = t.OKRID.String()
			}
			okrTitle := ""
			if linked := domain.LookupObjective(objectives, t.OKRID); linked != nil {
				okrTitle = linked.Title
			}
			views = append(views, taskView{
				ID:       t.ID.String(),
				Title:    t.Title,
				Priority: string(t.Priority),
				Status:   string(t.Status),
				Due:      t.Due,
				DueLabel: label,
				Urgency:  string(urgency),
				Effort:   string(t.Effort),
				Tags:     t.Tags,
				OKRID:    okrID,
				OKRTitle: okrTitle,
			})
		}
		return out.JSON(views)
	}

	if len(tasks) == 0 {
		out.Info("no tasks; add one with: pmlite task add")
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		urgency, label := metrics.DueStatus(c, t)
		due := t.Due
		if label != "" {
			due = tui.UrgencyStyle(urgency).Render(label)
		}
		okrTitle := ""
		if linked := domain.LookupObjective(objectives, t.OKRID); linked != nil {
			okrTitle = tui.Truncate(linked.Title, 24)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			tui.TaskStatusIcon(t.Status) + " " + string(t.Status),
			tui.Truncate(t.Title, 40),
			string(t.Priority),
			string(t.Effort),
			due,
			strings.Join(t.Tags, ","),
			okrTitle,
			t.ID.String(),
		})
	}
	tui.RenderTable(w, []string{"#", "STATUS", "TITLE", "PRI", "EFF", "DUE", "TAGS", "OKR", "ID"}, rows)
	return nil
}

// newTaskAddCmd creates the task add subcommand.
func newTaskAddCmd() *cobra.Command {
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Long: `Create a new task at the end of the backlog.

Defaults: Medium priority, To Do status, M effort.

Without a title argument an interactive form collects the fields.

Examples:
  pmlite task add "Fix login redirect" --priority High --due 2025-04-01
  pmlite task add "Write launch notes" --tags docs,launch --okr <objective-id>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			return runTaskAdd(cmd.Context(), cmd.OutOrStdout(), flags, title)
		},
	}

	addTaskFieldFlags(cmd, flags)

	return cmd
}

// addTaskFieldFlags registers the task field flags shared by add and edit.
func addTaskFieldFlags(cmd *cobra.Command, flags *taskFlags) {
	cmd.Flags().StringVar(&flags.description, "description", "", "longer description")
	cmd.Flags().StringVar(&flags.priority, "priority", "", "priority (High, Medium, Low)")
	cmd.Flags().StringVar(&flags.status, "status", "", "column (todo, in-progress, done)")
	cmd.Flags().StringVar(&flags.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.effort, "effort", "", "t-shirt estimate (XS, S, M, L, XL)")
	cmd.Flags().StringVar(&flags.tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&flags.okr, "okr", "", "objective id to link")
}

// applyTaskFlags copies set flag values onto the draft.
func applyTaskFlags(draft *domain.Task, flags *taskFlags) error {
	if flags.description != "" {
		draft.Description = flags.description
	}
	if flags.priority != "" {
		p := domain.Priority(flags.priority)
		if !p.IsValid() {
			return fmt.Errorf("%w: priority %q must be one of %v", pmerrors.ErrInvalidArgument, flags.priority, domain.ValidPriorities())
		}
		draft.Priority = p
	}
	if flags.status != "" {
		status, err := parseColumn(flags.status)
		if err != nil {
			return err
		}
		draft.Status = status
	}
	if flags.due != "" {
		draft.Due = flags.due
	}
	if flags.effort != "" {
		e := domain.Effort(strings.ToUpper(flags.effort))
		if !e.IsValid() {
			return fmt.Errorf("%w: effort %q must be one of %v", pmerrors.ErrInvalidArgument, flags.effort, domain.ValidEfforts())
		}
		draft.Effort = e
	}
	if flags.tags != "" {
		draft.Tags = domain.SplitTags(flags.tags)
	}
	if flags.okr != "" {
		draft.OKRID = domain.ID(flags.okr)
	}
	return nil
}

// runTaskAdd executes the task add subcommand.
func runTaskAdd(ctx context.Context, w io.Writer, flags *taskFlags, title string) error {
	out := tui.NewTTYOutput(w)

	draft := domain.Task{Title: title}
	if err := applyTaskFlags(&draft, flags); err != nil {
		out.Error(err)
		return err
	}

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if draft.Title == "" {
		if err := runTaskForm(&draft); err != nil {
			return err
		}
	}

	created, err := s.CreateTask(ctx, draft)
	if err != nil {
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("id", created.ID.String()).Msg("task created")
	out.Success(fmt.Sprintf("created task %q (id: %s)", created.Title, created.ID))
	return nil
}

// runTaskForm fills the draft interactively.
func runTaskForm(draft *domain.Task) error {
	priorityOptions := make([]huh.Option[string], 0, 3)
	for _, p := range domain.ValidPriorities() {
		priorityOptions = append(priorityOptions, huh.NewOption(string(p), string(p)))
	}
	effortOptions := make([]huh.Option[string], 0, 5)
	for _, e := range domain.ValidEfforts() {
		effortOptions = append(effortOptions, huh.NewOption(string(e), string(e)))
	}

	priority := string(domain.PriorityMedium)
	if draft.Priority != "" {
		priority = string(draft.Priority)
	}
	effort := string(domain.EffortM)
	if draft.Effort != "" {
		effort = string(draft.Effort)
	}
	var tags string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title),
			huh.NewText().
				Title("Description").
				Value(&draft.Description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions...).
				Value(&priority),
			huh.NewSelect[string]().
				Title("Effort").
				Options(effortOptions...).
				Value(&effort),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, optional").
				Value(&draft.Due),
			huh.NewInput().
				Title("Tags").
				Description("comma-separated, e.g. "+strings.Join(domain.TagOptions(), ", ")).
				Value(&tags),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	draft.Priority = domain.Priority(priority)
	draft.Effort = domain.Effort(effort)
	if tags != "" {
		draft.Tags = domain.SplitTags(tags)
	}
	return nil
}

// newTaskEditCmd creates the task edit subcommand.
func newTaskEditCmd() *cobra.Command {
	flags := &taskFlags{}
	var title string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  `Edit a task. Flags that are set replace the stored field; the rest keep their values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskEdit(cmd.Context(), cmd.OutOrStdout(), flags, title, args[0])
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	addTaskFieldFlags(cmd, flags)

	return cmd
}

// runTaskEdit executes the task edit subcommand.
func runTaskEdit(ctx context.Context, w io.Writer, flags *taskFlags, title, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	current, err := s.Task(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	draft := current
	if title != "" {
		draft.Title = title
	}
	if err := applyTaskFlags(&draft, flags); err != nil {
		out.Error(err)
		return err
	}

	if err := s.UpdateTask(ctx, current.ID, draft); err != nil {
		out.Error(err)
		return err
	}

	out.Success(fmt.Sprintf("updated task %q", draft.Title))
	return nil
}

// newTaskRmCmd creates the task rm subcommand.
func newTaskRmCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskRm(cmd.Context(), cmd.OutOrStdout(), global, args[0])
		},
	}
}

// runTaskRm executes the task rm subcommand.
func runTaskRm(ctx context.Context, w io.Writer, global *GlobalFlags, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	current, err := s.Task(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	confirmed, err := confirmDeletion(global, "task", current.Title)
	if err != nil {
		return err
	}

	if err := s.DeleteTask(ctx, current.ID, confirmed); err != nil {
		if errors.Is(err, pmerrors.ErrNotConfirmed) {
			out.Info("delete canceled")
			return nil
		}
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("id", id).Msg("task deleted")
	out.Success(fmt.Sprintf("deleted task %q", current.Title))
	return nil
}

// newTaskMoveCmd creates the task move subcommand.
func newTaskMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <src-column> <n> <dst-column> [m]",
		Short: "Move a task on the board",
		Long: `Move the n-th task (1-based) of a column.

Within the same column the task is spliced to position m. Across
columns the task changes status; the destination position is accepted
for symmetry but the task keeps its stored position.

Columns: todo, in-progress, done.

Examples:
  pmlite task move todo 1 todo 3
  pmlite task move todo 2 in-progress`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskMove(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	return cmd
}

// runTaskMove executes the task move subcommand.
func runTaskMove(ctx context.Context, w io.Writer, args []string) error {
	out := tui.NewTTYOutput(w)

	move, err := parseMove(args)
	if err != nil {
		out.Error(err)
		return err
	}

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := s.MoveTask(ctx, move); err != nil {
		out.Error(err)
		return err
	}

	if move.SrcCol == move.DstCol {
		out.Success(fmt.Sprintf("reordered %s column", move.SrcCol))
	} else {
		out.Success(fmt.Sprintf("moved task from %s to %s", move.SrcCol, move.DstCol))
	}
	return nil
}

// parseMove builds a board.Move from the positional arguments.
func parseMove(args []string) (board.Move, error) {
	srcCol, err := parseColumn(args[0])
	if err != nil {
		return board.Move{}, err
	}
	srcIdx, err := strconv.Atoi(args[1])
	if err != nil || srcIdx < 1 {
		return board.Move{}, fmt.Errorf("%w: position %q must be a positive number", pmerrors.ErrInvalidArgument, args[1])
	}
	dstCol, err := parseColumn(args[2])
	if err != nil {
		return board.Move{}, err
	}
	dstIdx := srcIdx
	if len(args) == 4 {
		dstIdx, err = strconv.Atoi(args[3])
		if err != nil || dstIdx < 1 {
			return board.Move{}, fmt.Errorf("%w: position %q must be a positive number", pmerrors.ErrInvalidArgument, args[3])
		}
	}
	return board.Move{
		SrcCol: srcCol,
		SrcIdx: srcIdx - 1,
		DstCol: dstCol,
		DstIdx: dstIdx - 1,
	}, nil
}

// parseColumn resolves a user-supplied column name to a task status.
func parseColumn(input string) (domain.TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "todo", "to-do", "to do":
		return domain.StatusToDo, nil
	case "in-progress", "inprogress", "in progress", "doing":
		return domain.StatusInProgress, nil
	case "done":
		return domain.StatusDone, nil
	default:
		return "", fmt.Errorf("%w: column %q must be one of todo, in-progress, done", pmerrors.ErrInvalidArgument, input)
	}
}
