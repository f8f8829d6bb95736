package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
	"github.com/pmlite/pmlite/internal/metrics"
	"github.com/pmlite/pmlite/internal/store"
	"github.com/pmlite/pmlite/internal/tui"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer for markdown
// note bodies. The renderer is initialized once and reused.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// renderNoteBody renders a markdown note body, falling back to plain text.
func renderNoteBody(w io.Writer, content string) {
	if renderer := getGlamourRenderer(); renderer != nil {
		if rendered, err := renderer.Render(content); err == nil {
			fmt.Fprint(w, rendered)
			return
		}
	}
	fmt.Fprintln(w, content)
}

// noteFlags holds the flags shared by note subcommands.
type noteFlags struct {
	content  string
	tags     string
	date     string
	noteType string
	json     bool
}

// newNoteCmd creates the note command and its subcommands.
func newNoteCmd(global *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
		Long: `Manage notes.

Notes are typed (meeting, decision, action, general), taggable, and kept most
recent first. Bodies tolerate markdown and are rendered on view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteEditCmd())
	cmd.AddCommand(newNoteRmCmd(global))
	cmd.AddCommand(newNoteViewCmd())

	return cmd
}

// noteListFilters narrows the note listing.
type noteListFilters struct {
	noteType string
	tag      string
	search   string
}

// newNoteListCmd creates the note list subcommand.
func newNoteListCmd() *cobra.Command {
	flags := &noteFlags{}
	filters := &noteListFilters{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNoteList(cmd.Context(), cmd.OutOrStdout(), getOutputFormat(cmd, flags.json), filters)
		},
	}

	cmd.Flags().StringVar(&filters.noteType, "type", "", "filter by type (meeting, decision, action, general)")
	cmd.Flags().StringVar(&filters.tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&filters.search, "search", "", "filter by title/content substring")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

// noteView is the JSON output shape for a single note.
type noteView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Date    string   `json:"date,omitempty"`
	Type    string   `json:"type"`
}

// runNoteList executes the note list subcommand.
func runNoteList(ctx context.Context, w io.Writer, format string, filters *noteListFilters) error {
	out := tui.NewOutput(w, format)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	notes, err := s.Notes(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	if filters.noteType != "" {
		t := domain.NoteType(strings.ToLower(filters.noteType))
		if !t.IsValid() {
			err := fmt.Errorf("%w: note type %q must be one of %v", pmerrors.ErrInvalidArgument, filters.noteType, domain.ValidNoteTypes())
			out.Error(err)
			return err
		}
		notes = filterNotes(notes, func(n domain.Note) bool { return n.Type == t })
	}
	if filters.tag != "" {
		notes = filterNotes(notes, func(n domain.Note) bool {
			for _, tag := range n.Tags {
				if tag == filters.tag {
					return true
				}
			}
			return false
		})
	}
	if filters.search != "" {
		needle := strings.ToLower(filters.search)
		notes = filterNotes(notes, func(n domain.Note) bool {
			return strings.Contains(strings.ToLower(n.Title), needle) ||
				strings.Contains(strings.ToLower(n.Content), needle)
		})
	}

	if format == OutputJSON {
		views := make([]noteView, 0, len(notes))
		for _, n := range notes {
			views = append(views, noteView{
				ID:      n.ID.String(),
				Title:   n.Title,
				Content: n.Content,
				Tags:    n.Tags,
				Date:    n.Date,
				Type:    string(n.Type),
			})
		}
		return out.JSON(views)
	}

	if len(notes) == 0 {
		out.Info("no notes; add one with: pmlite note add")
		return nil
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			n.Date,
			string(n.Type),
			tui.Truncate(n.Title, 40),
			strings.Join(n.Tags, ","),
			n.ID.String(),
		})
	}
	tui.RenderTable(w, []string{"DATE", "TYPE", "TITLE", "TAGS", "ID"}, rows)

	if suggested := metrics.SuggestedTags(notes, constants.SuggestedTagLimit); len(suggested) > 0 {
		names := make([]string, 0, len(suggested))
		for _, tc := range suggested {
			names = append(names, tc.Tag)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, tui.StyleDim.Render("frequent tags: "+strings.Join(names, ", ")))
	}
	return nil
}

// filterNotes returns the notes matching the predicate, in order.
func filterNotes(notes []domain.Note, keep func(domain.Note) bool) []domain.Note {
	filtered := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if keep(n) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// newNoteAddCmd creates the note add subcommand.
func newNoteAddCmd() *cobra.Command {
	flags := &noteFlags{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new note",
		Long: `Create a new note at the top of the list.

When --date is omitted the note is stamped with today's date. Without a
title argument an interactive form opens, with tag suggestions drawn
from the most frequent tags across existing notes.

Examples:
  pmlite note add
  pmlite note add "Sprint retro" --content "## Went well..." --type meeting
  pmlite note add "Login rollout" --content "Ship behind a flag" --type decision --tags launch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			return runNoteAdd(cmd.Context(), cmd.OutOrStdout(), flags, title)
		},
	}

	addNoteFieldFlags(cmd, flags)

	return cmd
}

// addNoteFieldFlags registers the note field flags shared by add and edit.
func addNoteFieldFlags(cmd *cobra.Command, flags *noteFlags) {
	cmd.Flags().StringVar(&flags.content, "content", "", "note body (markdown tolerated)")
	cmd.Flags().StringVar(&flags.tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&flags.date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.noteType, "type", "", "note type (meeting, decision, action, general)")
}

// applyNoteFlags copies set flag values onto the draft.
func applyNoteFlags(draft *domain.Note, flags *noteFlags) error {
	if flags.content != "" {
		draft.Content = flags.content
	}
	if flags.tags != "" {
		draft.Tags = domain.SplitTags(flags.tags)
	}
	if flags.date != "" {
		draft.Date = flags.date
	}
	if flags.noteType != "" {
		t := domain.NoteType(strings.ToLower(flags.noteType))
		if !t.IsValid() {
			return fmt.Errorf("%w: note type %q must be one of %v", pmerrors.ErrInvalidArgument, flags.noteType, domain.ValidNoteTypes())
		}
		draft.Type = t
	}
	return nil
}

// runNoteAdd executes the note add subcommand.
func runNoteAdd(ctx context.Context, w io.Writer, flags *noteFlags, title string) error {
	out := tui.NewTTYOutput(w)

	draft := domain.Note{Title: title}
	if err := applyNoteFlags(&draft, flags); err != nil {
		out.Error(err)
		return err
	}

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if draft.Title == "" {
		if err := runNoteForm(ctx, s, &draft); err != nil {
			return err
		}
	}

	created, err := s.CreateNote(ctx, draft)
	if err != nil {
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("id", created.ID.String()).Msg("note created")
	out.Success(fmt.Sprintf("created note %q (id: %s)", created.Title, created.ID))
	return nil
}

// runNoteForm fills the draft interactively. Existing notes feed the
// tag suggestion line.
func runNoteForm(ctx context.Context, s *store.Store, draft *domain.Note) error {
	typeOptions := make([]huh.Option[string], 0, 4)
	for _, t := range domain.ValidNoteTypes() {
		typeOptions = append(typeOptions, huh.NewOption(string(t), string(t)))
	}

	tagHint := "comma-separated"
	if notes, err := s.Notes(ctx); err == nil {
		if suggested := metrics.SuggestedTags(notes, constants.SuggestedTagLimit); len(suggested) > 0 {
			names := make([]string, 0, len(suggested))
			for _, tc := range suggested {
				names = append(names, tc.Tag)
			}
			tagHint = "comma-separated, e.g. " + strings.Join(names, ", ")
		}
	}

	noteType := string(domain.NoteMeeting)
	if draft.Type != "" {
		noteType = string(draft.Type)
	}
	var tags string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title),
			huh.NewText().
				Title("Content").
				Value(&draft.Content),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(&noteType),
			huh.NewInput().
				Title("Tags").
				Description(tagHint).
				Value(&tags),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	draft.Type = domain.NoteType(noteType)
	if tags != "" {
		draft.Tags = domain.SplitTags(tags)
	}
	return nil
}

// newNoteEditCmd creates the note edit subcommand.
func newNoteEditCmd() *cobra.Command {
	flags := &noteFlags{}
	var title string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note",
		Long:  `Edit a note. Flags that are set replace the stored field; an omitted --date keeps the previous date.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteEdit(cmd.Context(), cmd.OutOrStdout(), flags, title, args[0])
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	addNoteFieldFlags(cmd, flags)

	return cmd
}

// runNoteEdit executes the note edit subcommand.
func runNoteEdit(ctx context.Context, w io.Writer, flags *noteFlags, title, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	current, err := s.Note(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	draft := current
	if title != "" {
		draft.Title = title
	}
	if err := applyNoteFlags(&draft, flags); err != nil {
		out.Error(err)
		return err
	}

	if err := s.UpdateNote(ctx, current.ID, draft); err != nil {
		out.Error(err)
		return err
	}

	out.Success(fmt.Sprintf("updated note %q", draft.Title))
	return nil
}

// newNoteRmCmd creates the note rm subcommand.
func newNoteRmCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteRm(cmd.Context(), cmd.OutOrStdout(), global, args[0])
		},
	}
}

// runNoteRm executes the note rm subcommand.
func runNoteRm(ctx context.Context, w io.Writer, global *GlobalFlags, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	current, err := s.Note(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	confirmed, err := confirmDeletion(global, "note", current.Title)
	if err != nil {
		return err
	}

	if err := s.DeleteNote(ctx, current.ID, confirmed); err != nil {
		if errors.Is(err, pmerrors.ErrNotConfirmed) {
			out.Info("delete canceled")
			return nil
		}
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().Str("id", id).Msg("note deleted")
	out.Success(fmt.Sprintf("deleted note %q", current.Title))
	return nil
}

// newNoteViewCmd creates the note view subcommand.
func newNoteViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Render a note's body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteView(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

// runNoteView executes the note view subcommand.
func runNoteView(ctx context.Context, w io.Writer, id string) error {
	out := tui.NewTTYOutput(w)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	note, err := s.Note(ctx, domain.ID(id))
	if err != nil {
		out.Error(err)
		return err
	}

	fmt.Fprintln(w, tui.StyleBold.Render(note.Title))
	meta := []string{string(note.Type)}
	if note.Date != "" {
		meta = append(meta, note.Date)
	}
	if len(note.Tags) > 0 {
		meta = append(meta, strings.Join(note.Tags, ", "))
	}
	fmt.Fprintln(w, tui.StyleDim.Render(strings.Join(meta, " · ")))
	fmt.Fprintln(w)
	renderNoteBody(w, note.Content)
	return nil
}
