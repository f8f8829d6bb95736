package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	"github.com/pmlite/pmlite/internal/metrics"
	"github.com/pmlite/pmlite/internal/store"
	"github.com/pmlite/pmlite/internal/tui"
)

// dashboardFlags holds the flags for the dashboard command.
type dashboardFlags struct {
	json bool
}

// newDashboardCmd creates the dashboard command.
func newDashboardCmd(_ *GlobalFlags) *cobra.Command {
	flags := &dashboardFlags{}

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show the overview dashboard",
		Long: `Show the overview dashboard: greeting, OKR health, task stats and
the latest activity. All sections are loaded concurrently from the
same snapshot source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), cmd.OutOrStdout(), getOutputFormat(cmd, flags.json))
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

// dashboardData is everything the dashboard renders, loaded concurrently.
type dashboardData struct {
	session    store.Session
	title      string
	tasks      []domain.Task
	objectives []domain.Objective
	notes      []domain.Note
	activity   []domain.ActivityEntry
}

// loadDashboardData fetches all dashboard sections concurrently.
func loadDashboardData(ctx context.Context, s *store.Store) (*dashboardData, error) {
	data := &dashboardData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.session, err = s.Session(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.title, err = s.PageTitle(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.tasks, err = s.Tasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.objectives, err = s.Objectives(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.notes, err = s.Notes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.activity, err = s.RecentActivity(gctx, constants.RecentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// greeting builds the time-of-day salutation for the dashboard header.
func greeting(c clock.Clock, session store.Session) string {
	hour := c.Now().Hour()
	salutation := "Good evening"
	switch {
	case hour < 12:
		salutation = "Good morning"
	case hour < 18:
		salutation = "Good afternoon"
	}
	return salutation + ", " + greetingName(session) + "!"
}

// greetingName derives a display name from the signed-in email's local
// part, falling back to a generic greeting when signed out.
func greetingName(session store.Session) string {
	if !session.Authenticated || session.Email == "" {
		return "there"
	}
	local := session.Email
	if at := strings.IndexByte(local, '@'); at > 0 {
		local = local[:at]
	}
	return local
}

// runDashboard executes the dashboard command.
func runDashboard(ctx context.Context, w io.Writer, format string) error {
	out := tui.NewOutput(w, format)

	s, closer, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closer()

	data, err := loadDashboardData(ctx, s)
	if err != nil {
		out.Error(err)
		return err
	}

	c := clock.RealClock{}
	taskStats := metrics.ComputeTaskStats(c, data.tasks)
	noteStats := metrics.ComputeNoteStats(c, data.notes)

	if format == OutputJSON {
		return out.JSON(buildDashboardReport(c, data, taskStats, noteStats))
	}

	fmt.Fprintf(w, "%s\n\n", tui.StyleBold.Render(greeting(c, data.session)))

	fmt.Fprintln(w, tui.StyleBold.Render(data.title))
	if len(data.objectives) == 0 {
		fmt.Fprintln(w, tui.StyleDim.Render("no objectives yet"))
	}
	statusColors := tui.ObjectiveStatusColors()
	for _, o := range data.objectives {
		status := metrics.ClassifyStatus(c, o)
		style := tui.StyleBold
		if color, ok := statusColors[status]; ok {
			style = style.Foreground(color)
		}
		fmt.Fprintf(w, "  %s %-40s %3d%%  %s\n",
			tui.ObjectiveStatusIcon(status),
			tui.Truncate(o.Title, 40),
			metrics.Progress(o),
			style.Render(string(status)))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s  %d done / %d total (%d%%), %d overdue, %d high priority open\n",
		tui.StyleBold.Render("Tasks"),
		taskStats.Done, taskStats.Total, taskStats.CompletionRate,
		taskStats.Overdue, taskStats.HighPriority)
	fmt.Fprintf(w, "%s  %d total, %d this week\n\n",
		tui.StyleBold.Render("Notes"),
		noteStats.Total, noteStats.ThisWeek)

	feedCfg := tui.DefaultActivityFeedConfig()
	fmt.Fprintln(w, tui.RenderActivityFeed(data.activity, feedCfg))

	return nil
}

// dashboardReport is the JSON output shape for the dashboard command.
type dashboardReport struct {
	Greeting   string `json:"greeting"`
	Title      string `json:"title"`
	Objectives []struct {
		Title    string `json:"title"`
		Progress int    `json:"progress"`
		Status   string `json:"status"`
	} `json:"objectives"`
	Tasks struct {
		Total          int `json:"total"`
		Done           int `json:"done"`
		Overdue        int `json:"overdue"`
		HighPriority   int `json:"highPriority"`
		CompletionRate int `json:"completionRate"`
	} `json:"tasks"`
	Notes struct {
		Total    int `json:"total"`
		ThisWeek int `json:"thisWeek"`
	} `json:"notes"`
	Activity []string `json:"activity"`
}

// buildDashboardReport assembles the JSON view of the dashboard.
func buildDashboardReport(c clock.Clock, data *dashboardData, taskStats metrics.TaskStats, noteStats metrics.NoteStats) dashboardReport {
	var report dashboardReport
	report.Greeting = greeting(c, data.session)
	report.Title = data.title
	for _, o := range data.objectives {
		report.Objectives = append(report.Objectives, struct {
			Title    string `json:"title"`
			Progress int    `json:"progress"`
			Status   string `json:"status"`
		}{
			Title:    o.Title,
			Progress: metrics.Progress(o),
			Status:   string(metrics.ClassifyStatus(c, o)),
		})
	}
	report.Tasks.Total = taskStats.Total
	report.Tasks.Done = taskStats.Done
	report.Tasks.Overdue = taskStats.Overdue
	report.Tasks.HighPriority = taskStats.HighPriority
	report.Tasks.CompletionRate = taskStats.CompletionRate
	report.Notes.Total = noteStats.Total
	report.Notes.ThisWeek = noteStats.ThisWeek
	for _, e := range data.activity {
		report.Activity = append(report.Activity, e.Action)
	}
	return report
}
