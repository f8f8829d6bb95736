package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmlite/pmlite/internal/domain"
)

// WatchConfig holds configuration for the board watch mode.
type WatchConfig struct {
	// Interval is the refresh interval.
	Interval time.Duration
	// Board controls the column layout.
	Board BoardConfig
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Interval: 2 * time.Second,
		Board:    DefaultBoardConfig(),
	}
}

// TaskLister loads the current task snapshot.
type TaskLister interface {
	Tasks(ctx context.Context) ([]domain.Task, error)
}

// WatchModel is the Bubble Tea model for the live board view.
// It implements the tea.Model interface (Init, Update, View).
type WatchModel struct {
	tasks      []domain.Task
	lastUpdate time.Time
	config     WatchConfig
	width      int
	height     int
	quitting   bool
	err        error
	lister     TaskLister
	// baseCtx is stored for use in async Bubble Tea commands. Storing a
	// context in a struct is discouraged in general, but Bubble Tea's
	// command model needs it for propagation.
	baseCtx context.Context //nolint:containedctx // Required for Bubble Tea async commands
}

// TickMsg signals time for a refresh.
type TickMsg time.Time

// RefreshMsg carries new data from a refresh operation.
type RefreshMsg struct {
	Tasks []domain.Task
	Err   error
}

// NewWatchModel creates a WatchModel over the given task source.
func NewWatchModel(ctx context.Context, lister TaskLister, cfg WatchConfig) *WatchModel {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	return &WatchModel{
		config:  cfg,
		width:   80,
		height:  24,
		lister:  lister,
		baseCtx: ctx,
	}
}

// Init starts the refresh timer and performs an initial data load.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(
		m.refreshData(),
		m.tick(),
	)
}

// Update handles messages and returns the updated model and commands.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m, m.refreshData()

	case RefreshMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, m.tick()
		}
		m.tasks = msg.Tasks
		m.lastUpdate = time.Now()
		m.err = nil
		return m, m.tick()
	}

	return m, nil
}

// View renders the current board state.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	styles := NewOutputStyles()
	var b strings.Builder

	b.WriteString(RenderBoard(m.tasks, m.config.Board))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	}
	if !m.lastUpdate.IsZero() {
		b.WriteString(styles.Dim.Render(fmt.Sprintf("updated %s · q to quit", RelativeTime(m.lastUpdate))))
		b.WriteString("\n")
	}

	return b.String()
}

// tick schedules the next refresh.
func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.config.Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refreshData loads a fresh task snapshot off the UI loop.
func (m *WatchModel) refreshData() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.lister.Tasks(m.baseCtx)
		return RefreshMsg{Tasks: tasks, Err: err}
	}
}
