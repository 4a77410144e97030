package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/state"
	"github.com/mobil-koeln/gomate/internal/views"
)

type focusPanel int

const (
	focusSearch focusPanel = iota
	focusLines
	focusArrivals
)

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	ctx       context.Context
	container *state.Container
	modes     []string
	width     int
	height    int

	searchInput textinput.Model
	focus       focusPanel

	// last snapshot taken from the container
	state state.AppState

	cursor       int
	selectedLine string

	autoRefresh bool
	lastUpdate  time.Time
}

// New creates a new TUI model driving the given container.
func New(ctx context.Context, container *state.Container, modes []string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search lines..."
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		ctx:         ctx,
		container:   container,
		modes:       modes,
		searchInput: ti,
		focus:       focusLines,
		state:       container.Snapshot(),
	}
}

// Init starts the first status fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.container.FetchTransportDataCmd(m.ctx, m.modes),
	)
}

// visibleLines returns the lines matching the current search query.
func (m Model) visibleLines() []models.LineStatus {
	return views.FilterByQuery(m.state.Transport.Items, m.state.Transport.SearchQuery)
}

// currentLine returns the line under the cursor.
func (m Model) currentLine() (models.LineStatus, bool) {
	lines := m.visibleLines()
	if m.cursor < 0 || m.cursor >= len(lines) {
		return models.LineStatus{}, false
	}
	return lines[m.cursor], true
}

// refresh re-reads the container and keeps the cursor in range.
func (m Model) refresh() Model {
	m.state = m.container.Snapshot()
	n := len(m.visibleLines())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}
