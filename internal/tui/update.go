package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/gomate/internal/state"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case state.StatusResultMsg:
		m.container.Update(msg)
		m = m.refresh()
		m.lastUpdate = time.Now()
		return m, nil

	case state.ArrivalsResultMsg, state.LoginResultMsg:
		m.container.Update(msg)
		return m.refresh(), nil

	case autoRefreshTickMsg:
		return m.handleAutoRefreshTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages to textinput when focused
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusArrivals:
		return m.handleArrivalKeys(msg)
	default:
		return m.handleLineKeys(msg)
	}
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "down":
		m.focus = focusLines
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchInput.SetValue("")
		m.container.SetSearchQuery("")
		m.focus = focusLines
		m.searchInput.Blur()
		return m.refresh(), nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.container.SetSearchQuery(m.searchInput.Value())
	m = m.refresh()
	m.cursor = 0
	return m, cmd
}

func (m Model) handleLineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.visibleLines()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		cmd := m.searchInput.Focus()
		return m, cmd

	case "j", "down":
		if m.cursor < len(lines)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "home":
		m.cursor = 0

	case "end":
		if len(lines) > 0 {
			m.cursor = len(lines) - 1
		}

	case "r":
		cmd := m.fetchStatus()
		return m.refresh(), cmd

	case "f":
		if line, ok := m.currentLine(); ok {
			m.container.ToggleFavorite(line)
			return m.refresh(), nil
		}

	case "t":
		m.container.ToggleTheme()
		return m.refresh(), nil

	case "a":
		m.autoRefresh = !m.autoRefresh
		if m.autoRefresh {
			return m, autoRefreshTick()
		}

	case "enter":
		line, ok := m.currentLine()
		if !ok {
			return m, nil
		}
		m.selectedLine = line.ID
		m.focus = focusArrivals
		cmd := m.fetchArrivals(line.ID)
		return m.refresh(), cmd
	}

	return m, nil
}

func (m Model) handleArrivalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.container.ClearArrivals()
		m.selectedLine = ""
		m.focus = focusLines
		return m.refresh(), nil

	case "r":
		if m.selectedLine == "" {
			return m, nil
		}
		cmd := m.fetchArrivals(m.selectedLine)
		return m.refresh(), cmd

	case "t":
		m.container.ToggleTheme()
		return m.refresh(), nil
	}

	return m, nil
}

func (m Model) handleAutoRefreshTick() (tea.Model, tea.Cmd) {
	if !m.autoRefresh {
		return m, nil
	}

	// Keep existing data visible until new data arrives
	cmds := []tea.Cmd{autoRefreshTick(), m.fetchStatus()}
	if m.focus == focusArrivals && m.selectedLine != "" {
		cmds = append(cmds, m.fetchArrivals(m.selectedLine))
	}

	return m.refresh(), tea.Batch(cmds...)
}
