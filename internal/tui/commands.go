package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const autoRefreshInterval = 30 * time.Second

// autoRefreshTick returns a tea.Cmd that sends a tick after the refresh interval.
func autoRefreshTick() tea.Cmd {
	return tea.Tick(autoRefreshInterval, func(t time.Time) tea.Msg {
		return autoRefreshTickMsg(t)
	})
}

// fetchStatus starts a status fetch through the container.
func (m Model) fetchStatus() tea.Cmd {
	return m.container.FetchTransportDataCmd(m.ctx, m.modes)
}

// fetchArrivals starts an arrivals fetch through the container.
func (m Model) fetchArrivals(lineID string) tea.Cmd {
	return m.container.FetchArrivalsCmd(m.ctx, lineID)
}
