package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/views"
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	st := newStyles(m.state.Theme.IsDarkMode)

	header := m.renderHeader(st)
	searchBar := m.renderSearchBar(st)
	statusBar := m.renderStatusBar(st)

	panelHeight := m.height - lipgloss.Height(header) - lipgloss.Height(searchBar) - lipgloss.Height(statusBar)
	if panelHeight < 3 {
		panelHeight = 3
	}
	width := m.width - 2

	var body string
	border := st.panelFocused
	if m.focus == focusArrivals {
		body = m.renderArrivals(st, panelHeight-2)
	} else {
		body = m.renderLineList(st, width, panelHeight-2)
		if m.focus == focusSearch {
			border = st.panelNormal
		}
	}

	panel := border.
		Width(width).
		Height(panelHeight - 2).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, panel, statusBar)
}

// renderHeader renders the brand, the greeting and the status counters.
func (m Model) renderHeader(st styles) string {
	title := st.logo.Render("GoMate")
	greeting := st.header.Render(views.Greeting(m.state.Auth.User))

	summary := views.Summarize(m.state.Transport.Items)
	counters := fmt.Sprintf("%s %d  %s %d  %s %d",
		st.muted.Render("Active"), summary.Active,
		st.bucketSuccess.Render("On time"), summary.OnTime,
		st.bucketWarning.Render("Delayed"), summary.Delayed,
	)

	return lipgloss.JoinHorizontal(lipgloss.Bottom, " ", title, "  ", greeting, "   ", counters)
}

// renderSearchBar renders the search input at the top.
func (m Model) renderSearchBar(st styles) string {
	border := st.panelNormal
	if m.focus == focusSearch {
		border = st.panelFocused
	}

	label := st.header.Render("Search: ")
	return border.Width(m.width - 2).Render(label + m.searchInput.View())
}

// renderLineList renders the filtered line list.
func (m Model) renderLineList(st styles, width, height int) string {
	t := m.state.Transport
	title := st.header.Render("LINES")
	if t.Source == "fallback" {
		title += st.muted.Render("  (offline data)")
	}

	if t.Loading && len(t.Items) == 0 {
		return title + "\n" + st.loading.Render(" Loading lines...")
	}
	if t.Error != "" && len(t.Items) == 0 {
		return title + "\n" + st.err.Render(" Error: "+t.Error)
	}

	lines := m.visibleLines()
	if len(lines) == 0 {
		if strings.TrimSpace(t.SearchQuery) != "" {
			return title + "\n" + st.muted.Render(" No lines match \""+t.SearchQuery+"\"")
		}
		return title + "\n" + st.muted.Render(" No lines")
	}

	var b strings.Builder
	b.WriteString(title)
	if t.Loading {
		b.WriteString(st.loading.Render("  refreshing..."))
	}
	b.WriteString("\n")

	start, end := visibleRange(m.cursor, len(lines), height-1)
	for i := start; i < end; i++ {
		b.WriteString(m.renderLine(st, lines[i], width, i == m.cursor && m.focus == focusLines))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderLine renders a single line row.
func (m Model) renderLine(st styles, line models.LineStatus, width int, selected bool) string {
	star := " "
	if views.IsFavorite(m.state.Transport.Favorites, line.ID) {
		star = st.favorite.Render("*")
	}

	glyph := views.TransportIcon(line.ModeName).Glyph()
	name := fmt.Sprintf("%-18s", truncate(line.Name, 18))
	if selected {
		name = st.selected.Render(name)
	} else {
		name = st.line.Render(name)
	}

	desc := line.StatusDescription()
	status := st.status(views.StatusColor(desc)).Render(truncate(desc, width-28))

	return fmt.Sprintf("%s %s %s %s", star, glyph, name, status)
}

// renderArrivals renders the arrivals panel for the selected line.
func (m Model) renderArrivals(st styles, height int) string {
	t := m.state.Transport
	title := st.header.Render("ARRIVALS ") + st.line.Render(strings.ToUpper(m.selectedLine))

	if line, ok := models.FindLine(t.Items, m.selectedLine); ok {
		entry := line.CurrentStatus()
		title += "  " + st.status(views.StatusColor(entry.StatusSeverityDescription)).Render(line.StatusDescription())
		if entry.Reason != "" {
			title += "\n" + st.muted.Render(" "+entry.Reason)
		}
	}

	if t.ArrivalsLoading {
		return title + "\n" + st.loading.Render(" Loading arrivals...")
	}
	if t.ArrivalsError != "" {
		return title + "\n" + st.err.Render(" Error: "+t.ArrivalsError)
	}
	if len(t.Arrivals) == 0 {
		return title + "\n" + st.muted.Render(" No arrivals")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	arrivals := views.SortedArrivals(t.Arrivals)
	_, end := visibleRange(0, len(arrivals), height-1)
	for i := 0; i < end; i++ {
		a := arrivals[i]
		when := fmt.Sprintf("%-7s", views.FormatArrivalTime(a.TimeToStation))
		if a.TimeToStation < 60 {
			when = st.bucketSuccess.Render(when)
		}
		b.WriteString(fmt.Sprintf(" %s %s %s", when, st.muted.Render(fmt.Sprintf("%-8s", a.PlatformName)), a.DestinationName))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderStatusBar renders context-aware keyboard hints at the bottom.
func (m Model) renderStatusBar(st styles) string {
	var hints string
	switch m.focus {
	case focusSearch:
		hints = "Type to filter  Enter:lines  Esc:clear  Ctrl+C:quit"
	case focusLines:
		hints = "j/k:navigate  Enter:arrivals  f:favorite  r:refresh  t:theme  a:auto-refresh  /:search  q:quit"
	case focusArrivals:
		hints = "r:reload  t:theme  Esc:back  q:quit"
	}

	if m.autoRefresh {
		hints += "  [auto]"
	}
	if !m.lastUpdate.IsZero() {
		hints += "  updated " + m.lastUpdate.Format("15:04:05")
	}

	return st.statusBar.Width(m.width).Render(" " + hints)
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate truncates a string to the given width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}
