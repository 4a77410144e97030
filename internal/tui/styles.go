package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/gomate/internal/views"
)

// palette holds the colors for one theme
type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	good    lipgloss.Color
	warning lipgloss.Color
	severe  lipgloss.Color
	info    lipgloss.Color
	bar     lipgloss.Color
}

var (
	darkPalette = palette{
		text:    lipgloss.Color("15"), // White
		muted:   lipgloss.Color("8"),  // Gray
		accent:  lipgloss.Color("6"),  // Cyan
		good:    lipgloss.Color("2"),  // Green
		warning: lipgloss.Color("3"),  // Yellow
		severe:  lipgloss.Color("1"),  // Red
		info:    lipgloss.Color("4"),  // Blue
		bar:     lipgloss.Color("0"),
	}

	lightPalette = palette{
		text:    lipgloss.Color("0"),
		muted:   lipgloss.Color("243"),
		accent:  lipgloss.Color("25"),
		good:    lipgloss.Color("28"),
		warning: lipgloss.Color("130"),
		severe:  lipgloss.Color("160"),
		info:    lipgloss.Color("25"),
		bar:     lipgloss.Color("254"),
	}
)

// styles is the set of lipgloss styles for one theme
type styles struct {
	header        lipgloss.Style
	line          lipgloss.Style
	selected      lipgloss.Style
	muted         lipgloss.Style
	favorite      lipgloss.Style
	loading       lipgloss.Style
	err           lipgloss.Style
	panelFocused  lipgloss.Style
	panelNormal   lipgloss.Style
	statusBar     lipgloss.Style
	logo          lipgloss.Style
	bucketSuccess lipgloss.Style
	bucketWarning lipgloss.Style
	bucketError   lipgloss.Style
	bucketInfo    lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return styles{
		header:   lipgloss.NewStyle().Foreground(p.text).Bold(true),
		line:     lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		selected: lipgloss.NewStyle().Foreground(p.accent).Bold(true).Reverse(true),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		favorite: lipgloss.NewStyle().Foreground(p.warning).Bold(true),
		loading:  lipgloss.NewStyle().Foreground(p.warning).Italic(true),
		err:      lipgloss.NewStyle().Foreground(p.severe),
		panelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent),
		panelNormal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted),
		statusBar: lipgloss.NewStyle().
			Foreground(p.muted).
			Background(p.bar),
		logo:          lipgloss.NewStyle().Foreground(p.severe).Bold(true),
		bucketSuccess: lipgloss.NewStyle().Foreground(p.good),
		bucketWarning: lipgloss.NewStyle().Foreground(p.warning),
		bucketError:   lipgloss.NewStyle().Foreground(p.severe).Bold(true),
		bucketInfo:    lipgloss.NewStyle().Foreground(p.info),
	}
}

// status returns the style for a status bucket
func (s styles) status(b views.Bucket) lipgloss.Style {
	switch b {
	case views.BucketSuccess:
		return s.bucketSuccess
	case views.BucketWarning:
		return s.bucketWarning
	case views.BucketError:
		return s.bucketError
	}
	return s.bucketInfo
}
