package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/views"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors     *Colors
	Favorites  []models.LineStatus
	ShowReason bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderSummary renders the active / on time / delayed counters
func RenderSummary(w io.Writer, s views.Summary, opts TableOptions) {
	c := opts.colors()
	_, _ = fmt.Fprintf(w, "%s %d   %s %d   %s %d\n",
		c.Muted("Active"), s.Active,
		c.Good("On time"), s.OnTime,
		c.Warning("Delayed"), s.Delayed,
	)
}

// RenderLines renders line statuses as a formatted table
func RenderLines(w io.Writer, lines []models.LineStatus, opts TableOptions) {
	if len(lines) == 0 {
		_, _ = fmt.Fprintln(w, "No lines found.")
		return
	}

	c := opts.colors()

	for i := range lines {
		l := &lines[i]

		star := " "
		if views.IsFavorite(opts.Favorites, l.ID) {
			star = c.Favorite("*")
		}

		glyph := views.TransportIcon(l.ModeName).Glyph()

		// Name (truncate/pad to 16 chars)
		name := l.Name
		if len([]rune(name)) > 16 {
			name = string([]rune(name)[:16])
		}
		nameStr := fmt.Sprintf("%-16s", name)

		mode := fmt.Sprintf("%-6s", l.ModeLabel())

		_, _ = fmt.Fprintf(w, "%s %s %s %s %s\n",
			star,
			glyph,
			c.Line(nameStr),
			c.Muted(mode),
			c.FormatStatus(l.StatusDescription()),
		)

		if !opts.ShowReason {
			continue
		}
		entry := l.CurrentStatus()
		if reason := strings.TrimSpace(entry.Reason); reason != "" {
			_, _ = fmt.Fprintf(w, "      %s\n", c.Muted("%s", reason))
		}
		if from := views.FormatValidFrom(entry); from != "" {
			_, _ = fmt.Fprintf(w, "      %s %s\n", c.Muted("Valid from:"), from)
		}
	}
}

// RenderArrivals renders arrivals for one line, soonest first
func RenderArrivals(w io.Writer, lineID string, arrivals []models.Arrival, opts TableOptions) {
	c := opts.colors()

	_, _ = fmt.Fprintf(w, "%s %s\n\n", c.Header("Arrivals:"), c.Line("%s", strings.ToUpper(lineID)))

	if len(arrivals) == 0 {
		_, _ = fmt.Fprintln(w, "No arrivals found.")
		return
	}

	for _, a := range views.SortedArrivals(arrivals) {
		when := views.FormatArrivalTime(a.TimeToStation)
		whenStr := fmt.Sprintf("%-7s", when)
		if a.TimeToStation < 60 {
			whenStr = c.Due("%s", whenStr)
		}

		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			whenStr,
			c.Platform("%-8s", a.PlatformName),
			c.Dest("%s", a.DestinationName),
		)
	}
}

// RenderProfile renders the signed-in user
func RenderProfile(w io.Writer, user *models.UserProfile, opts TableOptions) {
	c := opts.colors()

	if user == nil {
		_, _ = fmt.Fprintln(w, "Not logged in.")
		return
	}

	_, _ = fmt.Fprintln(w, c.Header("%s", views.Greeting(user)))
	if full := user.FullName(); full != "" {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Name:"), full)
	}
	if user.Username != "" {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Username:"), user.Username)
	}
	if user.Email != "" {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Email:"), user.Email)
	}
}
