package output

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mobil-koeln/gomate/internal/views"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Good     func(format string, a ...interface{}) string
	Warning  func(format string, a ...interface{}) string
	Severe   func(format string, a ...interface{}) string
	Info     func(format string, a ...interface{}) string
	Line     func(format string, a ...interface{}) string
	Platform func(format string, a ...interface{}) string
	Dest     func(format string, a ...interface{}) string
	Due      func(format string, a ...interface{}) string
	Favorite func(format string, a ...interface{}) string
	Header   func(format string, a ...interface{}) string
	Muted    func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Good:     noColor,
			Warning:  noColor,
			Severe:   noColor,
			Info:     noColor,
			Line:     noColor,
			Platform: noColor,
			Dest:     noColor,
			Due:      noColor,
			Favorite: noColor,
			Header:   noColor,
			Muted:    noColor,
		}
	}

	return &Colors{
		Good:     color.New(color.FgGreen).SprintfFunc(),
		Warning:  color.New(color.FgYellow).SprintfFunc(),
		Severe:   color.New(color.FgRed, color.Bold).SprintfFunc(),
		Info:     color.New(color.FgBlue).SprintfFunc(),
		Line:     color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Platform: color.New(color.FgMagenta).SprintfFunc(),
		Dest:     color.New(color.FgWhite).SprintfFunc(),
		Due:      color.New(color.FgGreen, color.Bold).SprintfFunc(),
		Favorite: color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Header:   color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:    color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// ForBucket returns the color function for a status bucket
func (c *Colors) ForBucket(b views.Bucket) func(format string, a ...interface{}) string {
	switch b {
	case views.BucketSuccess:
		return c.Good
	case views.BucketWarning:
		return c.Warning
	case views.BucketError:
		return c.Severe
	}
	return c.Info
}

// FormatStatus colors a status description by its bucket
func (c *Colors) FormatStatus(description string) string {
	return c.ForBucket(views.StatusColor(description))("%s", description)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
