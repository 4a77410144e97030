package output

import (
	"testing"

	"github.com/fatih/color"

	"github.com/mobil-koeln/gomate/internal/testutil"
	"github.com/mobil-koeln/gomate/internal/views"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"always", ColorAlways},
		{"never", ColorNever},
		{"auto", ColorAuto},
		{" Never ", ColorNever},
		{"", ColorAuto},        // default
		{"invalid", ColorAuto}, // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseColorMode(tt.input)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestNewColors_NeverMode(t *testing.T) {
	// Save and restore color state
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()
	color.NoColor = true

	c := NewColors(ColorNever)

	testutil.AssertEqual(t, c.Good("Good Service"), "Good Service")
	testutil.AssertEqual(t, c.Warning("Minor Delays"), "Minor Delays")
	testutil.AssertEqual(t, c.Severe("Suspended"), "Suspended")
	testutil.AssertEqual(t, c.Info("Part Closure"), "Part Closure")
	testutil.AssertEqual(t, c.Line("Central"), "Central")
	testutil.AssertEqual(t, c.Platform("Stop A"), "Stop A")
	testutil.AssertEqual(t, c.Dest("Oxford Circus"), "Oxford Circus")
	testutil.AssertEqual(t, c.Due("Due"), "Due")
	testutil.AssertEqual(t, c.Favorite("*"), "*")
	testutil.AssertEqual(t, c.Header("Lines"), "Lines")
	testutil.AssertEqual(t, c.Muted("tube"), "tube")
	testutil.AssertEqual(t, c.Line("%d min", 2), "2 min")
}

func TestNewColors_AlwaysMode(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	c := NewColors(ColorAlways)

	// We check for ANSI escape sequences (starting with \033[)
	result := c.Good("Good Service")
	testutil.AssertContains(t, result, "\033[")
	testutil.AssertContains(t, result, "Good Service")

	result = c.Severe("Suspended")
	testutil.AssertContains(t, result, "\033[")
	testutil.AssertContains(t, result, "Suspended")
}

func TestForBucket(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	c := NewColors(ColorAlways)

	tests := []struct {
		bucket views.Bucket
		want   string
	}{
		{views.BucketSuccess, c.Good("x")},
		{views.BucketWarning, c.Warning("x")},
		{views.BucketError, c.Severe("x")},
		{views.BucketInfo, c.Info("x")},
	}

	for _, tt := range tests {
		t.Run(tt.bucket.String(), func(t *testing.T) {
			testutil.AssertEqual(t, c.ForBucket(tt.bucket)("x"), tt.want)
		})
	}
}

func TestFormatStatus(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	c := NewColors(ColorAlways)
	testutil.AssertEqual(t, c.FormatStatus("Minor Delays"), c.Warning("%s", "Minor Delays"))
	testutil.AssertEqual(t, c.FormatStatus("Good Service"), c.Good("%s", "Good Service"))
}
