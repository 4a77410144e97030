package main

import (
	"os"
	"testing"

	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/testutil"
)

func TestSplitModes(t *testing.T) {
	got := splitModes([]string{"tube, bus", "", "train"})
	testutil.AssertLen(t, got, 3)
	testutil.AssertEqual(t, got[0], "tube")
	testutil.AssertEqual(t, got[1], "bus")
	testutil.AssertEqual(t, got[2], "train")

	testutil.AssertLen(t, splitModes(nil), 0)
}

func TestOnlyFavorites(t *testing.T) {
	lines := []models.LineStatus{{ID: "central"}, {ID: "victoria"}, {ID: "73"}}
	favorites := []models.LineStatus{{ID: "73"}, {ID: "jubilee"}}

	got := onlyFavorites(lines, favorites)
	testutil.AssertLen(t, got, 1)
	testutil.AssertEqual(t, got[0].ID, "73")
}

func TestThemeName(t *testing.T) {
	testutil.AssertEqual(t, themeName(true), "dark")
	testutil.AssertEqual(t, themeName(false), "light")
}

func TestLoadConfig_Flags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	testutil.AssertNil(t, err)
	testutil.AssertNil(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	flagConfig = ""
	flagStore = "memory"
	flagDataDir = "/tmp/gomate-data"
	flagLogLevel = "debug"
	t.Cleanup(func() { flagStore, flagDataDir, flagLogLevel = "", "", "" })

	cfg, err := loadConfig()
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, cfg.Store, "memory")
	testutil.AssertEqual(t, cfg.DataDir, "/tmp/gomate-data")
	testutil.AssertEqual(t, cfg.LogLevel, "debug")
}
