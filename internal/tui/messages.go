package tui

import "time"

// autoRefreshTickMsg is sent every 30 seconds when auto-refresh is enabled.
type autoRefreshTickMsg time.Time
