package views

import "strings"

// Icon names a glyph for a transport mode
type Icon string

const (
	IconActivity Icon = "activity"
	IconCircle   Icon = "circle"
	IconZap      Icon = "zap"
	IconAnchor   Icon = "anchor"
	IconMapPin   Icon = "map-pin"
)

var modeIcons = map[string]Icon{
	"bus":   IconActivity,
	"tube":  IconCircle,
	"train": IconZap,
	"ferry": IconAnchor,
}

// TransportIcon returns the icon for a mode, IconMapPin when unknown
func TransportIcon(mode string) Icon {
	if icon, ok := modeIcons[strings.ToLower(mode)]; ok {
		return icon
	}
	return IconMapPin
}

// Glyph is a terminal-friendly symbol for the icon
func (i Icon) Glyph() string {
	switch i {
	case IconActivity:
		return "▣"
	case IconCircle:
		return "●"
	case IconZap:
		return "⚡"
	case IconAnchor:
		return "⚓"
	}
	return "◆"
}
