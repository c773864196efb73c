package tui

// Color constants for the dashboard theme
const (
	ColorBorder        = "#3A3F55"
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorHelpText      = "240"

	ColorAccentMain   = "#2563EB"
	ColorAccentBright = "#60A5FA"

	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
	ColorPinned  = "#F59E0B"
	ColorOverdue = "#EF4444"
	ColorToday   = "#F59E0B"
)
