package views

import (
	"readtrack/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height int

	// Component States
	AnimTab     float64
	SpinnerView string
	ChartView   string
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}

// Zone identifiers shared with the controller's mouse handling.
const (
	ZoneRetry = "retry"
	zoneTab   = "tab_"
)

func TabZoneID(t state.Tab) string {
	return zoneTab + t.String()
}
