package parameter

// Terminal projection of the virtual pixel viewport
const (
	// CellWidthPx and CellHeightPx are the virtual pixels covered by one terminal cell
	CellWidthPx  = 8.0
	CellHeightPx = 16.0

	// AnchorStepPx is the anchor displacement per arrow key press
	AnchorStepPx = 16.0

	// GeometryStepPx is the margin and radius change per key press
	GeometryStepPx = 4.0

	// SpeedStep is the base speed change per key press
	SpeedStep = 1.0
)

// HUD layout
const (
	// HUDConsoleLines is the number of console entries drawn inside the loop
	HUDConsoleLines = 8
)
