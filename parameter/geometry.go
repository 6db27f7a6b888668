package parameter

// Loop Geometry (virtual pixels)
const (
	// DefaultMargin is the inset of the loop from the viewport edge
	DefaultMargin = 14.0

	// DefaultCornerRadius is the radius of the four quarter-circle corners
	DefaultCornerRadius = 30.0

	// MaxMargin and MaxCornerRadius bound SetGeometry
	MaxMargin       = 200.0
	MaxCornerRadius = 200.0

	// DefaultCarSpacing is the loop distance between consecutive car centers
	DefaultCarSpacing = 65.0

	// LocomotiveWidth and WagonWidth are the visual car lengths used for spacing correction
	LocomotiveWidth = 64.0
	WagonWidth      = 54.0

	// CarWidthCorrection pulls non-lead cars forward by half the width difference so couplers meet
	CarWidthCorrection = (LocomotiveWidth - WagonWidth) / 2

	// DefaultViewportWidth and DefaultViewportHeight are used until the host reports a size
	DefaultViewportWidth  = 1000.0
	DefaultViewportHeight = 800.0

	// AnchorInset keeps the command anchor away from the viewport edge
	AnchorInset = 40.0
)
