package parameter

import "time"

// Cosmetic skin generation
const (
	// SkinRequestsPerMinute is the default generator request budget
	SkinRequestsPerMinute = 6

	// SkinBurst is the default number of back-to-back requests allowed
	SkinBurst = 1

	// SkinTimeout bounds one generator round trip
	SkinTimeout = 15 * time.Second

	// SkinMaxResponseBytes caps a generator response body
	SkinMaxResponseBytes = 8 << 20
)

// SkinThemes are the presets cycled by the skin key
var SkinThemes = []string{
	"cyberpunk neon",
	"steampunk brass",
	"arctic expedition",
	"jungle overgrowth",
	"vaporwave sunset",
}
