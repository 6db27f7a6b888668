package core

import "fmt"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Liveries is the locomotive paint palette
var Liveries = []RGB{
	{0x3b, 0x82, 0xf6}, // Blue
	{0x10, 0xb9, 0x81}, // Emerald
	{0xf5, 0x9e, 0x0b}, // Amber
	{0xef, 0x44, 0x44}, // Red
	{0xff, 0xff, 0xff}, // White
}

// SmokeColors and SparkColors are particle palettes for calm and storm conditions
var (
	SmokeColors = []RGB{
		{0x9c, 0xa3, 0xaf},
		{0x6b, 0x72, 0x80},
		{0xd1, 0xd5, 0xdb},
	}
	SparkColors = []RGB{
		{0xf5, 0x9e, 0x0b},
		{0xef, 0x44, 0x44},
		{0xfd, 0xe0, 0x47},
	}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor, clamped to [0,1]
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb
func ParseHex(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
