package core

// Color represents a foreground color for a screen cell.
// The renderer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the arena view.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorOrange
	ColorGray
)

// colorNames maps the color names used in balance configs to the palette.
var colorNames = map[string]Color{
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"purple":  ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
	"orange":  ColorOrange,
	"gray":    ColorGray,
	"grey":    ColorGray,
}

// ParseColor returns the palette entry for a config color name.
// Unknown names fall back to ColorDefault.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}
