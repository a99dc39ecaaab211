package core

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Display is a drawing surface plus its one-time initialization. The
// surface side is the tinygo drivers Displayer, extended with a rectangle
// fill for opaque text backgrounds.
type Display interface {
	drivers.Displayer

	// Init powers up the panel and clears it.
	Init()

	// FillRectangle paints a solid rectangle.
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// TextObserver is implemented by surfaces that want to know which strings
// were drawn where, in addition to the pixels. Simulated displays use it.
type TextObserver interface {
	ObserveText(text string, x, y int16)
}

// Common colors.
var (
	ClrBlack = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	ClrWhite = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

var display Display

// SetDisplay is called by target-specific code to register its panel.
func SetDisplay(d Display) {
	display = d
}

// MustDisplay returns the configured display or panics if missing.
func MustDisplay() Display {
	if display == nil {
		panic("display not configured")
	}
	return display
}
