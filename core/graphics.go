package core

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// AutoLength tells DrawString to draw the whole string.
const AutoLength = -1

// Context is a drawing context bound to one display: foreground and
// background colors plus the current font.
type Context struct {
	display    Display
	foreground color.RGBA
	background color.RGBA
	font       *Font
}

// Init binds the context to d and resets colors and font.
func (c *Context) Init(d Display) {
	c.display = d
	c.foreground = ClrWhite
	c.background = ClrBlack
	c.font = Fixed6x8
}

// Display returns the bound surface.
func (c *Context) Display() Display {
	return c.display
}

// SetForeground sets the text color.
func (c *Context) SetForeground(clr color.RGBA) {
	c.foreground = clr
}

// SetBackground sets the fill color used by opaque draws.
func (c *Context) SetBackground(clr color.RGBA) {
	c.background = clr
}

// SetFont selects the font for subsequent draws.
func (c *Context) SetFont(f *Font) {
	c.font = f
}

// Foreground returns the text color.
func (c *Context) Foreground() color.RGBA { return c.foreground }

// Font returns the current font.
func (c *Context) Font() *Font { return c.font }

// DrawString draws the first length bytes of text with its cell's top-left
// corner at (x, y). A negative length draws the whole string. With opaque
// set the cell area is filled with the background color first, so the new
// text fully replaces whatever was there.
func (c *Context) DrawString(text string, length int, x, y int16, opaque bool) {
	if c.display == nil {
		ParamError("DrawString", "no display bound")
		return
	}
	if length >= 0 && length < len(text) {
		text = text[:length]
	}
	if opaque {
		w := c.font.TextWidth(text)
		if err := c.display.FillRectangle(x, y, w, c.font.Height, c.background); err != nil {
			DebugPrintln("[GR] fill failed: " + err.Error())
		}
	}
	tinyfont.WriteLine(c.display, c.font.Face, x, y+c.font.Baseline, text, c.foreground)
	if obs, ok := c.display.(TextObserver); ok {
		obs.ObserveText(text, x, y)
	}
}

// Flush pushes any buffered drawing to the panel.
func (c *Context) Flush() {
	if c.display == nil {
		return
	}
	if err := c.display.Display(); err != nil {
		DebugPrintln("[GR] flush failed: " + err.Error())
	}
}
