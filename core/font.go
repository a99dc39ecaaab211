package core

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font pairs a tinyfont face with the character cell used for layout.
// Coordinates handed to Context.DrawString are the top-left of the cell;
// Baseline is the offset from there to the glyph baseline tinyfont expects.
type Font struct {
	Face     tinyfont.Fonter
	Width    int16
	Height   int16
	Baseline int16
}

// Fixed6x8 is the small fixed-width font used by the lab layout.
var Fixed6x8 = &Font{
	Face:     &proggy.TinySZ8pt7b,
	Width:    6,
	Height:   8,
	Baseline: 6,
}

// TextWidth returns the pixel width of s in this font.
func (f *Font) TextWidth(s string) int16 {
	if f == nil || len(s) == 0 {
		return 0
	}
	_, outbox := tinyfont.LineWidth(f.Face, s)
	w := int16(outbox)
	// Fixed cells: never narrower than the cell grid, so trailing
	// spaces still erase what was there before.
	if cells := int16(len(s)) * f.Width; cells > w {
		w = cells
	}
	return w
}
