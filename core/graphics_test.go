package core

import (
	"image/color"
	"testing"
)

// testDisplay is a minimal framebuffer Display for graphics tests.
type testDisplay struct {
	w, h   int16
	pix    []color.RGBA
	fills  int
	inits  int
	texts  map[[2]int16]string
	pushes int
}

func newTestDisplay(w, h int16) *testDisplay {
	return &testDisplay{
		w:     w,
		h:     h,
		pix:   make([]color.RGBA, int(w)*int(h)),
		texts: make(map[[2]int16]string),
	}
}

func (d *testDisplay) Init() { d.inits++ }
func (d *testDisplay) Size() (x, y int16) { return d.w, d.h }
func (d *testDisplay) Display() error { d.pushes++; return nil }
func (d *testDisplay) at(x, y int16) color.RGBA { return d.pix[int(y)*int(d.w)+int(x)] }

func (d *testDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.pix[int(y)*int(d.w)+int(x)] = c
}

func (d *testDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fills++
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			d.SetPixel(i, j, c)
		}
	}
	return nil
}

func (d *testDisplay) ObserveText(text string, x, y int16) {
	d.texts[[2]int16{x, y}] = text
}

func (d *testDisplay) litIn(x0, y0, x1, y1 int16, c color.RGBA) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if x >= 0 && y >= 0 && x < d.w && y < d.h && d.at(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestContextDrawString(t *testing.T) {
	disp := newTestDisplay(96, 64)
	var ctx Context
	ctx.Init(disp)
	ctx.SetForeground(ClrWhite)
	ctx.SetFont(Fixed6x8)

	ctx.DrawString("ADC", AutoLength, 1, 5, false)

	if got := disp.texts[[2]int16{1, 5}]; got != "ADC" {
		t.Errorf("text at (1,5) = %q, want %q", got, "ADC")
	}
	if disp.fills != 0 {
		t.Errorf("transparent draw filled %d rectangles", disp.fills)
	}
	if n := disp.litIn(0, 0, 40, 20, ClrWhite); n == 0 {
		t.Error("no foreground pixels drawn")
	}
}

func TestContextDrawStringLength(t *testing.T) {
	disp := newTestDisplay(96, 64)
	var ctx Context
	ctx.Init(disp)

	ctx.DrawString("ABCDEF", 2, 10, 10, false)
	if got := disp.texts[[2]int16{10, 10}]; got != "AB" {
		t.Errorf("length 2 drew %q, want %q", got, "AB")
	}

	ctx.DrawString("XY", 10, 10, 30, false)
	if got := disp.texts[[2]int16{10, 30}]; got != "XY" {
		t.Errorf("length beyond string drew %q, want %q", got, "XY")
	}
}

func TestContextDrawStringOpaque(t *testing.T) {
	disp := newTestDisplay(96, 64)
	var ctx Context
	ctx.Init(disp)

	// Paint the field white first, then overwrite with an opaque blank.
	disp.FillRectangle(45, 25, 48, 8, ClrWhite)
	disp.fills = 0

	ctx.DrawString("        ", AutoLength, 45, 25, true)

	if disp.fills != 1 {
		t.Fatalf("opaque draw filled %d rectangles, want 1", disp.fills)
	}
	if n := disp.litIn(45, 25, 45+8*Fixed6x8.Width, 25+Fixed6x8.Height, ClrWhite); n != 0 {
		t.Errorf("%d stale pixels left after opaque blank draw", n)
	}
}

func TestContextWithoutDisplay(t *testing.T) {
	var called string
	SetParamErrorHook(func(op, detail string) { called = op })
	defer SetParamErrorHook(nil)

	var ctx Context
	ctx.DrawString("x", AutoLength, 0, 0, false)

	if called != "DrawString" {
		t.Errorf("ParamError hook got %q, want DrawString", called)
	}
}

func TestContextFlush(t *testing.T) {
	disp := newTestDisplay(8, 8)
	var ctx Context
	ctx.Init(disp)
	ctx.Flush()
	if disp.pushes != 1 {
		t.Errorf("Flush pushed %d times, want 1", disp.pushes)
	}
}

func TestFontTextWidth(t *testing.T) {
	if w := Fixed6x8.TextWidth(""); w != 0 {
		t.Errorf("empty width = %d", w)
	}
	if w := Fixed6x8.TextWidth("        "); w < 8*Fixed6x8.Width {
		t.Errorf("blank field width %d narrower than %d cells", w, 8)
	}
	var nilFont *Font
	if w := nilFont.TextWidth("abc"); w != 0 {
		t.Errorf("nil font width = %d", w)
	}
}
