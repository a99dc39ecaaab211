package sim

import (
	"image/color"
	"sort"
	"strings"

	"adclab/core"
)

// Panel size of the lab board's OLED.
const (
	PanelWidth  = 96
	PanelHeight = 64
)

// TextRun is a string drawn at a cell position.
type TextRun struct {
	X, Y int16
	Text string
}

// Display is an in-memory RGBA framebuffer. Besides pixels it keeps a text
// layer of the last string drawn at each position, which is what tests
// usually want to look at.
type Display struct {
	Trace *Trace

	w, h   int16
	pix    []color.RGBA
	text   map[[2]int16]string
	inits  int
	pushes int
	fills  int
}

// NewDisplay returns a w x h framebuffer. Zero sizes select the lab panel.
func NewDisplay(w, h int16, trace *Trace) *Display {
	if w <= 0 || h <= 0 {
		w, h = PanelWidth, PanelHeight
	}
	return &Display{
		Trace: trace,
		w:     w,
		h:     h,
		pix:   make([]color.RGBA, int(w)*int(h)),
		text:  make(map[[2]int16]string),
	}
}

// Init clears the panel and forgets the text layer.
func (d *Display) Init() {
	d.Trace.Add(Op{Kind: OpDisplayInit})
	d.inits++
	for i := range d.pix {
		d.pix[i] = core.ClrBlack
	}
	d.text = make(map[[2]int16]string)
}

func (d *Display) Size() (x, y int16) {
	return d.w, d.h
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.pix[int(y)*int(d.w)+int(x)] = c
}

// Display counts a push; the framebuffer is always current.
func (d *Display) Display() error {
	d.pushes++
	return nil
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fills++
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			d.SetPixel(i, j, c)
		}
	}
	return nil
}

// ObserveText records a drawn string in the text layer.
func (d *Display) ObserveText(text string, x, y int16) {
	d.Trace.Add(Op{Kind: OpDrawText, Text: text, X: x, Y: y})
	d.text[[2]int16{x, y}] = text
}

// TextAt returns the last string drawn at (x, y).
func (d *Display) TextAt(x, y int16) (string, bool) {
	s, ok := d.text[[2]int16{x, y}]
	return s, ok
}

// Texts returns the text layer ordered top to bottom, left to right.
func (d *Display) Texts() []TextRun {
	out := make([]TextRun, 0, len(d.text))
	for p, s := range d.text {
		out = append(out, TextRun{X: p[0], Y: p[1], Text: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Pixel returns the color at (x, y); out of range reads black.
func (d *Display) Pixel(x, y int16) color.RGBA {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return core.ClrBlack
	}
	return d.pix[int(y)*int(d.w)+int(x)]
}

// Lit counts non-black pixels inside the rectangle.
func (d *Display) Lit(x, y, width, height int16) int {
	n := 0
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			if p := d.Pixel(i, j); p.R|p.G|p.B != 0 {
				n++
			}
		}
	}
	return n
}

// Inits returns how many times Init ran.
func (d *Display) Inits() int { return d.inits }

// Pushes returns how many times Display was called.
func (d *Display) Pushes() int { return d.pushes }

// Render draws the framebuffer as ASCII art, '#' for lit pixels.
func (d *Display) Render() string {
	var b strings.Builder
	b.Grow(int(d.w+1) * int(d.h))
	for y := int16(0); y < d.h; y++ {
		for x := int16(0); x < d.w; x++ {
			if p := d.Pixel(x, y); p.R|p.G|p.B != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
