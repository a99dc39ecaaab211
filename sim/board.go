package sim

import "adclab/core"

// Board bundles the simulated peripherals of one lab board around a
// shared trace.
type Board struct {
	Trace   *Trace
	ADC     *ADC
	Display *Display
	Clock   *Clock
}

// NewBoard returns a board whose accelerometer reads from src.
func NewBoard(src Source) *Board {
	tr := &Trace{}
	return &Board{
		Trace:   tr,
		ADC:     NewADC(src, tr),
		Display: NewDisplay(PanelWidth, PanelHeight, tr),
		Clock:   NewClock(tr),
	}
}

// Install registers the board's peripherals as the core drivers, the way
// a firmware target does at startup.
func (b *Board) Install() {
	core.SetClockDriver(b.Clock)
	core.SetTimingDriver(b.Clock)
	core.SetADCDriver(b.ADC)
	core.SetDisplay(b.Display)
}
