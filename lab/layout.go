package lab

import "adclab/core"

// Label is a static string drawn once during setup.
type Label struct {
	Text string
	X, Y int16
}

// ValueX is the column where sample values start.
const ValueX = 45

// Screen positions. Rows are the top of the 6x8 character cell.
var (
	titleLabel = Label{"ADC Hands On Lab", 1, 5}
	ruleLabel  = Label{"----------------", 1, 15}

	axisLabels = [3]Label{
		{"AX :", 20, 25},
		{"AY :", 20, 40},
		{"AZ :", 20, 55},
	}
)

// Labels returns the static text drawn for mode m, in drawing order.
func Labels(m Mode) []Label {
	out := []Label{titleLabel, ruleLabel}
	return append(out, axisLabels[:m.Axes()]...)
}

// ValueRow returns the row the value of axis i is drawn on.
func ValueRow(i int) int16 {
	return axisLabels[i].Y
}

// steps returns the sequencer step programming for mode m. Only the last
// step raises the completion flag and ends the sequence.
func steps(m Mode) []core.StepControl {
	if m == ThreeAxis {
		return []core.StepControl{
			core.Ctl(core.CH8),
			core.Ctl(core.CH9),
			core.Ctl(core.CH21) | core.CtlIE | core.CtlEnd,
		}
	}
	return []core.StepControl{core.Ctl(core.CH8) | core.CtlIE | core.CtlEnd}
}

// Accelerometer pins on port E: PE5 is X (CH8), PE4 is Y (CH9), PE6 is
// Z (CH21).
const (
	accelPort = core.PortE
	accelPins = core.Pin4 | core.Pin5 | core.Pin6
)
