package lab

import (
	"strings"

	"adclab/core"
)

// Mode selects which of the lab's exercises is built.
type Mode uint8

const (
	// SingleAxis samples the X axis once per refresh on sequencer 3.
	SingleAxis Mode = iota
	// ThreeAxis samples X, Y and Z in one three-step sequence on sequencer 0.
	ThreeAxis
	// OversampledSingleAxis is SingleAxis with 64x hardware averaging.
	OversampledSingleAxis
)

var modeNames = [...]string{
	SingleAxis:            "single",
	ThreeAxis:             "three",
	OversampledSingleAxis: "oversample",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + core.Itoa(int(m)) + ")"
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

// ParseMode accepts the names printed by Mode.String, case-insensitively,
// plus a few obvious aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-axis", "singleaxis", "x":
		return SingleAxis, nil
	case "three", "three-axis", "threeaxis", "xyz":
		return ThreeAxis, nil
	case "oversample", "oversampled", "oversampled-single-axis":
		return OversampledSingleAxis, nil
	}
	return 0, &ConfigError{Field: "mode", Value: s, Err: ErrUnknownMode}
}

// Sequencer returns the sample sequencer the mode programs. Single-axis
// modes use the one-deep sequencer 3; three axes need sequencer 0.
func (m Mode) Sequencer() int {
	if m == ThreeAxis {
		return 0
	}
	return 3
}

// Axes returns how many values the mode converts and displays.
func (m Mode) Axes() int {
	if m == ThreeAxis {
		return 3
	}
	return 1
}

// Oversampled reports whether hardware averaging is enabled.
func (m Mode) Oversampled() bool {
	return m == OversampledSingleAxis
}
