package lab

import (
	"errors"

	"adclab/core"
)

var (
	// ErrUnknownMode is returned for a mode the lab does not implement.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrOversample is returned for an averaging factor the ADC cannot do.
	ErrOversample = errors.New("oversample factor must be a power of two in 1..64")

	// ErrPriority is returned for a sequencer priority outside 0..3.
	ErrPriority = errors.New("sequencer priority out of range")

	// ErrMissingHardware is returned when a Hardware field is nil.
	ErrMissingHardware = errors.New("missing hardware driver")
)

// ConfigError describes a rejected configuration value. It unwraps to one
// of the sentinel errors above.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return "lab config: " + e.Field + " " + e.Value + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DefaultOversample is the averaging factor of OversampledSingleAxis.
const DefaultOversample = 64

// Config is everything fixed at build or startup time.
type Config struct {
	Mode       Mode
	Clock      core.ClockConfig
	Oversample int // used by OversampledSingleAxis only
	Priority   int // sequencer priority, 0 is highest
}

// DefaultConfig returns the lab's fixed configuration for mode m.
func DefaultConfig(m Mode) Config {
	return Config{
		Mode:       m,
		Clock:      core.LabClock,
		Oversample: DefaultOversample,
	}
}

// Validate rejects configurations that cannot be programmed. The clock is
// not checked; the clock service takes whatever it is given.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return &ConfigError{Field: "mode", Value: c.Mode.String(), Err: ErrUnknownMode}
	}
	if c.Mode.Oversampled() {
		f := c.Oversample
		if f < 1 || f > 64 || f&(f-1) != 0 {
			return &ConfigError{Field: "oversample", Value: core.Itoa(f), Err: ErrOversample}
		}
	}
	if c.Priority < 0 || c.Priority > core.MaxPriority {
		return &ConfigError{Field: "priority", Value: core.Itoa(c.Priority), Err: ErrPriority}
	}
	return nil
}
