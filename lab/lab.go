// Package lab is the ADC hands-on lab: it samples the board's
// accelerometer through one ADC sample sequencer and shows the raw reading
// on the OLED, about four times a second, forever.
//
// The loop is deliberately naive. It busy-waits on the conversion flag with
// no timeout and spins a cycle-counted delay between refreshes; a board
// without a working ADC hangs in Iterate.
package lab

import "adclab/core"

// State is the lab's lifecycle position.
type State uint8

const (
	Initializing State = iota
	Sampling
)

func (s State) String() string {
	if s == Sampling {
		return "sampling"
	}
	return "initializing"
}

// SampleBuffer receives the sequencer's batch read. Single-axis modes only
// ever fill and show index 0.
type SampleBuffer [3]uint32

// Hardware is the set of drivers the lab runs on.
type Hardware struct {
	Clock   core.ClockDriver
	Timing  core.TimingDriver
	ADC     core.ADCDriver
	Display core.Display
}

// BoardHardware collects the drivers the target registered with core.
// It panics if any is missing.
func BoardHardware() Hardware {
	return Hardware{
		Clock:   core.MustClock(),
		Timing:  core.MustTiming(),
		ADC:     core.MustADC(),
		Display: core.MustDisplay(),
	}
}

// Report is what the lab publishes after each refresh.
type Report struct {
	Iteration uint32
	Mode      Mode
	Samples   []uint32
}

// Reporter receives a Report after every iteration. Samples aliases the
// lab's buffer and is only valid during the call.
type Reporter interface {
	Report(r Report)
}

// Lab owns the drawing context, the sample buffer and the sequencer for
// its whole life.
type Lab struct {
	cfg      Config
	hw       Hardware
	reporter Reporter

	gfx        core.Context
	state      State
	samples    SampleBuffer
	field      [core.FieldWidth]byte
	iterations uint32
}

// New validates cfg and binds the lab to hw. Nothing is touched until
// Setup.
func New(cfg Config, hw Hardware) (*Lab, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case hw.Clock == nil:
		return nil, &ConfigError{Field: "hardware", Value: "clock", Err: ErrMissingHardware}
	case hw.Timing == nil:
		return nil, &ConfigError{Field: "hardware", Value: "timing", Err: ErrMissingHardware}
	case hw.ADC == nil:
		return nil, &ConfigError{Field: "hardware", Value: "adc", Err: ErrMissingHardware}
	case hw.Display == nil:
		return nil, &ConfigError{Field: "hardware", Value: "display", Err: ErrMissingHardware}
	}
	return &Lab{cfg: cfg, hw: hw}, nil
}

// SetReporter installs r; nil disables reporting.
func (l *Lab) SetReporter(r Reporter) {
	l.reporter = r
}

// Config returns the configuration the lab was built with.
func (l *Lab) Config() Config { return l.cfg }

// State returns the lifecycle state.
func (l *Lab) State() State { return l.state }

// Iterations returns how many refreshes have completed.
func (l *Lab) Iterations() uint32 { return l.iterations }

// Samples returns a copy of the last batch read.
func (l *Lab) Samples() SampleBuffer { return l.samples }

// Setup brings up the clock, display and ADC and leaves the lab in
// Sampling. Calling it again repeats the whole sequence.
func (l *Lab) Setup() {
	mode := l.cfg.Mode
	seq := mode.Sequencer()

	core.DebugPrintln("[LAB] setup mode=" + mode.String())

	l.hw.Clock.SetClock(l.cfg.Clock)

	l.hw.Display.Init()
	l.gfx.Init(l.hw.Display)
	l.gfx.SetForeground(core.ClrWhite)
	l.gfx.SetFont(core.Fixed6x8)
	for _, lbl := range Labels(mode) {
		l.gfx.DrawString(lbl.Text, core.AutoLength, lbl.X, lbl.Y, false)
	}
	l.gfx.Flush()

	adc := l.hw.ADC
	adc.EnablePeripheral()
	adc.EnablePort(accelPort)
	adc.PinTypeADC(accelPort, accelPins)
	adc.SequenceConfigure(seq, core.TriggerProcessor, l.cfg.Priority)
	if mode.Oversampled() {
		adc.HardwareOversampleConfigure(l.cfg.Oversample)
	}
	for i, ctl := range steps(mode) {
		adc.SequenceStepConfigure(seq, i, ctl)
	}
	adc.SequenceEnable(seq)
	adc.IntClear(seq)

	l.state = Sampling
	core.DebugPrintln("[LAB] sampling on sequencer " + core.Itoa(seq) +
		" at " + core.Itoa(int(l.hw.Timing.ClockRate())) + " Hz")
}

// Iterate runs one acquire-and-present cycle. It panics if Setup has not
// run.
//
// The completion flag is cleared only by Setup. Once the first conversion
// has latched it, later polls see it set straight away.
func (l *Lab) Iterate() {
	if l.state != Sampling {
		panic("lab: Iterate called before Setup")
	}
	mode := l.cfg.Mode
	seq := mode.Sequencer()
	adc := l.hw.ADC

	adc.ProcessorTrigger(seq)
	for !adc.IntStatus(seq, false) {
	}
	adc.SequenceDataGet(seq, l.samples[:])

	for i := 0; i < mode.Axes(); i++ {
		text := core.FormatSample(&l.field, l.samples[i])
		l.gfx.DrawString(string(text), core.AutoLength, ValueX, ValueRow(i), true)
	}
	l.gfx.Flush()

	l.hw.Timing.Delay(core.DelayCount(l.hw.Timing.ClockRate()))

	l.iterations++
	if l.reporter != nil {
		l.reporter.Report(Report{
			Iteration: l.iterations,
			Mode:      mode,
			Samples:   l.samples[:mode.Axes()],
		})
	}
}

// Run performs Setup and then iterates forever.
func (l *Lab) Run() {
	l.Setup()
	for {
		l.Iterate()
	}
}
