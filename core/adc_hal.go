package core

// ADCChannel is the analog input selector programmed into a sequencer step.
type ADCChannel uint8

// Analog inputs wired to the accelerometer on the lab board.
const (
	CH8  ADCChannel = 8  // PE5, X axis
	CH9  ADCChannel = 9  // PE4, Y axis
	CH21 ADCChannel = 21 // PE6, Z axis
)

// StepControl is the control word of a single sequencer step: the channel
// selector in the low bits and the flags below.
type StepControl uint32

const (
	CtlChannelMask StepControl = 0x1F
	CtlTS          StepControl = 0x80  // temperature sensor select
	CtlIE          StepControl = 0x40  // raise completion flag after this step
	CtlEnd         StepControl = 0x20  // last step of the sequence
	CtlD           StepControl = 0x100 // differential mode
)

// Ctl builds a step control word for the given channel.
func Ctl(ch ADCChannel) StepControl {
	return StepControl(ch) & CtlChannelMask
}

// Channel returns the channel selector of the step.
func (c StepControl) Channel() ADCChannel {
	return ADCChannel(c & CtlChannelMask)
}

// IsEnd reports whether the step terminates the sequence.
func (c StepControl) IsEnd() bool {
	return c&CtlEnd != 0
}

// RaisesInterrupt reports whether the step latches the completion flag.
func (c StepControl) RaisesInterrupt() bool {
	return c&CtlIE != 0
}

// Trigger selects what starts a sample sequence.
type Trigger uint8

const (
	TriggerProcessor Trigger = iota // software trigger only
	TriggerComp0
	TriggerComp1
	TriggerComp2
	TriggerExternal
	TriggerTimer
	TriggerPWM0
	TriggerPWM1
	TriggerPWM2
	TriggerPWM3
	TriggerAlways Trigger = 0x0F
)

// Sequencer numbers and FIFO depths.
const (
	NumSequencers = 4
	MaxPriority   = 3
)

// SequencerDepth is the number of steps (and result FIFO slots) per sequencer.
var SequencerDepth = [NumSequencers]int{8, 4, 4, 1}

// GPIOPort identifies a GPIO port that can feed the ADC.
type GPIOPort uint8

const (
	PortA GPIOPort = iota
	PortB
	PortC
	PortD
	PortE
	PortF
)

// PinMask selects pins within a GPIOPort.
type PinMask uint8

const (
	Pin0 PinMask = 1 << iota
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
)

// ADCDriver is the abstract ADC sequencer interface that lab code uses.
// It mirrors a sample-sequencer ADC: steps are programmed into a sequencer,
// a trigger runs them in order, results land in the sequencer's FIFO and a
// raw completion flag latches until cleared.
//
// Calls carry no error results. Implementations report invalid arguments
// through ParamError and otherwise behave as the hardware would.
type ADCDriver interface {
	// EnablePeripheral powers and clocks the ADC module.
	EnablePeripheral()

	// EnablePort powers and clocks the GPIO port supplying the inputs.
	EnablePort(port GPIOPort)

	// PinTypeADC switches the given pins to analog input.
	PinTypeADC(port GPIOPort, pins PinMask)

	// SequenceConfigure sets the trigger source and arbitration priority.
	SequenceConfigure(seq int, trigger Trigger, priority int)

	// HardwareOversampleConfigure enables the averaging circuit. factor is
	// a power of two in 1..64; 1 disables averaging.
	HardwareOversampleConfigure(factor int)

	// SequenceStepConfigure programs one step of a sequencer.
	SequenceStepConfigure(seq, step int, ctl StepControl)

	// SequenceEnable arms the sequencer.
	SequenceEnable(seq int)

	// IntClear clears the sequencer's completion flag.
	IntClear(seq int)

	// ProcessorTrigger starts the sequencer from software.
	ProcessorTrigger(seq int)

	// IntStatus returns the completion flag; masked selects the masked
	// (interrupt-enabled) view instead of the raw one.
	IntStatus(seq int, masked bool) bool

	// SequenceDataGet drains the sequencer FIFO into buf and returns the
	// number of samples copied.
	SequenceDataGet(seq int, buf []uint32) int
}

// Global singleton used by lab code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
