//go:build rp2040 || rp2350

package main

import (
	"device/rp"
	"machine"

	"adclab/core"
)

// The RP2040 ADC has no sample sequencer, so RpSequencerADC keeps the
// sequencer programming in software and runs a whole sequence inside
// ProcessorTrigger, one blocking conversion per step. A conversion takes
// about 2 us, so the sequence is finished before the first status poll.
//
// Accelerometer wiring: X on GPIO26 (ADC0), Y on GPIO27 (ADC1), Z on
// GPIO28 (ADC2).
type RpSequencerADC struct {
	enabled    bool
	oversample uint32
	analog     core.PinMask
	seqs       [core.NumSequencers]rpSequencer
}

type rpSequencer struct {
	trigger core.Trigger
	armed   bool
	steps   [8]core.StepControl
	fifo    [8]uint32
	n       int
	rawInt  bool
}

// channelInput maps the lab's channel numbers to RP2040 ADC inputs.
var channelInput = map[core.ADCChannel]uint32{
	core.CH8:  0,
	core.CH9:  1,
	core.CH21: 2,
}

// pinInput maps the port E pin bits to the ADC pins they stand for.
var pinInput = [...]struct {
	mask core.PinMask
	pin  machine.Pin
}{
	{core.Pin5, machine.ADC0},
	{core.Pin4, machine.ADC1},
	{core.Pin6, machine.ADC2},
}

// NewRpSequencerADC returns the driver; nothing is touched until
// EnablePeripheral.
func NewRpSequencerADC() *RpSequencerADC {
	return &RpSequencerADC{oversample: 1}
}

func (d *RpSequencerADC) EnablePeripheral() {
	machine.InitADC()
	d.enabled = true
}

// EnablePort is a no-op: the RP2040 GPIO bank is always clocked.
func (d *RpSequencerADC) EnablePort(port core.GPIOPort) {
	if port != core.PortE {
		core.ParamError("EnablePort", "only port E is wired to the accelerometer")
	}
}

func (d *RpSequencerADC) PinTypeADC(port core.GPIOPort, pins core.PinMask) {
	if port != core.PortE {
		core.ParamError("PinTypeADC", "only port E is wired to the accelerometer")
		return
	}
	for _, p := range pinInput {
		if pins&p.mask == 0 {
			continue
		}
		adc := machine.ADC{Pin: p.pin}
		adc.Configure(machine.ADCConfig{})
		d.analog |= p.mask
	}
}

func (d *RpSequencerADC) seq(op string, seq int) *rpSequencer {
	if seq < 0 || seq >= core.NumSequencers {
		core.ParamError(op, "sequencer "+core.Itoa(seq)+" out of range")
		return nil
	}
	if !d.enabled {
		core.ParamError(op, "ADC peripheral not enabled")
		return nil
	}
	return &d.seqs[seq]
}

func (d *RpSequencerADC) SequenceConfigure(seq int, trigger core.Trigger, priority int) {
	if s := d.seq("SequenceConfigure", seq); s != nil {
		// one sequencer at a time on this chip; priority has nothing to order
		s.trigger = trigger
	}
}

// HardwareOversampleConfigure sets the averaging factor. The averaging is
// done in software over back-to-back conversions.
func (d *RpSequencerADC) HardwareOversampleConfigure(factor int) {
	if factor < 1 || factor > 64 || factor&(factor-1) != 0 {
		core.ParamError("HardwareOversampleConfigure", "factor must be a power of two in 1..64")
		return
	}
	d.oversample = uint32(factor)
}

func (d *RpSequencerADC) SequenceStepConfigure(seq, step int, ctl core.StepControl) {
	s := d.seq("SequenceStepConfigure", seq)
	if s == nil {
		return
	}
	if step < 0 || step >= core.SequencerDepth[seq] {
		core.ParamError("SequenceStepConfigure", "step "+core.Itoa(step)+" beyond sequencer depth")
		return
	}
	s.steps[step] = ctl
}

func (d *RpSequencerADC) SequenceEnable(seq int) {
	if s := d.seq("SequenceEnable", seq); s != nil {
		s.armed = true
	}
}

func (d *RpSequencerADC) IntClear(seq int) {
	if s := d.seq("IntClear", seq); s != nil {
		s.rawInt = false
	}
}

func (d *RpSequencerADC) ProcessorTrigger(seq int) {
	s := d.seq("ProcessorTrigger", seq)
	if s == nil || !s.armed || s.trigger != core.TriggerProcessor {
		return
	}
	depth := core.SequencerDepth[seq]
	raise := false
	for step := 0; step < depth; step++ {
		ctl := s.steps[step]
		v := d.convert(ctl.Channel())
		if s.n < depth {
			s.fifo[s.n] = v
			s.n++
		}
		raise = raise || ctl.RaisesInterrupt()
		if ctl.IsEnd() {
			break
		}
	}
	if raise {
		s.rawInt = true
	}
}

// IntStatus never reports a masked interrupt: none is ever unmasked.
func (d *RpSequencerADC) IntStatus(seq int, masked bool) bool {
	s := d.seq("IntStatus", seq)
	return s != nil && s.rawInt && !masked
}

func (d *RpSequencerADC) SequenceDataGet(seq int, buf []uint32) int {
	s := d.seq("SequenceDataGet", seq)
	if s == nil {
		return 0
	}
	n := copy(buf, s.fifo[:s.n])
	copy(s.fifo[:], s.fifo[n:s.n])
	s.n -= n
	return n
}

func (d *RpSequencerADC) convert(ch core.ADCChannel) uint32 {
	input, ok := channelInput[ch]
	if !ok {
		return 0
	}
	var sum uint32
	for i := uint32(0); i < d.oversample; i++ {
		sum += rawConversion(input)
	}
	return sum / d.oversample
}

// rawConversion runs one 12-bit conversion on the given input and waits
// for it to finish.
func rawConversion(input uint32) uint32 {
	if rp.ADC.CS.Get()&rp.ADC_CS_EN == 0 {
		machine.InitADC()
	}

	rp.ADC.CS.ReplaceBits(
		input<<rp.ADC_CS_AINSEL_Pos,
		rp.ADC_CS_AINSEL_Msk,
		0,
	)
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
	for !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
	}
	return rp.ADC.RESULT.Get() & 0xFFF
}
