package sim

import (
	"strconv"

	"adclab/core"
)

// analogPins maps the board's accelerometer channels to their GPIO pins.
var analogPins = map[core.ADCChannel]struct {
	port core.GPIOPort
	pin  core.PinMask
}{
	core.CH8:  {core.PortE, core.Pin5},
	core.CH9:  {core.PortE, core.Pin4},
	core.CH21: {core.PortE, core.Pin6},
}

type sequencer struct {
	depth      int
	configured bool
	trigger    core.Trigger
	priority   int
	enabled    bool
	steps      [8]core.StepControl

	fifo     []uint32
	overflow int
	rawInt   bool

	// conversion in flight, committed after pollsLeft status reads
	inFlight  bool
	pollsLeft int
	results   []uint32
	raiseInt  bool
	triggers  int
}

// ADC models a four-sequencer, 12-bit sample-sequencer ADC.
//
// A processor trigger converts the programmed steps in order, up to and
// including the first END step. Results go to the sequencer FIFO (extra
// results are dropped and counted as overflow) and, if any converted step
// has IE set, the raw completion flag latches until IntClear.
//
// Latency delays completion by that many IntStatus polls, which makes the
// busy-wait observable. The zero value is unusable; use NewADC.
type ADC struct {
	Trace   *Trace
	Source  Source
	Latency int

	peripheral bool
	ports      map[core.GPIOPort]bool
	analog     map[core.GPIOPort]core.PinMask
	oversample int
	seqs       [core.NumSequencers]sequencer
}

// NewADC returns a powered-down ADC reading from src.
func NewADC(src Source, trace *Trace) *ADC {
	a := &ADC{
		Trace:      trace,
		Source:     src,
		ports:      make(map[core.GPIOPort]bool),
		analog:     make(map[core.GPIOPort]core.PinMask),
		oversample: 1,
	}
	for i := range a.seqs {
		a.seqs[i].depth = core.SequencerDepth[i]
	}
	return a
}

func (a *ADC) validSeq(op string, seq int) bool {
	if seq < 0 || seq >= core.NumSequencers {
		core.ParamError(op, "sequencer "+strconv.Itoa(seq)+" out of range")
		return false
	}
	if !a.peripheral {
		core.ParamError(op, "ADC peripheral not enabled")
		return false
	}
	return true
}

func (a *ADC) EnablePeripheral() {
	a.Trace.Add(Op{Kind: OpEnablePeripheral})
	a.peripheral = true
}

func (a *ADC) EnablePort(port core.GPIOPort) {
	a.Trace.Add(Op{Kind: OpEnablePort, Arg: uint32(port)})
	a.ports[port] = true
}

func (a *ADC) PinTypeADC(port core.GPIOPort, pins core.PinMask) {
	a.Trace.Add(Op{Kind: OpPinTypeADC, Arg: uint32(port)<<8 | uint32(pins)})
	if !a.ports[port] {
		core.ParamError("PinTypeADC", "GPIO port not enabled")
		return
	}
	a.analog[port] |= pins
}

func (a *ADC) SequenceConfigure(seq int, trigger core.Trigger, priority int) {
	a.Trace.Add(Op{Kind: OpSequenceConfigure, Seq: seq, Arg: uint32(trigger)<<8 | uint32(priority)})
	if !a.validSeq("SequenceConfigure", seq) {
		return
	}
	if priority < 0 || priority > core.MaxPriority {
		core.ParamError("SequenceConfigure", "priority out of range")
		return
	}
	s := &a.seqs[seq]
	s.configured = true
	s.trigger = trigger
	s.priority = priority
}

func (a *ADC) HardwareOversampleConfigure(factor int) {
	a.Trace.Add(Op{Kind: OpOversample, Arg: uint32(factor)})
	if factor < 1 || factor > 64 || factor&(factor-1) != 0 {
		core.ParamError("HardwareOversampleConfigure", "factor must be a power of two in 1..64")
		return
	}
	a.oversample = factor
}

func (a *ADC) SequenceStepConfigure(seq, step int, ctl core.StepControl) {
	a.Trace.Add(Op{Kind: OpStepConfigure, Seq: seq, Step: step, Arg: uint32(ctl)})
	if !a.validSeq("SequenceStepConfigure", seq) {
		return
	}
	if step < 0 || step >= core.SequencerDepth[seq] {
		core.ParamError("SequenceStepConfigure", "step "+strconv.Itoa(step)+" beyond sequencer depth")
		return
	}
	a.seqs[seq].steps[step] = ctl
}

func (a *ADC) SequenceEnable(seq int) {
	a.Trace.Add(Op{Kind: OpSequenceEnable, Seq: seq})
	if !a.validSeq("SequenceEnable", seq) {
		return
	}
	a.seqs[seq].enabled = true
}

func (a *ADC) IntClear(seq int) {
	a.Trace.Add(Op{Kind: OpIntClear, Seq: seq})
	if !a.validSeq("IntClear", seq) {
		return
	}
	a.seqs[seq].rawInt = false
}

func (a *ADC) ProcessorTrigger(seq int) {
	a.Trace.Add(Op{Kind: OpTrigger, Seq: seq})
	if !a.validSeq("ProcessorTrigger", seq) {
		return
	}
	s := &a.seqs[seq]
	if !s.enabled || s.trigger != core.TriggerProcessor {
		return
	}
	if s.inFlight {
		// real conversions finish in microseconds; anything still
		// outstanding is long done by the next trigger
		a.complete(s)
	}

	results := make([]uint32, 0, core.SequencerDepth[seq])
	raise := false
	for step := 0; step < core.SequencerDepth[seq]; step++ {
		ctl := s.steps[step]
		results = append(results, a.convert(ctl.Channel(), s.triggers))
		if ctl.RaisesInterrupt() {
			raise = true
		}
		if ctl.IsEnd() {
			break
		}
	}
	s.triggers++

	s.results = results
	s.raiseInt = raise
	s.inFlight = true
	s.pollsLeft = a.Latency
	if s.pollsLeft <= 0 {
		a.complete(s)
	}
}

// convert samples one channel, averaging over the oversample factor.
func (a *ADC) convert(ch core.ADCChannel, trigger int) uint32 {
	if p, ok := analogPins[ch]; ok && a.analog[p.port]&p.pin == 0 {
		// pin still digital: nothing reaches the converter
		return 0
	}
	if a.Source == nil {
		return 0
	}
	var sum uint32
	for i := 0; i < a.oversample; i++ {
		sum += a.Source(ch, trigger) & MaxSample
	}
	return sum / uint32(a.oversample)
}

func (a *ADC) complete(s *sequencer) {
	for _, v := range s.results {
		if len(s.fifo) >= s.depth {
			s.overflow++
			continue
		}
		s.fifo = append(s.fifo, v)
	}
	if s.raiseInt {
		s.rawInt = true
	}
	s.inFlight = false
	s.results = nil
}

func (a *ADC) IntStatus(seq int, masked bool) bool {
	if !a.validSeq("IntStatus", seq) {
		a.Trace.Add(Op{Kind: OpIntStatus, Seq: seq})
		return false
	}
	s := &a.seqs[seq]
	if s.inFlight {
		s.pollsLeft--
		if s.pollsLeft <= 0 {
			a.complete(s)
		}
	}
	// No interrupt is ever unmasked on this board, so the masked view
	// stays false.
	status := s.rawInt && !masked
	a.Trace.Add(Op{Kind: OpIntStatus, Seq: seq, Result: status})
	return status
}

func (a *ADC) SequenceDataGet(seq int, buf []uint32) int {
	if !a.validSeq("SequenceDataGet", seq) {
		a.Trace.Add(Op{Kind: OpDataGet, Seq: seq})
		return 0
	}
	s := &a.seqs[seq]
	n := copy(buf, s.fifo)
	s.fifo = s.fifo[:copy(s.fifo, s.fifo[n:])]
	a.Trace.Add(Op{Kind: OpDataGet, Seq: seq, Arg: uint32(n)})
	return n
}

// Oversample returns the active averaging factor.
func (a *ADC) Oversample() int { return a.oversample }

// Steps returns the programmed steps of seq up to and including the first
// END step. A sequencer with no END step returns all slots.
func (a *ADC) Steps(seq int) []core.StepControl {
	s := &a.seqs[seq]
	depth := core.SequencerDepth[seq]
	for i := 0; i < depth; i++ {
		if s.steps[i].IsEnd() {
			return append([]core.StepControl(nil), s.steps[:i+1]...)
		}
	}
	return append([]core.StepControl(nil), s.steps[:depth]...)
}

// Configured returns the sequencers that received SequenceConfigure.
func (a *ADC) Configured() []int {
	var out []int
	for i := range a.seqs {
		if a.seqs[i].configured {
			out = append(out, i)
		}
	}
	return out
}

// Enabled reports whether seq is armed.
func (a *ADC) Enabled(seq int) bool { return a.seqs[seq].enabled }

// Trigger returns the trigger source and priority of seq.
func (a *ADC) Trigger(seq int) (core.Trigger, int) {
	return a.seqs[seq].trigger, a.seqs[seq].priority
}

// Overflow returns how many results seq dropped because its FIFO was full.
func (a *ADC) Overflow(seq int) int { return a.seqs[seq].overflow }

// Pending reports the raw completion flag of seq without counting as a poll.
func (a *ADC) Pending(seq int) bool { return a.seqs[seq].rawInt }
