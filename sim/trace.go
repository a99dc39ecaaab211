// Package sim provides host-side stand-ins for the lab board's hardware:
// a sample-sequencer ADC, a framebuffer display and a virtual clock. All of
// them append to a shared Trace so tests can check call ordering.
package sim

import (
	"strconv"

	"github.com/l0nax/go-spew/spew"
)

// OpKind identifies a recorded hardware operation.
type OpKind uint8

const (
	OpSetClock OpKind = iota + 1
	OpDelay
	OpDisplayInit
	OpDrawText
	OpEnablePeripheral
	OpEnablePort
	OpPinTypeADC
	OpSequenceConfigure
	OpOversample
	OpStepConfigure
	OpSequenceEnable
	OpIntClear
	OpTrigger
	OpIntStatus
	OpDataGet
)

var opNames = map[OpKind]string{
	OpSetClock:          "SetClock",
	OpDelay:             "Delay",
	OpDisplayInit:       "DisplayInit",
	OpDrawText:          "DrawText",
	OpEnablePeripheral:  "EnablePeripheral",
	OpEnablePort:        "EnablePort",
	OpPinTypeADC:        "PinTypeADC",
	OpSequenceConfigure: "SequenceConfigure",
	OpOversample:        "Oversample",
	OpStepConfigure:     "StepConfigure",
	OpSequenceEnable:    "SequenceEnable",
	OpIntClear:          "IntClear",
	OpTrigger:           "Trigger",
	OpIntStatus:         "IntStatus",
	OpDataGet:           "DataGet",
}

func (k OpKind) String() string {
	if s, ok := opNames[k]; ok {
		return s
	}
	return "Op(" + strconv.Itoa(int(k)) + ")"
}

// Op is one recorded operation. Only the fields meaningful for Kind are set.
type Op struct {
	Kind   OpKind
	Seq    int
	Step   int
	Arg    uint32
	Result bool
	Text   string
	X, Y   int16
}

// Trace is an append-only log of hardware operations. A nil *Trace
// records nothing.
type Trace struct {
	Ops []Op
}

// Add appends an operation.
func (t *Trace) Add(op Op) {
	if t == nil {
		return
	}
	t.Ops = append(t.Ops, op)
}

// Reset drops everything recorded so far.
func (t *Trace) Reset() {
	if t == nil {
		return
	}
	t.Ops = t.Ops[:0]
}

// Count returns how many operations of kind k were recorded.
func (t *Trace) Count(k OpKind) int {
	n := 0
	for _, op := range t.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the operations of the given kinds, in order.
func (t *Trace) Filter(kinds ...OpKind) []Op {
	var out []Op
	for _, op := range t.Ops {
		for _, k := range kinds {
			if op.Kind == k {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// Kinds returns the sequence of operation kinds, optionally restricted.
func (t *Trace) Kinds(only ...OpKind) []OpKind {
	ops := t.Ops
	if len(only) > 0 {
		ops = t.Filter(only...)
	}
	out := make([]OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

var dumper = spew.ConfigState{
	Indent:                  "\t",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders the trace for test failure output.
func (t *Trace) Dump() string {
	if t == nil {
		return "<nil trace>"
	}
	return dumper.Sdump(t.Ops)
}
