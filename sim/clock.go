package sim

import (
	"time"

	"adclab/core"
)

// ResetClockRate is the rate before SetClock: the 16 MHz internal oscillator.
const ResetClockRate = 16000000

// Clock is a virtual system clock. Delay adds to a cycle counter and, when
// RealTime is set, also sleeps for the equivalent wall time.
type Clock struct {
	Trace    *Trace
	RealTime bool

	// Sleep is used for real-time delays; nil means time.Sleep.
	Sleep func(time.Duration)

	rate   uint32
	config core.ClockConfig
	cycles uint64
	delays int
}

// NewClock returns a clock running at ResetClockRate.
func NewClock(trace *Trace) *Clock {
	return &Clock{Trace: trace, rate: ResetClockRate}
}

// SetClock applies cfg without validating it, as the hardware would.
func (c *Clock) SetClock(cfg core.ClockConfig) {
	c.Trace.Add(Op{Kind: OpSetClock, Arg: cfg.Rate()})
	c.config = cfg
	c.rate = cfg.Rate()
}

// ClockRate returns the current system clock in Hz.
func (c *Clock) ClockRate() uint32 {
	return c.rate
}

// Delay spins for count delay-loop iterations of virtual time.
func (c *Clock) Delay(count uint32) {
	c.Trace.Add(Op{Kind: OpDelay, Arg: count})
	c.delays++
	c.cycles += core.DelayCycles(count)
	if c.RealTime {
		sleep := c.Sleep
		if sleep == nil {
			sleep = time.Sleep
		}
		sleep(core.DelayDuration(count, c.rate))
	}
}

// Config returns the last configuration applied.
func (c *Clock) Config() core.ClockConfig { return c.config }

// Cycles returns the total cycles spent in Delay.
func (c *Clock) Cycles() uint64 { return c.cycles }

// Delays returns how many times Delay was called.
func (c *Clock) Delays() int { return c.delays }

// Elapsed converts the accumulated delay cycles to wall time at the
// current rate.
func (c *Clock) Elapsed() time.Duration {
	if c.rate == 0 {
		return 0
	}
	rate := uint64(c.rate)
	secs := c.cycles / rate
	rem := c.cycles % rate
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/rate)
}
