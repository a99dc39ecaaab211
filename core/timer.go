package core

import "time"

// DelayLoopCycles is the cost of one iteration of the delay loop in CPU
// cycles. Delay(n) therefore spins for about 3*n cycles.
const DelayLoopCycles = 3

// LabDelayDivisor turns the clock rate into a delay count: rate/12
// iterations * 3 cycles = a quarter of a second.
const LabDelayDivisor = 12

// TimingDriver exposes the current clock rate and the cycle-counted
// busy-wait primitive.
type TimingDriver interface {
	// ClockRate returns the system clock in Hz.
	ClockRate() uint32

	// Delay spins for count delay-loop iterations.
	Delay(count uint32)
}

var timingDriver TimingDriver

// SetTimingDriver is called by target-specific code to register its driver.
func SetTimingDriver(d TimingDriver) {
	timingDriver = d
}

// MustTiming returns the configured driver or panics if missing.
func MustTiming() TimingDriver {
	if timingDriver == nil {
		panic("timing driver not configured")
	}
	return timingDriver
}

// DelayCount returns the loop count for the lab's refresh delay at the
// given clock rate.
func DelayCount(clockHz uint32) uint32 {
	return clockHz / LabDelayDivisor
}

// DelayCycles converts a delay-loop count to CPU cycles.
func DelayCycles(count uint32) uint64 {
	return uint64(count) * DelayLoopCycles
}

// DelayDuration is the approximate wall time of Delay(count) at clockHz.
// It is not a real-time guarantee; it assumes DelayLoopCycles per
// iteration and no interrupts.
func DelayDuration(count, clockHz uint32) time.Duration {
	if clockHz == 0 {
		return 0
	}
	return time.Duration(DelayCycles(count) * uint64(time.Second) / uint64(clockHz))
}
