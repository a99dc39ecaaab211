//go:build rp2040 || rp2350

package main

import (
	"device/arm"
	"machine"

	"adclab/core"
)

// RpClock serves both clock interfaces. The TinyGo runtime sets the system
// clock before main runs and there is no API to change it afterwards, so
// SetClock only records the request and the delay loop is scaled by the
// real CPU frequency instead.
type RpClock struct {
	requested core.ClockConfig
}

func (c *RpClock) SetClock(cfg core.ClockConfig) {
	c.requested = cfg
	core.DebugPrintln("[CLK] requested " + core.Itoa(int(cfg.Rate())) +
		" Hz, running at " + core.Itoa(int(machine.CPUFrequency())) + " Hz")
}

func (c *RpClock) ClockRate() uint32 {
	return machine.CPUFrequency()
}

// Delay spins for count loop iterations. On the Cortex-M0+ one iteration
// is close to core.DelayLoopCycles but not exact.
func (c *RpClock) Delay(count uint32) {
	for i := count; i > 0; i-- {
		arm.Asm("nop")
	}
}
