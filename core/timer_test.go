package core

import (
	"testing"
	"time"
)

func TestLabClockRate(t *testing.T) {
	if got := LabClock.Rate(); got != 50000000 {
		t.Errorf("LabClock.Rate() = %d, want 50000000", got)
	}
}

func TestClockConfigRate(t *testing.T) {
	testCases := []struct {
		name string
		cfg  ClockConfig
		want uint32
	}{
		{"pll div 4", ClockConfig{SysDiv: 4, UsePLL: true, XtalFreq: 16000000}, 50000000},
		{"pll div 5", ClockConfig{SysDiv: 5, UsePLL: true, XtalFreq: 16000000}, 40000000},
		{"crystal direct", ClockConfig{SysDiv: 1, XtalFreq: 16000000, Osc: OscMain}, 16000000},
		{"internal div 2", ClockConfig{SysDiv: 2, Osc: OscInternal}, 8000000},
		{"zero divisor", ClockConfig{UsePLL: true}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Rate(); got != tc.want {
				t.Errorf("Rate() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDelayCount(t *testing.T) {
	count := DelayCount(50000000)
	if count != 4166666 {
		t.Errorf("DelayCount(50MHz) = %d, want 4166666", count)
	}

	d := DelayDuration(count, 50000000)
	if d < 249*time.Millisecond || d > 251*time.Millisecond {
		t.Errorf("lab delay = %v, want ~250ms", d)
	}
	t.Logf("lab delay at 50MHz: %d loops, %d cycles, %v", count, DelayCycles(count), d)
}

func TestDelayScalesWithClock(t *testing.T) {
	const count = 1000000

	slow := DelayDuration(count, 25000000)
	fast := DelayDuration(count, 50000000)

	if slow != 2*fast {
		t.Errorf("doubling the clock should halve the delay: %v at 25MHz, %v at 50MHz", slow, fast)
	}

	// The lab count itself tracks the clock, so the refresh period stays put.
	for _, hz := range []uint32{16000000, 40000000, 50000000, 80000000} {
		d := DelayDuration(DelayCount(hz), hz)
		if d < 249*time.Millisecond || d > 251*time.Millisecond {
			t.Errorf("at %d Hz lab delay = %v, want ~250ms", hz, d)
		}
	}
}

func TestDelayDurationZeroClock(t *testing.T) {
	if d := DelayDuration(100, 0); d != 0 {
		t.Errorf("DelayDuration with zero clock = %v, want 0", d)
	}
}
