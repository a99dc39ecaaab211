package sim

import (
	"math"
	"math/rand"

	"adclab/core"
)

// MaxSample is the full-scale reading of the 12-bit converter.
const MaxSample = 4095

// Source produces the analog value seen on a channel for the given
// trigger number (0 for the first conversion after reset).
type Source func(ch core.ADCChannel, trigger int) uint32

// Constant returns v on every channel, every time.
func Constant(v uint32) Source {
	return func(core.ADCChannel, int) uint32 { return v }
}

// Sequence returns vals in order, one per trigger, then holds the last one.
func Sequence(vals ...uint32) Source {
	return func(_ core.ADCChannel, trigger int) uint32 {
		if len(vals) == 0 {
			return 0
		}
		if trigger >= len(vals) {
			return vals[len(vals)-1]
		}
		return vals[trigger]
	}
}

// PerChannel dispatches to a different source per channel; unknown
// channels read 0.
func PerChannel(m map[core.ADCChannel]Source) Source {
	return func(ch core.ADCChannel, trigger int) uint32 {
		if src, ok := m[ch]; ok {
			return src(ch, trigger)
		}
		return 0
	}
}

// Ramp counts up by step per trigger and wraps at full scale.
func Ramp(step uint32) Source {
	return func(_ core.ADCChannel, trigger int) uint32 {
		return (uint32(trigger) * step) % (MaxSample + 1)
	}
}

// Tilt models an accelerometer being slowly rocked: each axis is a sine
// around mid-scale with a per-channel phase.
func Tilt(amplitude uint32, period int) Source {
	if period <= 0 {
		period = 1
	}
	return func(ch core.ADCChannel, trigger int) uint32 {
		phase := float64(ch) * math.Pi / 3
		v := 2048 + float64(amplitude)*math.Sin(2*math.Pi*float64(trigger)/float64(period)+phase)
		return clamp(v)
	}
}

// Noisy adds uniform noise of +/-amplitude to src on every read. Every
// read draws fresh noise, so hardware averaging smooths it out.
func Noisy(src Source, amplitude uint32, seed int64) Source {
	rng := rand.New(rand.NewSource(seed))
	return func(ch core.ADCChannel, trigger int) uint32 {
		n := int64(rng.Intn(int(2*amplitude+1))) - int64(amplitude)
		return clamp(float64(int64(src(ch, trigger)) + n))
	}
}

func clamp(v float64) uint32 {
	switch {
	case v < 0:
		return 0
	case v > MaxSample:
		return MaxSample
	default:
		return uint32(v + 0.5)
	}
}
