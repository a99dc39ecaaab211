package core

// Oscillator selects the clock source feeding the system clock.
type Oscillator uint8

const (
	OscMain       Oscillator = iota // external crystal
	OscInternal                     // precision internal oscillator
	OscInternal4                    // internal oscillator / 4
	OscInternal30                   // low-frequency internal oscillator
)

func (o Oscillator) String() string {
	switch o {
	case OscMain:
		return "main"
	case OscInternal:
		return "internal"
	case OscInternal4:
		return "internal/4"
	case OscInternal30:
		return "internal-30kHz"
	default:
		return "(invalid oscillator)"
	}
}

// PLLFreq is the fixed VCO output of the PLL; the PLL path divides it by two
// before SysDiv is applied.
const PLLFreq = 400000000

// ClockConfig is the fixed clock tree selection handed to the clock service.
type ClockConfig struct {
	SysDiv   uint32     // system clock divisor, 1..64
	UsePLL   bool       // route the 400 MHz PLL through the divisor
	XtalFreq uint32     // crystal frequency in Hz
	Osc      Oscillator // clock source
}

// LabClock is the configuration the display driver's timing assumes:
// 16 MHz crystal, PLL, divide by 4 (50 MHz).
var LabClock = ClockConfig{
	SysDiv:   4,
	UsePLL:   true,
	XtalFreq: 16000000,
	Osc:      OscMain,
}

// Rate returns the system clock the configuration would produce. Invalid
// divisors yield 0; the clock service does not validate them.
func (c ClockConfig) Rate() uint32 {
	if c.SysDiv == 0 {
		return 0
	}
	if c.UsePLL {
		return PLLFreq / 2 / c.SysDiv
	}
	var src uint32
	switch c.Osc {
	case OscMain:
		src = c.XtalFreq
	case OscInternal:
		src = 16000000
	case OscInternal4:
		src = 4000000
	case OscInternal30:
		src = 30000
	}
	return src / c.SysDiv
}

// ClockDriver sets the system clock. There is no result to check.
type ClockDriver interface {
	SetClock(cfg ClockConfig)
}

var clockDriver ClockDriver

// SetClockDriver is called by target-specific code to register its driver.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// MustClock returns the configured driver or panics if missing.
func MustClock() ClockDriver {
	if clockDriver == nil {
		panic("clock driver not configured")
	}
	return clockDriver
}
