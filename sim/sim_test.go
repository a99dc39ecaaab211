package sim

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"adclab/core"
)

func armSingle(a *ADC) {
	a.EnablePeripheral()
	a.EnablePort(core.PortE)
	a.PinTypeADC(core.PortE, core.Pin5)
	a.SequenceConfigure(3, core.TriggerProcessor, 0)
	a.SequenceStepConfigure(3, 0, core.Ctl(core.CH8)|core.CtlIE|core.CtlEnd)
	a.SequenceEnable(3)
	a.IntClear(3)
}

func TestADCSingleConversion(t *testing.T) {
	c := qt.New(t)
	tr := &Trace{}
	a := NewADC(Constant(2048), tr)
	armSingle(a)

	c.Assert(a.IntStatus(3, false), qt.IsFalse)
	a.ProcessorTrigger(3)
	c.Assert(a.IntStatus(3, false), qt.IsTrue)

	buf := make([]uint32, 1)
	c.Assert(a.SequenceDataGet(3, buf), qt.Equals, 1)
	c.Assert(buf[0], qt.Equals, uint32(2048))
	c.Assert(a.SequenceDataGet(3, buf), qt.Equals, 0, qt.Commentf("FIFO should be drained"))
}

func TestADCFlagLatchesUntilCleared(t *testing.T) {
	c := qt.New(t)
	a := NewADC(Constant(1), nil)
	armSingle(a)

	a.ProcessorTrigger(3)
	c.Assert(a.Pending(3), qt.IsTrue)
	a.SequenceDataGet(3, make([]uint32, 1))
	c.Assert(a.Pending(3), qt.IsTrue, qt.Commentf("reading data must not clear the flag"))

	a.IntClear(3)
	c.Assert(a.Pending(3), qt.IsFalse)
}

func TestADCMaskedStatus(t *testing.T) {
	c := qt.New(t)
	a := NewADC(Constant(1), nil)
	armSingle(a)
	a.ProcessorTrigger(3)
	c.Assert(a.IntStatus(3, true), qt.IsFalse)
	c.Assert(a.IntStatus(3, false), qt.IsTrue)
}

func TestADCLatency(t *testing.T) {
	c := qt.New(t)
	tr := &Trace{}
	a := NewADC(Constant(7), tr)
	a.Latency = 3
	armSingle(a)
	tr.Reset()

	a.ProcessorTrigger(3)
	polls := 0
	for !a.IntStatus(3, false) {
		polls++
		c.Assert(polls < 10, qt.IsTrue, qt.Commentf("conversion never completed"))
	}
	c.Assert(polls, qt.Equals, 2)
	c.Assert(tr.Count(OpIntStatus), qt.Equals, 3)
}

func TestADCRetriggerCompletesOutstanding(t *testing.T) {
	c := qt.New(t)
	a := NewADC(Sequence(10, 20), nil)
	a.Latency = 5
	armSingle(a)

	a.ProcessorTrigger(3)
	a.ProcessorTrigger(3)

	buf := make([]uint32, 1)
	c.Assert(a.SequenceDataGet(3, buf), qt.Equals, 1)
	c.Assert(buf[0], qt.Equals, uint32(10))
}

func TestADCDigitalPinReadsZero(t *testing.T) {
	c := qt.New(t)
	a := NewADC(Constant(3000), nil)
	a.EnablePeripheral()
	a.SequenceConfigure(3, core.TriggerProcessor, 0)
	a.SequenceStepConfigure(3, 0, core.Ctl(core.CH8)|core.CtlIE|core.CtlEnd)
	a.SequenceEnable(3)
	a.ProcessorTrigger(3)

	buf := make([]uint32, 1)
	c.Assert(a.SequenceDataGet(3, buf), qt.Equals, 1)
	c.Assert(buf[0], qt.Equals, uint32(0))
}

func TestADCThreeStepSequence(t *testing.T) {
	c := qt.New(t)
	src := PerChannel(map[core.ADCChannel]Source{
		core.CH8:  Constant(100),
		core.CH9:  Constant(200),
		core.CH21: Constant(300),
	})
	a := NewADC(src, nil)
	a.EnablePeripheral()
	a.EnablePort(core.PortE)
	a.PinTypeADC(core.PortE, core.Pin4|core.Pin5|core.Pin6)
	a.SequenceConfigure(0, core.TriggerProcessor, 0)
	a.SequenceStepConfigure(0, 0, core.Ctl(core.CH8))
	a.SequenceStepConfigure(0, 1, core.Ctl(core.CH9))
	a.SequenceStepConfigure(0, 2, core.Ctl(core.CH21)|core.CtlIE|core.CtlEnd)
	a.SequenceEnable(0)

	a.ProcessorTrigger(0)
	c.Assert(a.IntStatus(0, false), qt.IsTrue)
	buf := make([]uint32, 8)
	n := a.SequenceDataGet(0, buf)
	c.Assert(buf[:n], qt.DeepEquals, []uint32{100, 200, 300})
	c.Assert(a.Steps(0), qt.HasLen, 3)
}

func TestADCFIFOOverflow(t *testing.T) {
	c := qt.New(t)
	a := NewADC(Constant(5), nil)
	armSingle(a)
	a.ProcessorTrigger(3)
	a.ProcessorTrigger(3)
	c.Assert(a.Overflow(3), qt.Equals, 1)
}

func TestADCOversampleAverages(t *testing.T) {
	c := qt.New(t)
	a := NewADC(Noisy(Constant(2000), 50, 1), nil)
	a.HardwareOversampleConfigure(64)
	armSingle(a)
	a.ProcessorTrigger(3)

	buf := make([]uint32, 1)
	a.SequenceDataGet(3, buf)
	c.Assert(a.Oversample(), qt.Equals, 64)
	c.Assert(buf[0] > 1970 && buf[0] < 2030, qt.IsTrue, qt.Commentf("averaged %d", buf[0]))
}

func TestADCProcessorTriggerIgnored(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *ADC)
	}{
		{"never enabled", func(a *ADC) {
			a.EnablePeripheral()
			a.SequenceConfigure(3, core.TriggerProcessor, 0)
			a.SequenceStepConfigure(3, 0, core.Ctl(core.CH8)|core.CtlIE|core.CtlEnd)
		}},
		{"timer trigger", func(a *ADC) {
			a.EnablePeripheral()
			a.SequenceConfigure(3, core.TriggerTimer, 0)
			a.SequenceStepConfigure(3, 0, core.Ctl(core.CH8)|core.CtlIE|core.CtlEnd)
			a.SequenceEnable(3)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := qt.New(t)
			a := NewADC(Constant(2048), nil)
			tc.setup(a)

			a.ProcessorTrigger(3)
			c.Assert(a.Pending(3), qt.IsFalse)
			c.Assert(a.IntStatus(3, false), qt.IsFalse)
			c.Assert(a.SequenceDataGet(3, make([]uint32, 1)), qt.Equals, 0)
		})
	}
}

func TestADCParamErrors(t *testing.T) {
	c := qt.New(t)
	var ops []string
	core.SetParamErrorHook(func(op, _ string) { ops = append(ops, op) })
	c.Cleanup(func() { core.SetParamErrorHook(nil) })

	a := NewADC(Constant(1), nil)
	a.SequenceEnable(3) // peripheral still off
	a.EnablePeripheral()
	a.SequenceConfigure(4, core.TriggerProcessor, 0)
	a.SequenceStepConfigure(3, 1, core.CtlEnd)
	a.HardwareOversampleConfigure(3)

	c.Assert(ops, qt.DeepEquals, []string{
		"SequenceEnable",
		"SequenceConfigure",
		"SequenceStepConfigure",
		"HardwareOversampleConfigure",
	})
}

func TestClockDelay(t *testing.T) {
	c := qt.New(t)
	clk := NewClock(nil)
	c.Assert(clk.ClockRate(), qt.Equals, uint32(ResetClockRate))

	clk.SetClock(core.LabClock)
	c.Assert(clk.ClockRate(), qt.Equals, uint32(50000000))

	clk.Delay(core.DelayCount(clk.ClockRate()))
	c.Assert(clk.Delays(), qt.Equals, 1)
	c.Assert(clk.Cycles(), qt.Equals, uint64(12499998))
	c.Assert(nearQuarterSecond(clk.Elapsed()), qt.IsTrue, qt.Commentf("elapsed %v", clk.Elapsed()))
}

func TestClockElapsedLongRun(t *testing.T) {
	c := qt.New(t)
	clk := NewClock(nil)
	clk.SetClock(core.LabClock)
	for i := 0; i < 4000; i++ {
		clk.Delay(core.DelayCount(clk.ClockRate()))
	}
	got := clk.Elapsed()
	c.Assert(got > 999*time.Second && got <= 1000*time.Second, qt.IsTrue, qt.Commentf("elapsed %v", got))
}

func TestClockRealTime(t *testing.T) {
	c := qt.New(t)
	var slept time.Duration
	clk := NewClock(nil)
	clk.RealTime = true
	clk.Sleep = func(d time.Duration) { slept += d }
	clk.SetClock(core.LabClock)
	clk.Delay(core.DelayCount(clk.ClockRate()))
	c.Assert(nearQuarterSecond(slept), qt.IsTrue, qt.Commentf("slept %v", slept))
}

func nearQuarterSecond(d time.Duration) bool {
	return d > 249*time.Millisecond && d <= 250*time.Millisecond
}

func TestDisplayTextLayer(t *testing.T) {
	c := qt.New(t)
	tr := &Trace{}
	d := NewDisplay(0, 0, tr)
	w, h := d.Size()
	c.Assert([]int16{w, h}, qt.DeepEquals, []int16{PanelWidth, PanelHeight})

	d.Init()
	var ctx core.Context
	ctx.Init(d)
	ctx.DrawString("AX :", core.AutoLength, 20, 25, false)
	ctx.DrawString("12", core.AutoLength, 45, 25, true)

	s, ok := d.TextAt(45, 25)
	c.Assert(ok, qt.IsTrue)
	c.Assert(s, qt.Equals, "12")
	c.Assert(d.Texts(), qt.DeepEquals, []TextRun{{20, 25, "AX :"}, {45, 25, "12"}})
	c.Assert(d.Lit(20, 25, 24, 8) > 0, qt.IsTrue)
	c.Assert(tr.Kinds(OpDisplayInit, OpDrawText), qt.DeepEquals,
		[]OpKind{OpDisplayInit, OpDrawText, OpDrawText})
}

func TestDisplayInitClears(t *testing.T) {
	c := qt.New(t)
	d := NewDisplay(8, 8, nil)
	d.FillRectangle(0, 0, 8, 8, core.ClrWhite)
	d.ObserveText("x", 0, 0)
	d.Init()
	c.Assert(d.Lit(0, 0, 8, 8), qt.Equals, 0)
	_, ok := d.TextAt(0, 0)
	c.Assert(ok, qt.IsFalse)
	c.Assert(d.Render(), qt.HasLen, 9*8)
}

func TestSources(t *testing.T) {
	c := qt.New(t)
	seq := Sequence(0, 4095)
	c.Assert([]uint32{seq(core.CH8, 0), seq(core.CH8, 1), seq(core.CH8, 7)},
		qt.DeepEquals, []uint32{0, 4095, 4095})

	ramp := Ramp(1000)
	c.Assert(ramp(core.CH8, 5), qt.Equals, uint32(5000%4096))

	tilt := Tilt(4000, 8)
	for i := 0; i < 16; i++ {
		v := tilt(core.CH9, i)
		c.Assert(v <= MaxSample, qt.IsTrue)
	}
}

func TestBoardInstall(t *testing.T) {
	c := qt.New(t)
	b := NewBoard(Constant(1))
	b.Install()
	c.Assert(core.MustADC(), qt.Equals, core.ADCDriver(b.ADC))
	c.Assert(core.MustDisplay(), qt.Equals, core.Display(b.Display))
	c.Assert(core.MustTiming(), qt.Equals, core.TimingDriver(b.Clock))
}
