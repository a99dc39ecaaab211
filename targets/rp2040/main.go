//go:build rp2040 || rp2350

package main

import (
	"time"

	"adclab/core"
	"adclab/lab"
	"adclab/telemetry"
)

func main() {
	if InitDebugUART() {
		core.SetDebugWriter(debugWrite)
		core.SetDebugEnabled(true)
		core.InitAsyncDebug()
		core.SetParamErrorHook(func(op, detail string) {
			core.DebugAsync("[ERR] " + op + ": " + detail)
		})
	}
	InitUSB()

	clk := &RpClock{}
	core.SetClockDriver(clk)
	core.SetTimingDriver(clk)
	core.SetADCDriver(NewRpSequencerADC())
	core.SetDisplay(newOLED())

	l, err := lab.New(GetConfig(), lab.BoardHardware())
	if err != nil {
		// nothing sensible to show; park and keep reporting why
		for {
			core.DebugPrintln("[MAIN] " + err.Error())
			time.Sleep(time.Second)
		}
	}
	l.SetReporter(telemetry.NewEncoder(usbWriter{}))
	l.Run()
}
