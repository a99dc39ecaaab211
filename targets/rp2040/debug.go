//go:build rp2040 || rp2350

package main

import "machine"

var debugUART *machine.UART

// InitDebugUART routes core debug output to UART0 on GPIO0 (TX) and
// GPIO1 (RX) at 115200 baud. The USB port carries telemetry.
func InitDebugUART() bool {
	debugUART = machine.UART0
	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO0,
		RX:       machine.GPIO1,
	})
	if err != nil {
		debugUART = nil
		return false
	}
	return true
}

func debugWrite(s string) {
	if debugUART == nil {
		return
	}
	debugUART.Write([]byte(s))
	debugUART.Write([]byte("\r\n"))
}
