//go:build rp2040 || rp2350

package main

import "machine"

// InitUSB configures the USB CDC port the telemetry frames go out on.
func InitUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// usbWriter sends to the USB CDC port. A write while no host is attached
// fails and the frame is dropped.
type usbWriter struct{}

func (usbWriter) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}
