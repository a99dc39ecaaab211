// Package serial opens the board's serial link for host tools.
package serial

import "io"

// Port is an open serial link.
type Port interface {
	io.ReadWriteCloser

	// Flush pushes out any buffered data.
	Flush() error
}

// Config holds serial port settings.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; the Pico's USB CDC port ignores it
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud matches the firmware's UART setting.
const DefaultBaud = 115200

// DefaultConfig returns the settings the firmware uses.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
