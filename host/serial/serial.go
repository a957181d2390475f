// Package serial abstracts the host side of the arm's serial link.
// The Port interface allows different implementations: a native port
// (github.com/tarm/serial) for real hardware and a mock for tests.
package serial

import "io"

// Port is a host-side serial connection to the arm.
type Port interface {
	io.ReadWriteCloser

	// Flush discards any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3").
	Device string

	// Baud rate. USB CDC links ignore it, real UARTs do not.
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// DefaultConfig returns the configuration the firmware expects.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
