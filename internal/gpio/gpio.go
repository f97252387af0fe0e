// Package gpio provides digital input access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Mode selects the electrical configuration of an input line.
type Mode int

const (
	// ModeInput requests the line as a plain input (bias left as-is).
	ModeInput Mode = iota
	// ModeInputPullup requests the line as an input with the internal
	// pull-up resistor enabled.
	ModeInputPullup
)

// Pin is a single digital input line.
type Pin interface {
	// Configure sets the line's electrical mode. Called once before the
	// first Read.
	Configure(mode Mode) error

	// Read returns the instantaneous electrical level: true = high.
	// Polarity inversion for active-low wiring is the caller's concern.
	Read() (bool, error)

	// Close releases the line.
	Close() error
}

// Defaults for the Raspberry Pi wiring this daemon ships with.
const (
	DefaultChip = "gpiochip0"
	DefaultLine = 17 // BCM numbering
)
