//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPin reads a GPIO line on actual hardware via the Linux GPIO character
// device.
type RealPin struct {
	chip   *gpiocdev.Chip
	offset int
	line   *gpiocdev.Line
}

// NewRealPin opens the named GPIO chip for the given line offset. The line
// itself is not requested until Configure.
func NewRealPin(chip string, offset int) (*RealPin, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}
	return &RealPin{chip: c, offset: offset}, nil
}

// Configure requests the line as an input with the bias implied by mode.
func (p *RealPin) Configure(mode Mode) error {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	if mode == ModeInputPullup {
		opts = append(opts, gpiocdev.WithPullUp)
	}

	line, err := p.chip.RequestLine(p.offset, opts...)
	if err != nil {
		return fmt.Errorf("request line %d: %w", p.offset, err)
	}
	p.line = line
	return nil
}

// Read returns the electrical level of the line: true = high.
func (p *RealPin) Read() (bool, error) {
	if p.line == nil {
		return false, fmt.Errorf("line %d not configured", p.offset)
	}
	v, err := p.line.Value()
	if err != nil {
		return false, fmt.Errorf("read line %d: %w", p.offset, err)
	}
	return v != 0, nil
}

// Close releases GPIO resources. The line is reconfigured to a plain input
// with bias disabled before release so an external pull-up does not hold the
// pin in an unexpected state across restarts.
func (p *RealPin) Close() error {
	var errs []error

	if p.line != nil {
		if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line %d: %w", p.offset, err))
		}
		if err := p.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", p.offset, err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
