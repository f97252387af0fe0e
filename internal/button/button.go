package button

import (
	"time"

	"github.com/lokno/button-sensor/internal/gpio"
)

// Button is a stability-timer debounce filter over a single digital input.
// A raw reading is accepted as the new debounced state only after it has
// held steady for longer than the debounce interval; the elapsed time is
// measured against the injected millisecond clock, so correctness does not
// depend on the poll rate as long as polling is frequent relative to the
// interval.
//
// Timestamps are uint32 milliseconds and all elapsed-time comparisons use
// unsigned subtraction, so the filter stays correct across clock wraparound
// (~49.7 days).
//
// Not safe for concurrent use; the target is a single-threaded poll loop.
type Button struct {
	pin        gpio.Pin
	debounceMs uint32
	pullup     bool
	activeLow  bool
	now        func() uint32

	pressed    bool
	changed    bool
	lastRaw    bool
	lastChange uint32
}

// New creates a Button with the given configuration. It does not touch the
// hardware; call Begin before the first Poll.
//
// The debounce interval is truncated to whole milliseconds. now must be a
// non-decreasing (modulo wraparound) millisecond clock, e.g. Millis().
func New(pin gpio.Pin, debounce time.Duration, pullup, activeLow bool, now func() uint32) *Button {
	return &Button{
		pin:        pin,
		debounceMs: uint32(debounce.Milliseconds()),
		pullup:     pullup,
		activeLow:  activeLow,
		now:        now,
	}
}

// Begin configures the input line's electrical mode and seeds the filter
// from one immediate read, so the debounced state reflects the physical
// state at call time with no pending transition.
func (b *Button) Begin() error {
	mode := gpio.ModeInput
	if b.pullup {
		mode = gpio.ModeInputPullup
	}
	if err := b.pin.Configure(mode); err != nil {
		return err
	}

	raw, err := b.pin.Read()
	if err != nil {
		return err
	}
	if b.activeLow {
		raw = !raw
	}

	b.pressed = raw
	b.lastRaw = raw
	b.changed = false
	b.lastChange = b.now()
	return nil
}

// Poll samples the input once and updates the debounced state.
// A read error leaves the filter untouched and is returned to the caller.
func (b *Button) Poll() error {
	raw, err := b.pin.Read()
	if err != nil {
		return err
	}
	if b.activeLow {
		raw = !raw
	}

	now := b.now()

	// Any raw change restarts the debounce window, discarding a partially
	// elapsed one.
	if raw != b.lastRaw {
		b.lastChange = now
	}

	if now-b.lastChange > b.debounceMs {
		if raw != b.pressed {
			b.pressed = raw
			b.changed = true
		} else {
			b.changed = false
		}
	} else {
		b.changed = false
	}

	b.lastRaw = raw
	return nil
}

// IsPressed returns the current debounced state.
func (b *Button) IsPressed() bool {
	return b.pressed
}

// WasPressed reports whether the most recent Poll confirmed a press edge.
// True for exactly one poll per press.
func (b *Button) WasPressed() bool {
	return b.changed && b.pressed
}

// WasReleased reports whether the most recent Poll confirmed a release edge.
func (b *Button) WasReleased() bool {
	return b.changed && !b.pressed
}

// ReleasedFor reports whether the button is released and at least d has
// elapsed since the last raw transition.
//
// Note the anchor: elapsed time is measured from the start of the window
// that led to the current raw reading, not from the debounce-confirmed
// release. A bounce during the release phase re-arms the timer. This matches
// the original firmware and downstream callers rely on it; do not "fix"
// without product-owner confirmation.
func (b *Button) ReleasedFor(d time.Duration) bool {
	return !b.pressed && b.now()-b.lastChange >= uint32(d.Milliseconds())
}
