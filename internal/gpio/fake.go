package gpio

import "errors"

// FakePin is a test double that returns scripted electrical levels.
type FakePin struct {
	// Levels contains scripted electrical levels (true = high) to return.
	// Each call to Read() consumes the next level.
	Levels []bool

	// index tracks current position in Levels
	index int

	// Mode records the mode passed to Configure.
	Mode Mode

	// Configured tracks if Configure was called.
	Configured bool

	// Closed tracks if Close was called.
	Closed bool

	// ConfigureError, if set, will be returned by Configure().
	ConfigureError error

	// ReadError, if set, will be returned by Read().
	ReadError error
}

// NewFakePin creates a FakePin with the given scripted levels.
func NewFakePin(levels []bool) *FakePin {
	return &FakePin{Levels: levels}
}

// Configure records the requested mode.
func (f *FakePin) Configure(mode Mode) error {
	if f.ConfigureError != nil {
		return f.ConfigureError
	}
	f.Mode = mode
	f.Configured = true
	return nil
}

// Read returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakePin) Read() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}

	return level, nil
}

// Close marks the pin as closed.
func (f *FakePin) Close() error {
	f.Closed = true
	return nil
}

// Set replaces the script with a single steady level.
func (f *FakePin) Set(level bool) {
	f.Levels = []bool{level}
	f.index = 0
}

// Reset rewinds the script to the beginning.
func (f *FakePin) Reset() {
	f.index = 0
	f.Closed = false
}
