// Package button implements a poll-driven debounce filter for a momentary
// push-button, plus the event pipeline built on top of it.
// The filter itself has NO hardware or OS dependencies: the pin and the
// clock are injected capabilities, so everything is testable with fakes.
package button

import "time"

// State represents the debounced logical state of the button.
type State string

const (
	StatePressed  State = "PRESSED"
	StateReleased State = "RELEASED"
)

// StateOf converts a debounced pressed flag into a State.
func StateOf(pressed bool) State {
	if pressed {
		return StatePressed
	}
	return StateReleased
}

// EventType represents a reportable button event.
type EventType string

const (
	EventPressed  EventType = "PRESSED"
	EventReleased EventType = "RELEASED"
	// EventIdle fires once per release phase after the button has been left
	// released for the configured idle threshold.
	EventIdle EventType = "IDLE"
)

// Event represents a button event to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Pressed  int
	Released int
	Idle     int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
