package button

import "time"

// Monitor turns confirmed button edges into timestamped events and keeps
// the bookkeeping the daemon publishes: event counts, heartbeats, and the
// one-shot idle notification per release phase.
type Monitor struct {
	btn           *Button
	startTime     time.Time
	counts        EventCounts
	lastHeartbeat time.Time
	idleSent      bool
}

// NewMonitor creates a Monitor around an already-constructed Button.
// The startTime is used for calculating uptime in heartbeat events.
func NewMonitor(btn *Button, startTime time.Time) *Monitor {
	return &Monitor{
		btn:           btn,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Poll samples the button once and returns an event if this poll confirmed
// an edge, nil otherwise. A read error is returned without producing an
// event; the caller decides whether to keep polling.
func (m *Monitor) Poll(now time.Time) (*Event, error) {
	if err := m.btn.Poll(); err != nil {
		return nil, err
	}

	switch {
	case m.btn.WasPressed():
		m.counts.Pressed++
		return &Event{Timestamp: now, Type: EventPressed, State: StatePressed}, nil
	case m.btn.WasReleased():
		m.counts.Released++
		m.idleSent = false // re-arm idle detection for this release phase
		return &Event{Timestamp: now, Type: EventReleased, State: StateReleased}, nil
	}
	return nil, nil
}

// CheckIdle returns an IDLE event the first time the button has been left
// released for at least threshold since the last raw transition. At most one
// IDLE event is emitted per release phase; the next confirmed press re-arms
// it. Returns nil if threshold <= 0 (disabled), the button is pressed, or
// the event was already emitted.
func (m *Monitor) CheckIdle(now time.Time, threshold time.Duration) *Event {
	if threshold <= 0 {
		return nil
	}
	if m.idleSent || m.btn.IsPressed() {
		return nil
	}
	if !m.btn.ReleasedFor(threshold) {
		return nil
	}

	m.idleSent = true
	m.counts.Idle++
	return &Event{Timestamp: now, Type: EventIdle, State: StateReleased}
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (m *Monitor) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}

	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.counts,
	}
}

// State returns the current debounced state.
func (m *Monitor) State() State {
	return StateOf(m.btn.IsPressed())
}

// Counts returns a snapshot of the event counts.
func (m *Monitor) Counts() EventCounts {
	return m.counts
}
