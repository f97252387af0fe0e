package button

import (
	"testing"
	"time"

	"github.com/lokno/button-sensor/internal/gpio"
)

// monitorFixture bundles a monitor with its fakes so tests can drive raw
// levels and both clocks together (wall clock for events, millis for the
// filter).
type monitorFixture struct {
	mon   *Monitor
	pin   *gpio.FakePin
	clock *fakeMillis
	start time.Time
}

func newMonitorFixture(t *testing.T, level bool) *monitorFixture {
	t.Helper()
	pin := gpio.NewFakePin([]bool{level})
	clock := &fakeMillis{}
	btn := New(pin, 50*time.Millisecond, false, false, clock.Now)
	if err := btn.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return &monitorFixture{
		mon:   NewMonitor(btn, start),
		pin:   pin,
		clock: clock,
		start: start,
	}
}

// poll advances both clocks to the given millisecond offset, sets the raw
// level, and polls the monitor once.
func (f *monitorFixture) poll(t *testing.T, at uint32, level bool) *Event {
	t.Helper()
	f.clock.now = at
	f.pin.Set(level)
	ev, err := f.mon.Poll(f.start.Add(time.Duration(at) * time.Millisecond))
	if err != nil {
		t.Fatalf("Poll at t=%d: %v", at, err)
	}
	return ev
}

func TestMonitorPressAndReleaseEvents(t *testing.T) {
	f := newMonitorFixture(t, false)

	if ev := f.poll(t, 0, true); ev != nil {
		t.Errorf("expected no event inside the window, got %s", ev.Type)
	}

	ev := f.poll(t, 60, true)
	if ev == nil {
		t.Fatal("expected a press event at t=60")
	}
	if ev.Type != EventPressed {
		t.Errorf("type: got %s, want PRESSED", ev.Type)
	}
	if ev.State != StatePressed {
		t.Errorf("state: got %s, want PRESSED", ev.State)
	}
	if !ev.Timestamp.Equal(f.start.Add(60 * time.Millisecond)) {
		t.Errorf("unexpected timestamp: %v", ev.Timestamp)
	}

	f.poll(t, 100, false)
	ev = f.poll(t, 160, false)
	if ev == nil {
		t.Fatal("expected a release event at t=160")
	}
	if ev.Type != EventReleased {
		t.Errorf("type: got %s, want RELEASED", ev.Type)
	}
	if ev.State != StateReleased {
		t.Errorf("state: got %s, want RELEASED", ev.State)
	}

	counts := f.mon.Counts()
	if counts.Pressed != 1 {
		t.Errorf("Counts.Pressed: got %d, want 1", counts.Pressed)
	}
	if counts.Released != 1 {
		t.Errorf("Counts.Released: got %d, want 1", counts.Released)
	}
}

func TestMonitorNoEventForSteadyState(t *testing.T) {
	f := newMonitorFixture(t, false)

	for i := uint32(0); i < 10; i++ {
		if ev := f.poll(t, i*100, false); ev != nil {
			t.Errorf("t=%d: expected no event for steady input, got %s", i*100, ev.Type)
		}
	}
	if got := f.mon.Counts(); got != (EventCounts{}) {
		t.Errorf("expected zero counts, got %+v", got)
	}
}

func TestMonitorState(t *testing.T) {
	f := newMonitorFixture(t, false)

	if f.mon.State() != StateReleased {
		t.Errorf("initial state: got %s, want RELEASED", f.mon.State())
	}

	f.poll(t, 0, true)
	f.poll(t, 60, true)
	if f.mon.State() != StatePressed {
		t.Errorf("after press: got %s, want PRESSED", f.mon.State())
	}
}

func TestMonitorIdleOncePerReleasePhase(t *testing.T) {
	f := newMonitorFixture(t, false)
	threshold := 100 * time.Millisecond

	// Press then release; release raw transition observed at t=100.
	f.poll(t, 0, true)
	f.poll(t, 60, true)
	f.poll(t, 100, false)
	f.poll(t, 160, false)

	f.clock.now = 150
	if ev := f.mon.CheckIdle(f.start.Add(150*time.Millisecond), threshold); ev != nil {
		t.Errorf("50ms since raw transition: expected nil, got %s", ev.Type)
	}

	f.clock.now = 220
	ev := f.mon.CheckIdle(f.start.Add(220*time.Millisecond), threshold)
	if ev == nil {
		t.Fatal("120ms since raw transition: expected IDLE event")
	}
	if ev.Type != EventIdle {
		t.Errorf("type: got %s, want IDLE", ev.Type)
	}
	if ev.State != StateReleased {
		t.Errorf("state: got %s, want RELEASED", ev.State)
	}

	// One-shot: no repeat while still released.
	f.clock.now = 1000
	if ev := f.mon.CheckIdle(f.start.Add(time.Second), threshold); ev != nil {
		t.Error("IDLE must fire at most once per release phase")
	}

	// A new press/release cycle re-arms it.
	f.poll(t, 2000, true)
	f.poll(t, 2060, true)
	f.poll(t, 2100, false)
	f.poll(t, 2160, false)
	f.clock.now = 2300
	if ev := f.mon.CheckIdle(f.start.Add(2300*time.Millisecond), threshold); ev == nil {
		t.Error("expected IDLE to re-arm after a new press/release cycle")
	}

	if got := f.mon.Counts().Idle; got != 2 {
		t.Errorf("Counts.Idle: got %d, want 2", got)
	}
}

func TestMonitorIdleDisabled(t *testing.T) {
	f := newMonitorFixture(t, false)

	f.clock.now = 100000
	if ev := f.mon.CheckIdle(f.start.Add(100*time.Second), 0); ev != nil {
		t.Error("threshold 0 must disable idle detection")
	}
}

func TestMonitorIdleNotWhilePressed(t *testing.T) {
	f := newMonitorFixture(t, false)

	f.poll(t, 0, true)
	f.poll(t, 60, true)

	f.clock.now = 10000
	if ev := f.mon.CheckIdle(f.start.Add(10*time.Second), 100*time.Millisecond); ev != nil {
		t.Error("IDLE must not fire while pressed")
	}
}

func TestMonitorHeartbeat(t *testing.T) {
	f := newMonitorFixture(t, false)
	interval := 15 * time.Minute

	if hb := f.mon.CheckHeartbeat(f.start.Add(10*time.Minute), interval); hb != nil {
		t.Error("heartbeat before the interval elapsed")
	}

	hb := f.mon.CheckHeartbeat(f.start.Add(15*time.Minute), interval)
	if hb == nil {
		t.Fatal("expected heartbeat at the interval")
	}
	if hb.Uptime != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", hb.Uptime)
	}

	// The interval restarts from the last heartbeat.
	if hb := f.mon.CheckHeartbeat(f.start.Add(20*time.Minute), interval); hb != nil {
		t.Error("heartbeat must not repeat before another full interval")
	}
	if hb := f.mon.CheckHeartbeat(f.start.Add(30*time.Minute), interval); hb == nil {
		t.Error("expected second heartbeat after another interval")
	}
}

func TestMonitorHeartbeatDisabled(t *testing.T) {
	f := newMonitorFixture(t, false)

	if hb := f.mon.CheckHeartbeat(f.start.Add(24*time.Hour), 0); hb != nil {
		t.Error("interval 0 must disable heartbeats")
	}
}

func TestMonitorHeartbeatCarriesCounts(t *testing.T) {
	f := newMonitorFixture(t, false)

	f.poll(t, 0, true)
	f.poll(t, 60, true)
	f.poll(t, 100, false)
	f.poll(t, 160, false)

	hb := f.mon.CheckHeartbeat(f.start.Add(time.Hour), 15*time.Minute)
	if hb == nil {
		t.Fatal("expected heartbeat")
	}
	if hb.Counts.Pressed != 1 || hb.Counts.Released != 1 {
		t.Errorf("counts: got %+v, want Pressed=1 Released=1", hb.Counts)
	}
}
