package gpio

import (
	"errors"
	"testing"
)

func TestFakePinScriptedLevels(t *testing.T) {
	f := NewFakePin([]bool{true, false, true})

	want := []bool{true, false, true}
	for i, w := range want {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakePinRepeatsLastLevel(t *testing.T) {
	f := NewFakePin([]bool{false, true})

	f.Read()
	f.Read()

	// Exhausted: keeps returning the last level.
	for i := 0; i < 3; i++ {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got {
			t.Errorf("read %d after exhaustion: got false, want true", i)
		}
	}
}

func TestFakePinNoLevels(t *testing.T) {
	f := NewFakePin(nil)

	if _, err := f.Read(); err == nil {
		t.Error("expected error with no levels configured")
	}
}

func TestFakePinReadError(t *testing.T) {
	f := NewFakePin([]bool{true})
	f.ReadError = errors.New("boom")

	if _, err := f.Read(); err == nil {
		t.Error("expected configured read error")
	}
}

func TestFakePinConfigure(t *testing.T) {
	f := NewFakePin([]bool{true})

	if err := f.Configure(ModeInputPullup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Configured {
		t.Error("expected Configured=true")
	}
	if f.Mode != ModeInputPullup {
		t.Errorf("mode: got %v, want ModeInputPullup", f.Mode)
	}
}

func TestFakePinConfigureError(t *testing.T) {
	f := NewFakePin([]bool{true})
	f.ConfigureError = errors.New("line busy")

	if err := f.Configure(ModeInput); err == nil {
		t.Error("expected configured error")
	}
	if f.Configured {
		t.Error("Configured must stay false on error")
	}
}

func TestFakePinSet(t *testing.T) {
	f := NewFakePin([]bool{false, false, false})
	f.Read()

	f.Set(true)
	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("Set(true): expected high reading")
	}
}

func TestFakePinCloseAndReset(t *testing.T) {
	f := NewFakePin([]bool{true, false})
	f.Read()

	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("expected Closed=true")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	got, _ := f.Read()
	if !got {
		t.Error("Reset should rewind to the first level")
	}
}
