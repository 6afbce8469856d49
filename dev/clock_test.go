package dev

import "testing"

func TestElapsedAcrossWrap(t *testing.T) {
	SetClock(0xFFFFFFFB)
	start := Now()
	AdvanceClock(10)
	if got := Elapsed(start); got != 10 {
		t.Errorf("Elapsed across wrap = %d, want 10", got)
	}
}

func TestElapsedMonotonic(t *testing.T) {
	SetClock(1000)
	start := Now()
	AdvanceClock(250)
	if got := Elapsed(start); got != 250 {
		t.Errorf("Elapsed = %d, want 250", got)
	}
}

func TestTickReload(t *testing.T) {
	reload, err := TickReload(133_000_000, 1000)
	if err != nil {
		t.Fatalf("TickReload failed: %v", err)
	}
	if reload != 132_999 {
		t.Errorf("reload = %d, want 132999", reload)
	}

	if _, err := TickReload(200_000_000, 1); err != ErrReloadTooLarge {
		t.Errorf("oversized reload error = %v, want ErrReloadTooLarge", err)
	}
	if _, err := TickReload(0, 1000); err != ErrInvalidArgument {
		t.Errorf("zero clock error = %v, want ErrInvalidArgument", err)
	}
	if _, err := TickReload(133_000_000, 0); err != ErrInvalidArgument {
		t.Errorf("zero rate error = %v, want ErrInvalidArgument", err)
	}
}

func TestTimerDisabledNeverExpires(t *testing.T) {
	SetClock(0)
	tm := NewTimer(5, true)
	AdvanceClock(100)
	if tm.Expired() {
		t.Error("stopped timer expired")
	}
}

func TestTimerOneShot(t *testing.T) {
	SetClock(0)
	tm := NewTimer(10, false)
	tm.Start()

	AdvanceClock(9)
	if tm.Expired() {
		t.Error("expired before interval")
	}
	AdvanceClock(1)
	if !tm.Expired() {
		t.Error("did not expire at interval")
	}
	if tm.Enabled() {
		t.Error("one-shot still enabled after expiry")
	}
	AdvanceClock(100)
	if tm.Expired() {
		t.Error("one-shot expired twice")
	}
}

func TestTimerAutoReloadRestartsFromCheck(t *testing.T) {
	SetClock(0)
	tm := NewTimer(10, true)
	tm.Start()

	// Check late: the next period is measured from the check, not from
	// the missed schedule.
	AdvanceClock(25)
	if !tm.Expired() {
		t.Fatal("did not expire after 25 ms")
	}
	AdvanceClock(9)
	if tm.Expired() {
		t.Error("expired 9 ms after reload")
	}
	AdvanceClock(1)
	if !tm.Expired() {
		t.Error("did not expire 10 ms after reload")
	}
}

func TestTimerInitStops(t *testing.T) {
	SetClock(0)
	tm := NewTimer(10, true)
	tm.Start()
	tm.Init(20, false)
	if tm.Enabled() {
		t.Error("Init left timer enabled")
	}
	AdvanceClock(50)
	if tm.Expired() {
		t.Error("re-initialized timer expired without Start")
	}
}
