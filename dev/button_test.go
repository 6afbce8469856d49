package dev

import "testing"

type stubPin struct {
	level bool
}

func (p *stubPin) Get() bool { return p.level }

func TestDebounceCommitsOnUnanimousNibble(t *testing.T) {
	b := NewButton(&stubPin{level: true})

	seq := []uint8{0, 1, 0, 1, 1, 1, 1, 0, 0, 0, 0}
	pressedAt, releasedAt := -1, -1
	for i, r := range seq {
		b.Debounce(r == 1)
		if pressedAt == -1 && b.Pressed() {
			pressedAt = i
		}
		if pressedAt != -1 && releasedAt == -1 && !b.Pressed() {
			releasedAt = i
		}
	}

	if pressedAt != 6 {
		t.Errorf("press committed at sample %d, want 6", pressedAt)
	}
	if releasedAt != 10 {
		t.Errorf("release committed at sample %d, want 10", releasedAt)
	}
	if !b.TakePress() {
		t.Error("press event not latched")
	}
	if b.TakePress() {
		t.Error("press event latched twice")
	}
}

func TestDebounceLatchesOnceBetweenTakes(t *testing.T) {
	b := NewButton(&stubPin{})
	for i := 0; i < 8; i++ {
		b.Debounce(true)
	}
	if !b.TakePress() {
		t.Fatal("no press event after committed press")
	}
	// Holding the key keeps the level but raises no new edge.
	for i := 0; i < 8; i++ {
		b.Debounce(true)
	}
	if b.TakePress() {
		t.Error("held key raised a second edge")
	}
	for i := 0; i < 4; i++ {
		b.Debounce(false)
	}
	for i := 0; i < 4; i++ {
		b.Debounce(true)
	}
	if !b.TakePress() {
		t.Error("release then press raised no new edge")
	}
}

func TestSampleIsActiveLow(t *testing.T) {
	pin := &stubPin{level: false}
	b := NewButton(pin)
	for i := 0; i < 4; i++ {
		b.Sample()
	}
	if !b.Pressed() {
		t.Error("grounded pin not committed as pressed")
	}
	pin.level = true
	for i := 0; i < 4; i++ {
		b.Sample()
	}
	if b.Pressed() {
		t.Error("released pin still committed as pressed")
	}
}

func TestManagerScansOnPeriod(t *testing.T) {
	SetClock(0)
	up := NewButton(&stubPin{level: false})
	down := NewButton(&stubPin{level: true})
	m, err := NewManager(5, up, down)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	m.Start()

	if m.Scan() {
		t.Error("scan pass ran before period elapsed")
	}
	passes := 0
	for i := 0; i < 20; i++ {
		AdvanceClock(1)
		if m.Scan() {
			passes++
		}
	}
	if passes != 4 {
		t.Errorf("ran %d passes over 20 ms, want 4", passes)
	}
	if !up.Pressed() {
		t.Error("held key not committed after 4 passes")
	}
	if down.Pressed() {
		t.Error("idle key committed as pressed")
	}
}

func TestManagerRejectsTooManyButtons(t *testing.T) {
	bank := make([]*Button, maxButtons+1)
	for i := range bank {
		bank[i] = NewButton(&stubPin{})
	}
	if _, err := NewManager(5, bank...); err != ErrTooManyButtons {
		t.Errorf("error = %v, want ErrTooManyButtons", err)
	}
}
