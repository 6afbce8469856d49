package dev

import "testing"

type stubCounter struct {
	count  uint16
	dir    int8
	resets int
}

func (c *stubCounter) Start()          {}
func (c *stubCounter) Stop()           {}
func (c *stubCounter) Reset()          { c.resets++; c.count = 0 }
func (c *stubCounter) Count() uint16   { return c.count }
func (c *stubCounter) Direction() int8 { return c.dir }

func TestEncoderFoldsNaturalWrap(t *testing.T) {
	ctr := &stubCounter{count: 65526}
	enc, err := NewEncoder(ctr, 1000, 0xFFFF)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	enc.Start()

	steps := []uint16{65530, 65534, 2, 6}
	want := []int32{4, 8, 12, 16}
	for i, c := range steps {
		ctr.count = c
		enc.Update()
		if got := enc.Total(); got != want[i] {
			t.Errorf("total after count %d = %d, want %d", c, got, want[i])
		}
	}
}

func TestEncoderFoldsBackwardWrap(t *testing.T) {
	ctr := &stubCounter{count: 2}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()

	ctr.count = 65534
	enc.Update()
	if got := enc.Total(); got != -4 {
		t.Errorf("total after backward wrap = %d, want -4", got)
	}
}

func TestEncoderOverflowCompensation(t *testing.T) {
	ctr := &stubCounter{}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()

	enc.OnOverflow(1)
	if got := enc.Total(); got != 65536 {
		t.Errorf("total after overflow = %d, want 65536", got)
	}
	enc.OnOverflow(-1)
	if got := enc.Total(); got != 0 {
		t.Errorf("total after underflow = %d, want 0", got)
	}
}

func TestEncoderRPM(t *testing.T) {
	ctr := &stubCounter{}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()

	if got := enc.RPM(0); got != 0 {
		t.Errorf("seeding call returned %d, want 0", got)
	}
	ctr.count = 500
	if got := enc.RPM(100); got != 300 {
		t.Errorf("rpm = %d, want 300", got)
	}
	// Same timestamp returns the cached speed even if the count moved.
	ctr.count = 600
	if got := enc.RPM(100); got != 300 {
		t.Errorf("rpm with zero dt = %d, want cached 300", got)
	}
}

func TestEncoderRPMNegative(t *testing.T) {
	ctr := &stubCounter{count: 500}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()

	enc.RPM(0)
	ctr.count = 0
	if got := enc.RPM(100); got != -300 {
		t.Errorf("reverse rpm = %d, want -300", got)
	}
}

func TestEncoderStopFreezesTotal(t *testing.T) {
	ctr := &stubCounter{}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()
	ctr.count = 10
	enc.Update()
	enc.Stop()
	ctr.count = 50
	enc.Update()
	if got := enc.Total(); got != 10 {
		t.Errorf("total after stop = %d, want 10", got)
	}
}

func TestEncoderReset(t *testing.T) {
	ctr := &stubCounter{}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()
	ctr.count = 200
	enc.Update()
	enc.RPM(50)

	enc.Reset()
	if ctr.resets != 1 {
		t.Errorf("hardware resets = %d, want 1", ctr.resets)
	}
	if got := enc.Total(); got != 0 {
		t.Errorf("total after reset = %d, want 0", got)
	}
	if got := enc.RPM(100); got != 0 {
		t.Errorf("first rpm after reset = %d, want seeding 0", got)
	}
}

func TestEncoderDetentDelta(t *testing.T) {
	ctr := &stubCounter{}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()
	enc.SetDetentDivisor(4)

	ctr.count = 6
	enc.Update()
	if got := enc.TakeDelta(); got != 1 {
		t.Errorf("first take = %d, want 1", got)
	}
	// The 2-step remainder stays buffered.
	ctr.count = 8
	enc.Update()
	if got := enc.TakeDelta(); got != 1 {
		t.Errorf("second take = %d, want 1", got)
	}
	if got := enc.TakeDelta(); got != 0 {
		t.Errorf("empty take = %d, want 0", got)
	}
}

func TestEncoderMenuGate(t *testing.T) {
	ctr := &stubCounter{}
	enc, _ := NewEncoder(ctr, 1000, 0xFFFF)
	enc.Start()

	enc.Disable()
	ctr.count = 40
	enc.Update()
	enc.Enable()

	if got := enc.TakeDelta(); got != 0 {
		t.Errorf("gated motion leaked %d detents into the menu", got)
	}
	if got := enc.Total(); got != 40 {
		t.Errorf("total while gated = %d, want 40", got)
	}

	ctr.count = 44
	enc.Update()
	if got := enc.TakeDelta(); got != 4 {
		t.Errorf("delta after re-enable = %d, want 4", got)
	}
}

func TestEncoderConstruction(t *testing.T) {
	if _, err := NewEncoder(nil, 1000, 0xFFFF); err != ErrCounterNil {
		t.Errorf("nil counter error = %v, want ErrCounterNil", err)
	}
	if _, err := NewEncoder(&stubCounter{}, 0, 0xFFFF); err != ErrInvalidArgument {
		t.Errorf("zero cpr error = %v, want ErrInvalidArgument", err)
	}
}
