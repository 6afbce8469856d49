package dev

import "testing"

func newTestGuard(t *testing.T, threshold uint16) (*CurrentGuard, *Sampler, *Motor, *latchPin) {
	t.Helper()
	smp, _, _ := newTestSampler(t, 200)
	en, pp, mp := &latchPin{}, &latchPin{}, &latchPin{}
	motor := NewMotor(en, pp, mp)
	motor.Configure()
	return NewCurrentGuard(smp, motor, threshold), smp, motor, en
}

func fillRing(ring []uint16, v uint16) {
	for i := range ring {
		ring[i] = v
	}
}

func TestGuardCutsOnOvercurrent(t *testing.T) {
	SetClock(0)
	guard, smp, motor, en := newTestGuard(t, 3400)
	guard.Start()

	fillRing(smp.Ring(), 3500)
	smp.OnTransferComplete()
	AdvanceClock(1)

	if !guard.Poll() {
		t.Fatal("protection pass did not cut the bridge")
	}
	if en.level {
		t.Error("motor enable still high after cut")
	}
	if !motor.Killed() {
		t.Errorf("motor state = %d, want MotorKilled", motor.State())
	}
	if !guard.Tripped() {
		t.Error("guard does not report the trip")
	}
	if got := guard.Average(); got != 3500 {
		t.Errorf("batch average = %d, want 3500", got)
	}
}

func TestGuardLeavesNormalCurrentAlone(t *testing.T) {
	SetClock(0)
	guard, smp, motor, en := newTestGuard(t, 3400)
	guard.Start()

	fillRing(smp.Ring(), 3300)
	smp.OnTransferComplete()
	AdvanceClock(1)

	if guard.Poll() {
		t.Fatal("protection pass cut the bridge below threshold")
	}
	if !en.level {
		t.Error("motor enable dropped without a trip")
	}
	if motor.State() != MotorForward {
		t.Errorf("motor state = %d, want MotorForward", motor.State())
	}
	if got := guard.Average(); got != 3300 {
		t.Errorf("batch average = %d, want 3300", got)
	}
}

func TestGuardWaitsForPeriodAndBatch(t *testing.T) {
	SetClock(0)
	guard, smp, _, _ := newTestGuard(t, 3400)
	guard.Start()

	fillRing(smp.Ring(), 3500)
	smp.OnTransferComplete()

	// Same millisecond: the 1 ms pass is not due yet, the batch stays
	// latched for the next one.
	if guard.Poll() {
		t.Error("pass ran before its period")
	}
	AdvanceClock(1)
	if !guard.Poll() {
		t.Error("latched batch lost between passes")
	}

	// Period due but no fresh batch.
	AdvanceClock(1)
	if guard.Poll() {
		t.Error("pass cut without a fresh batch")
	}
}

func TestGuardThresholdUpdate(t *testing.T) {
	SetClock(0)
	guard, smp, motor, _ := newTestGuard(t, 3400)
	guard.Start()
	guard.SetThreshold(3600)

	fillRing(smp.Ring(), 3500)
	smp.OnTransferComplete()
	AdvanceClock(1)

	if guard.Poll() {
		t.Error("pass cut below the raised threshold")
	}
	if motor.Killed() {
		t.Error("motor killed below the raised threshold")
	}
	guard.ClearTrip()
	if guard.Tripped() {
		t.Error("trip flag survived clear")
	}
}
