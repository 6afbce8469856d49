package dev

import "testing"

func TestLinearApproximatorFromPoints(t *testing.T) {
	// Two-point calibration: 0 counts = 0 V, 4095 counts = 3.3 V.
	la := NewLinearApproximatorFromPoints[float32](0, 0, 4095, 3.3)
	got := la.Convert(2048)
	if got < 1.64 || got > 1.66 {
		t.Errorf("mid-scale = %v, want about 1.65", got)
	}
}

func TestCurrentMeter(t *testing.T) {
	cm := NewCurrentMeter(2048, 2150)

	if got := cm.Milliamps(2048); got != 0 {
		t.Errorf("zero-current count = %v mA, want 0", got)
	}
	if got := cm.Milliamps(3048); got < 2149.9 || got > 2150.1 {
		t.Errorf("1000 counts above zero = %v mA, want 2150", got)
	}
	if got := cm.Milliamps(1048); got > -2149.9 || got < -2150.1 {
		t.Errorf("1000 counts below zero = %v mA, want -2150", got)
	}
}
