//go:build !tinygo

package dev

// Manually driven clock for regular Go builds.

var clockMS uint32

func nowMS() uint32 {
	return clockMS
}

func sleepMS(ms uint32) {
	clockMS += ms
}

// SetClock rewinds or forwards the millisecond counter.
func SetClock(ms uint32) {
	clockMS = ms
}

// AdvanceClock moves the millisecond counter forward.
func AdvanceClock(ms uint32) {
	clockMS += ms
}
