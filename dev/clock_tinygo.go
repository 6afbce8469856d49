//go:build tinygo

package dev

import (
	"time"
	_ "unsafe"
)

//go:linkname ticks runtime.ticks
func ticks() uint64

//go:linkname ticksToNanoseconds runtime.ticksToNanoseconds
func ticksToNanoseconds(ticks uint64) int64

func nowMS() uint32 {
	return uint32(uint64(ticksToNanoseconds(ticks())) / 1_000_000)
}

// sleepMS must go through the scheduler, not a spin loop. The sample
// feed runs as a goroutine on boards without ADC streaming and only
// gets CPU while the main loop sleeps.
func sleepMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
