package dev

// The millisecond tick everything in this package schedules against.
// The counter wraps at 2^32, roughly 49 days.

// Now returns milliseconds since boot.
func Now() uint32 {
	return nowMS()
}

// Elapsed returns milliseconds passed since a value taken from Now,
// correct across a single wrap of the counter.
func Elapsed(since uint32) uint32 {
	now := nowMS()
	if now >= since {
		return now - since
	}
	return (0xFFFFFFFF - since) + now + 1
}

// Sleep pauses the caller for ms milliseconds of the tick. The manual
// test clock turns it into a plain advance.
func Sleep(ms uint32) {
	sleepMS(ms)
}

// TickReload computes the hardware reload value for a tick of tickHz at the
// given core clock. The counter behind it is 24 bits wide.
func TickReload(cpuHz, tickHz uint32) (uint32, error) {
	if tickHz == 0 || cpuHz == 0 {
		return 0, ErrInvalidArgument
	}
	reload := cpuHz/tickHz - 1
	if reload > 0xFFFFFF {
		return 0, ErrReloadTooLarge
	}
	return reload, nil
}

// Timer is a software one-shot or auto-reload timer polled against the
// millisecond tick. The zero value is a stopped timer; configure it with
// NewTimer or Init before use.
type Timer struct {
	start      uint32
	interval   uint32
	enabled    bool
	autoReload bool
}

func NewTimer(intervalMS uint32, autoReload bool) Timer {
	return Timer{interval: intervalMS, autoReload: autoReload}
}

func (t *Timer) Init(intervalMS uint32, autoReload bool) {
	t.interval = intervalMS
	t.autoReload = autoReload
	t.enabled = false
}

// Start records the current tick and enables the timer.
func (t *Timer) Start() {
	t.start = nowMS()
	t.enabled = true
}

func (t *Timer) Stop() {
	t.enabled = false
}

func (t *Timer) Enabled() bool {
	return t.enabled
}

// Expired reports whether the interval has passed. An auto-reload timer
// restarts from the moment of the check; a one-shot timer disables itself.
func (t *Timer) Expired() bool {
	if !t.enabled {
		return false
	}
	if Elapsed(t.start) < t.interval {
		return false
	}
	if t.autoReload {
		t.start = nowMS()
	} else {
		t.enabled = false
	}
	return true
}
