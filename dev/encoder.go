package dev

// Counter is the hardware face of a quadrature counter: a 16-bit count
// that wraps at maxCount and a direction bit.
type Counter interface {
	Start()
	Stop()
	Reset()
	Count() uint16
	Direction() int8
}

// Encoder extends a 16-bit quadrature counter to a signed 32-bit total
// and derives shaft speed from it. It also feeds whole detents to the
// menu layer, which can be gated off without disturbing the total.
type Encoder struct {
	counter  Counter
	maxCount uint16
	cpr      uint32

	total   int32
	lastHW  uint16
	running bool

	menu    bool
	delta   int32
	divisor int32

	seeded     bool
	lastTimeMS uint32
	lastTotal  int32
	speed      int32
}

func NewEncoder(counter Counter, cpr uint32, maxCount uint16) (*Encoder, error) {
	if counter == nil {
		return nil, ErrCounterNil
	}
	if cpr == 0 {
		return nil, ErrInvalidArgument
	}
	return &Encoder{
		counter:  counter,
		cpr:      cpr,
		maxCount: maxCount,
		divisor:  1,
		menu:     true,
	}, nil
}

// Start begins counting from the current hardware position.
func (e *Encoder) Start() {
	e.counter.Start()
	e.lastHW = e.counter.Count()
	e.running = true
}

func (e *Encoder) Stop() {
	e.counter.Stop()
	e.running = false
}

// Reset zeroes the extended count and the speed history.
func (e *Encoder) Reset() {
	e.counter.Reset()
	e.total = 0
	e.delta = 0
	e.lastHW = e.counter.Count()
	e.seeded = false
	e.speed = 0
}

// Update folds the hardware count into the 32-bit total. The step since
// the last call is taken as the shortest signed distance on the wrap
// circle, so natural overflows need no interrupt as long as the shaft
// moves less than half the counter range between calls.
func (e *Encoder) Update() {
	if !e.running {
		return
	}
	cur := e.counter.Count()
	diff := int32(cur) - int32(e.lastHW)
	half := int32(e.maxCount) / 2
	span := int32(e.maxCount) + 1
	if diff > half {
		diff -= span
	} else if diff < -half {
		diff += span
	}
	e.total += diff
	e.lastHW = cur
	if e.menu {
		e.delta += diff
	}
}

// OnOverflow compensates the total for a full counter overflow or
// underflow. It mirrors a hardware timer's update interrupt and covers
// wraps that happen while nobody is calling Update.
func (e *Encoder) OnOverflow(dir int8) {
	span := int32(e.maxCount) + 1
	if dir < 0 {
		e.total -= span
	} else {
		e.total += span
	}
}

// Total returns the extended signed count.
func (e *Encoder) Total() int32 { return e.total }

// Direction reports the last counting direction, +1 or -1.
func (e *Encoder) Direction() int8 { return e.counter.Direction() }

// RPM computes shaft speed from the total delta since the previous call.
// The first call only seeds the history and returns zero. A repeated
// timestamp returns the cached value instead of dividing by zero.
func (e *Encoder) RPM(nowMS uint32) int32 {
	e.Update()
	if !e.seeded {
		e.seeded = true
		e.lastTimeMS = nowMS
		e.lastTotal = e.total
		return 0
	}
	dt := nowMS - e.lastTimeMS
	if dt == 0 {
		return e.speed
	}
	dc := int64(e.total - e.lastTotal)
	e.speed = int32(dc * 60_000 / (int64(e.cpr) * int64(dt)))
	e.lastTimeMS = nowMS
	e.lastTotal = e.total
	return e.speed
}

// SetDetentDivisor sets how many quadrature steps make one menu detent.
func (e *Encoder) SetDetentDivisor(d int32) {
	if d > 0 {
		e.divisor = d
	}
}

// TakeDelta consumes the whole detents accumulated for the menu layer.
// The remainder stays buffered so slow consumers lose nothing.
func (e *Encoder) TakeDelta() int {
	d := e.delta / e.divisor
	e.delta -= d * e.divisor
	return int(d)
}

// Disable stops feeding the menu layer. Extended counting continues so
// the monitored position stays true.
func (e *Encoder) Disable() {
	e.menu = false
	e.delta = 0
}

// Enable resumes menu consumption. Motion that happened while disabled
// is folded into the total first and discarded from the menu stream.
func (e *Encoder) Enable() {
	e.Update()
	e.menu = true
	e.delta = 0
}
