package dev

// CurrentGuard cuts the bridge when the averaged sense current crosses
// the limit. It polls on a 1 ms software timer and only does work when
// the sampler has a complete fresh lap.
type CurrentGuard struct {
	sampler   *Sampler
	motor     *Motor
	threshold uint16
	timer     Timer

	average uint16
	tripped bool
}

func NewCurrentGuard(sampler *Sampler, motor *Motor, threshold uint16) *CurrentGuard {
	return &CurrentGuard{
		sampler:   sampler,
		motor:     motor,
		threshold: threshold,
		timer:     NewTimer(1, true),
	}
}

func (g *CurrentGuard) Start() { g.timer.Start() }
func (g *CurrentGuard) Stop()  { g.timer.Stop() }

// Poll runs one protection pass. It reports whether this pass cut the
// bridge.
func (g *CurrentGuard) Poll() bool {
	if !g.timer.Expired() {
		return false
	}
	if !g.sampler.TakeBatch() {
		return false
	}
	ring := g.sampler.Ring()
	var sum uint32
	for _, v := range ring {
		sum += uint32(v)
	}
	g.average = uint16(sum / uint32(len(ring)))
	if g.average > g.threshold {
		g.motor.Kill()
		g.tripped = true
		return true
	}
	return false
}

// Average returns the mean of the last complete lap.
func (g *CurrentGuard) Average() uint16 { return g.average }

// Tripped reports whether the guard has cut the bridge since the last
// clear.
func (g *CurrentGuard) Tripped() bool { return g.tripped }

// ClearTrip acknowledges a trip. The bridge itself is re-enabled through
// the motor, not here.
func (g *CurrentGuard) ClearTrip() { g.tripped = false }

func (g *CurrentGuard) Threshold() uint16 { return g.threshold }

func (g *CurrentGuard) SetThreshold(v uint16) { g.threshold = v }
