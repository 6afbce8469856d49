package ui

// Animation curves, chosen per page.
const (
	Unlinear Mode = iota // proportional approach, snap window speed/20
	PIDCurve             // position PID, snap window 0.5
)

type Mode uint8

// Dist is one animated scalar approaching a target. Zero value is a
// settled scalar at 0.
type Dist struct {
	Current float32
	Target  float32

	err        float32
	lastErr    float32
	integral   float32
	derivative float32
}

// Set places current and target together, ending any motion.
func (d *Dist) Set(v float32) {
	d.Current = v
	d.Target = v
}

// Step advances current toward target by one frame. Zero or negative
// speed snaps immediately.
func (d *Dist) Step(mode Mode, speed float32) {
	if speed <= 0 {
		d.Current = d.Target
		return
	}
	diff := d.Target - d.Current
	switch mode {
	case PIDCurve:
		d.err = diff
		d.integral += d.err
		d.derivative = (d.err - d.lastErr) / 0.1
		if abs(diff) < 0.5 {
			// Snap keeps the integral term.
			d.Current = d.Target
		} else {
			d.Current += 0.02*speed*d.err + 0.005*speed*d.integral + 0.002*d.derivative
		}
		d.lastErr = d.err
	default:
		if abs(diff) < speed/20 {
			d.Current = d.Target
		} else {
			d.Current += 0.02 * speed * diff
		}
	}
}

// Done reports arrival. Snapping assigns the target, so the comparison
// is exact.
func (d *Dist) Done() bool { return d.Current == d.Target }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Point animates a position.
type Point struct {
	X Dist
	Y Dist
}

func (p *Point) Set(x, y float32) {
	p.X.Set(x)
	p.Y.Set(y)
}

func (p *Point) SetTarget(x, y float32) {
	p.X.Target = x
	p.Y.Target = y
}

func (p *Point) Step(mode Mode, speed float32) {
	p.X.Step(mode, speed)
	p.Y.Step(mode, speed)
}

func (p *Point) Done() bool { return p.X.Done() && p.Y.Done() }

// Rect animates position and size together.
type Rect struct {
	X Dist
	Y Dist
	W Dist
	H Dist
}

func (r *Rect) Set(x, y, w, h float32) {
	r.X.Set(x)
	r.Y.Set(y)
	r.W.Set(w)
	r.H.Set(h)
}

func (r *Rect) SetTarget(x, y, w, h float32) {
	r.X.Target = x
	r.Y.Target = y
	r.W.Target = w
	r.H.Target = h
}

func (r *Rect) Step(mode Mode, speed float32) {
	r.X.Step(mode, speed)
	r.Y.Step(mode, speed)
	r.W.Step(mode, speed)
	r.H.Step(mode, speed)
}

func (r *Rect) Done() bool {
	return r.X.Done() && r.Y.Done() && r.W.Done() && r.H.Done()
}
