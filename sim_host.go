//go:build !tinygo

package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/itohio/motmon/config"
	"github.com/itohio/motmon/dev"
	"github.com/itohio/motmon/panel"
)

// Desk build: the whole panel runs against a modeled motor in a window.
// Arrow up and down are the front buttons, enter and escape the other
// two, left and right twist the encoder one detent, L drops a
// mechanical load on the shaft heavy enough to trip the protection.

const (
	simScale = 4
	simTPS   = 50
	// board milliseconds per window frame
	simStep = 1000 / simTPS

	simNoLoadRPM = 1800
)

type simPin struct{ level bool }

func (p *simPin) High()      { p.level = true }
func (p *simPin) Low()       { p.level = false }
func (p *simPin) Set(v bool) { p.level = v }
func (p *simPin) Get() bool  { return p.level }

type simCounter struct {
	count uint16
	dir   int8
}

func (c *simCounter) Start()          {}
func (c *simCounter) Stop()           {}
func (c *simCounter) Reset()          { c.count = 0 }
func (c *simCounter) Count() uint16   { return c.count }
func (c *simCounter) Direction() int8 { return c.dir }

func (c *simCounter) advance(n int32) {
	if n > 0 {
		c.dir = 1
	} else if n < 0 {
		c.dir = -1
	}
	c.count = uint16(int32(c.count) + n)
}

// simFeed hands the sampler a stream that the model fills in lockstep
// with the clock.
type simFeed struct{ dst []uint16 }

type simStream struct{ f *simFeed }

func (s simStream) Disable() error { return nil }

func (s simStream) Configure(dst []uint16) error {
	s.f.dst = dst
	return nil
}

func (s simStream) ClearFlags()                          {}
func (s simStream) ClearHalfFlag()                       {}
func (s simStream) ClearCompleteFlag()                   {}
func (s simStream) EnableInterrupts(half, complete bool) {}
func (s simStream) Enable()                              {}

type simSource struct{}

func (simSource) Configure(cfg dev.SampleConfig) error { return nil }
func (simSource) Start()                               {}
func (simSource) Stop()                                {}

// simMotor is a crude first-order model. The bridge pins drive the
// shaft toward its no-load speed, the sense channel follows the load,
// and the quadrature counter tracks the shaft so telemetry and the
// menu knob both work.
type simMotor struct {
	enable, p, m *simPin
	counter      *simCounter

	rpm     float32
	residue float32
	load    bool
	rng     uint32
}

func newSimMotor(enable, p, m *simPin, counter *simCounter) *simMotor {
	return &simMotor{enable: enable, p: p, m: m, counter: counter, rng: 0x2545}
}

func (m *simMotor) running() bool {
	return m.enable.Get() && m.p.Get() != m.m.Get()
}

// step advances the model one millisecond and refills the sense ring.
func (m *simMotor) step(dst []uint16) {
	var target float32
	if m.running() {
		target = simNoLoadRPM
		if !m.p.Get() {
			target = -target
		}
		if m.load {
			target *= 0.5
		}
	}
	m.rpm += (target - m.rpm) * 0.02

	counts := m.rpm*config.EncoderCPR/60000 + m.residue
	whole := int32(counts)
	m.residue = counts - float32(whole)
	m.counter.advance(whole)

	level := int32(config.SenseZeroCount)
	if m.running() {
		r := m.rpm
		if r < 0 {
			r = -r
		}
		level += 150 + int32(80*r/simNoLoadRPM)
		if m.load {
			level += 1500
		}
	}
	for i := range dst {
		dst[i] = uint16(level + int32(m.rand()&0x1f) - 16)
	}
}

func (m *simMotor) rand() uint32 {
	m.rng ^= m.rng << 13
	m.rng ^= m.rng >> 17
	m.rng ^= m.rng << 5
	return m.rng
}

// simDisplay is the window framebuffer.
type simDisplay struct {
	w, h int16
	pix  []byte
}

func newSimDisplay(w, h int16) *simDisplay {
	return &simDisplay{w: w, h: h, pix: make([]byte, int(w)*int(h)*4)}
}

func (d *simDisplay) Size() (int16, int16) { return d.w, d.h }
func (d *simDisplay) Display() error       { return nil }

func (d *simDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	i := (int(y)*int(d.w) + int(x)) * 4
	v := uint8(0)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		v = 0xff
	}
	d.pix[i], d.pix[i+1], d.pix[i+2], d.pix[i+3] = v, v, v, 0xff
}

type simRig struct {
	up, down, enter, back *simPin
	counter               *simCounter
	feed                  *simFeed
	motor                 *simMotor
	smp                   *dev.Sampler
	disp                  *simDisplay
	panel                 *panel.Panel
}

func newSimRig() (*simRig, error) {
	r := &simRig{
		up:      &simPin{level: true},
		down:    &simPin{level: true},
		enter:   &simPin{level: true},
		back:    &simPin{level: true},
		counter: &simCounter{},
		feed:    &simFeed{},
		disp:    newSimDisplay(128, 64),
	}

	enablePin := &simPin{}
	pPin := &simPin{}
	mPin := &simPin{}
	r.motor = newSimMotor(enablePin, pPin, mPin, r.counter)

	smp, err := dev.NewSampler(simStream{r.feed}, simSource{}, make([]uint16, config.CurrentRingSize))
	if err != nil {
		return nil, err
	}
	r.smp = smp

	enc, err := dev.NewEncoder(r.counter, config.EncoderCPR, 0xFFFF)
	if err != nil {
		return nil, err
	}
	enc.SetDetentDivisor(4)

	p, err := panel.New(panel.Config{SplashMS: config.BootSplashMS}, panel.Deps{
		Display: r.disp,
		Motor:   dev.NewMotor(enablePin, pPin, mPin),
		Sampler: smp,
		Encoder: enc,
		Up:      dev.NewButton(r.up),
		Down:    dev.NewButton(r.down),
		Enter:   dev.NewButton(r.enter),
		Back:    dev.NewButton(r.back),
	})
	if err != nil {
		return nil, err
	}
	r.panel = p
	return r, nil
}

func (r *simRig) poll() {
	// front buttons are active low
	r.up.Set(!ebiten.IsKeyPressed(ebiten.KeyArrowUp))
	r.down.Set(!ebiten.IsKeyPressed(ebiten.KeyArrowDown))
	r.enter.Set(!ebiten.IsKeyPressed(ebiten.KeyEnter))
	r.back.Set(!ebiten.IsKeyPressed(ebiten.KeyEscape))

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		r.counter.advance(4)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		r.counter.advance(-4)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		r.motor.load = !r.motor.load
	}
}

// step advances the board one millisecond.
func (r *simRig) step() {
	dev.AdvanceClock(1)
	r.motor.step(r.feed.dst)
	if len(r.feed.dst) > 0 {
		r.smp.OnTransferComplete()
	}
	r.panel.Step()
}

type simGame struct {
	rig *simRig
	img *ebiten.Image
}

func (g *simGame) Update() error {
	g.rig.poll()
	for i := 0; i < simStep; i++ {
		g.rig.step()
	}
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		w, h := g.rig.disp.Size()
		g.img = ebiten.NewImage(int(w), int(h))
	}
	g.img.ReplacePixels(g.rig.disp.pix)
	screen.DrawImage(g.img, nil)
}

func (g *simGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.rig.disp.w), int(g.rig.disp.h)
}
