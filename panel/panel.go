// Package panel wires the device layer to the menu engine and runs the
// board's scan loop: current protection, button debounce, encoder
// detents, telemetry and the display, all from a single thread.
package panel

import (
	"tinygo.org/x/tinyterm"

	"github.com/itohio/motmon/dev"
	"github.com/itohio/motmon/ui"
)

// Config carries the loop cadences and the sense calibration. Zero
// values pick the board defaults.
type Config struct {
	Width  int16
	Height int16

	TickHz      uint32 // menu input rate
	ScanMS      uint32 // button debounce sampling period
	TelemetryMS uint32
	RenderMS    uint32
	SplashMS    uint32 // boot mark hold, zero skips it

	Threshold        uint16 // overcurrent cut, ADC counts
	ZeroCount        uint16 // sense amplifier mid-scale
	MicroampPerCount uint16
}

func (c *Config) setDefaults() {
	if c.Width == 0 {
		c.Width = 128
	}
	if c.Height == 0 {
		c.Height = 64
	}
	if c.TickHz == 0 {
		c.TickHz = 50
	}
	if c.ScanMS == 0 {
		c.ScanMS = 5
	}
	if c.TelemetryMS == 0 {
		c.TelemetryMS = 100
	}
	if c.RenderMS == 0 {
		c.RenderMS = 50
	}
	if c.Threshold == 0 {
		c.Threshold = 3400
	}
	if c.ZeroCount == 0 {
		c.ZeroCount = 2048
	}
	if c.MicroampPerCount == 0 {
		c.MicroampPerCount = 2150
	}
}

// Deps are the device-layer collaborators. Display, Watchdog and
// Brightness are optional; everything else is required.
type Deps struct {
	Display ui.Displayer
	Motor   *dev.Motor
	Sampler *dev.Sampler
	Encoder *dev.Encoder

	Up    *dev.Button
	Down  *dev.Button
	Enter *dev.Button
	Back  *dev.Button

	Watchdog   func()
	Brightness func(uint8)
}

// Panel is the orchestrator. All methods run on the loop thread.
type Panel struct {
	cfg  Config
	deps Deps

	eng   *ui.Engine
	guard *dev.CurrentGuard
	btns  *dev.Manager
	meter dev.CurrentMeter

	teleTimer   dev.Timer
	uiTimer     dev.Timer
	renderTimer dev.Timer

	trace   traceRing
	term    *tinyterm.Terminal
	console bool
	splash  splash

	// menu bindings, edited through value windows and toggles
	limit      int32
	bright     int32
	lastBright int32
	calGain    float32
	light      bool
	showFPS    bool

	rpm int32
}

func New(cfg Config, deps Deps) (*Panel, error) {
	cfg.setDefaults()
	if deps.Motor == nil || deps.Sampler == nil || deps.Encoder == nil {
		return nil, dev.ErrInvalidArgument
	}
	if deps.Up == nil || deps.Down == nil || deps.Enter == nil || deps.Back == nil {
		return nil, dev.ErrInvalidArgument
	}

	btns, err := dev.NewManager(cfg.ScanMS, deps.Up, deps.Down, deps.Enter, deps.Back)
	if err != nil {
		return nil, err
	}

	p := &Panel{
		cfg:        cfg,
		deps:       deps,
		btns:       btns,
		guard:      dev.NewCurrentGuard(deps.Sampler, deps.Motor, cfg.Threshold),
		meter:      dev.NewCurrentMeter(cfg.ZeroCount, cfg.MicroampPerCount),
		limit:      int32(cfg.Threshold),
		bright:     255,
		lastBright: 255,
		calGain:    1,
	}

	uiPeriod := 1000 / cfg.TickHz
	if uiPeriod == 0 {
		uiPeriod = 1
	}
	p.teleTimer = dev.NewTimer(cfg.TelemetryMS, true)
	p.uiTimer = dev.NewTimer(uiPeriod, true)
	p.renderTimer = dev.NewTimer(cfg.RenderMS, true)

	p.eng = ui.NewEngine(ui.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		TickHz: cfg.TickHz,
	}, deps.Display, p.buildPages(), pageRoot, deps.Encoder)
	p.eng.ShowFPS = &p.showFPS
	p.eng.Light = &p.light

	deps.Motor.SetKillCallback(func() {
		p.tracef("cut avg %d", p.guard.Average())
	})
	return p, nil
}

// Start arms the sampler, boots the bridge and starts every timer.
func (p *Panel) Start() error {
	if err := p.deps.Sampler.Configure(); err != nil {
		return err
	}
	p.deps.Motor.Configure()
	p.deps.Encoder.Start()
	p.btns.Start()
	p.guard.Start()
	p.teleTimer.Start()
	p.uiTimer.Start()
	p.renderTimer.Start()
	p.splash.begin(p.cfg.SplashMS, p.cfg.Height)
	p.tracef("motmon up, limit %d", p.limit)
	return nil
}

// Run starts the panel and spins the scan loop until stop closes.
func (p *Panel) Run(stop <-chan struct{}) error {
	if err := p.Start(); err != nil {
		return err
	}
	for {
		select {
		case <-stop:
			p.deps.Motor.Stop()
			return nil
		default:
		}
		p.Step()
		dev.Sleep(1)
	}
}

// Step runs one scan pass. Protection is polled every pass; the slower
// jobs gate themselves on their timers.
func (p *Panel) Step() {
	p.btns.Scan()
	p.guard.Poll()
	if p.teleTimer.Expired() {
		p.telemetry()
	}
	if p.uiTimer.Expired() {
		p.tick()
	}
	if p.renderTimer.Expired() {
		p.render()
	}
}

func (p *Panel) tick() {
	if p.splash.active() {
		// nothing fires on menu entry from a press during the hold
		p.deps.Encoder.TakeDelta()
		p.deps.Up.TakePress()
		p.deps.Down.TakePress()
		p.deps.Enter.TakePress()
		p.deps.Back.TakePress()
		return
	}
	if p.console {
		p.consoleTick()
		return
	}
	p.deps.Encoder.Update()
	in := ui.Input{
		Up:      ui.Key{Pressed: p.deps.Up.TakePress(), Held: p.deps.Up.Pressed()},
		Down:    ui.Key{Pressed: p.deps.Down.TakePress(), Held: p.deps.Down.Pressed()},
		Enter:   ui.Key{Pressed: p.deps.Enter.TakePress(), Held: p.deps.Enter.Pressed()},
		Back:    ui.Key{Pressed: p.deps.Back.TakePress(), Held: p.deps.Back.Pressed()},
		Encoder: p.deps.Encoder.TakeDelta(),
	}
	p.traceKeys(in)
	if in.Back.Pressed && p.eng.Depth() == 0 && !p.eng.Busy() && !p.eng.WindowOpen() {
		// back on the root screen is the panic button
		p.deps.Motor.Kill()
		in.Back = ui.Key{}
	}
	p.eng.Tick(in)
}

func (p *Panel) traceKeys(in ui.Input) {
	if !in.Up.Pressed && !in.Down.Pressed && !in.Enter.Pressed && !in.Back.Pressed {
		return
	}
	s := "btn"
	if in.Up.Pressed {
		s += " up"
	}
	if in.Down.Pressed {
		s += " down"
	}
	if in.Enter.Pressed {
		s += " enter"
	}
	if in.Back.Pressed {
		s += " back"
	}
	p.tracef(s)
}

// render owns everything frame-paced: pending menu actions, settings
// that windows may have edited, the frame itself and the watchdog.
func (p *Panel) render() {
	if p.splash.active() {
		p.splash.render(p.eng.Frame(), p.deps.Display)
		if p.deps.Watchdog != nil {
			p.deps.Watchdog()
		}
		return
	}
	if act, ok := p.eng.TakeAction(); ok {
		p.runAction(act)
		p.eng.FinishAction()
	}
	p.applySettings()
	if p.console {
		p.renderConsole()
	} else {
		p.eng.Render()
	}
	if p.deps.Watchdog != nil {
		p.deps.Watchdog()
	}
}

func (p *Panel) applySettings() {
	if p.limit > 0 && uint16(p.limit) != p.guard.Threshold() {
		p.guard.SetThreshold(uint16(p.limit))
		p.tracef("limit %d", p.limit)
	}
	if p.bright != p.lastBright {
		p.lastBright = p.bright
		if p.deps.Brightness != nil {
			p.deps.Brightness(uint8(p.bright))
		}
	}
}

func (p *Panel) telemetry() {
	now := dev.Now()
	p.rpm = p.deps.Encoder.RPM(now)
	ma := p.meter.Milliamps(p.guard.Average()) * p.calGain
	p.tracef("t %d pos %d rpm %d mA %d", now, p.deps.Encoder.Total(), p.rpm, int32(ma))
}
