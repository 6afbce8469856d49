package panel

import (
	"strings"
	"testing"

	"github.com/itohio/motmon/dev"
)

type fakePin struct {
	level bool
}

func (p *fakePin) Get() bool { return p.level }

type latchPin struct {
	high bool
}

func (p *latchPin) High()      { p.high = true }
func (p *latchPin) Low()       { p.high = false }
func (p *latchPin) Set(v bool) { p.high = v }
func (p *latchPin) Get() bool  { return p.high }

type nopStream struct{}

func (nopStream) Disable() error               { return nil }
func (nopStream) ClearFlags()                  {}
func (nopStream) ClearHalfFlag()               {}
func (nopStream) ClearCompleteFlag()           {}
func (nopStream) Configure(dst []uint16) error { return nil }
func (nopStream) EnableInterrupts(h, c bool)   {}
func (nopStream) Enable()                      {}

type nopSource struct{}

func (nopSource) Configure(cfg dev.SampleConfig) error { return nil }
func (nopSource) Start()                               {}
func (nopSource) Stop()                                {}

type scriptCounter struct {
	count uint16
	dir   int8
}

func (c *scriptCounter) Start()          {}
func (c *scriptCounter) Stop()           {}
func (c *scriptCounter) Reset()          { c.count = 0 }
func (c *scriptCounter) Count() uint16   { return c.count }
func (c *scriptCounter) Direction() int8 { return c.dir }

type rig struct {
	up, down, enter, back *fakePin
	counter               *scriptCounter
	enablePin, pPin, mPin *latchPin
	ring                  []uint16
	smp                   *dev.Sampler
	feeds                 int
}

func newTestPanel(t *testing.T) (*Panel, *rig) {
	t.Helper()
	return newTestPanelCfg(t, Config{})
}

func newTestPanelCfg(t *testing.T, cfg Config) (*Panel, *rig) {
	t.Helper()
	dev.SetClock(0)
	r := &rig{
		up:        &fakePin{level: true},
		down:      &fakePin{level: true},
		enter:     &fakePin{level: true},
		back:      &fakePin{level: true},
		counter:   &scriptCounter{},
		enablePin: &latchPin{},
		pPin:      &latchPin{},
		mPin:      &latchPin{},
		ring:      make([]uint16, 200),
	}
	smp, err := dev.NewSampler(nopStream{}, nopSource{}, r.ring)
	if err != nil {
		t.Fatal(err)
	}
	r.smp = smp
	enc, err := dev.NewEncoder(r.counter, 1000, 0xFFFF)
	if err != nil {
		t.Fatal(err)
	}
	p, err := New(cfg, Deps{
		Motor:    dev.NewMotor(r.enablePin, r.pPin, r.mPin),
		Sampler:  smp,
		Encoder:  enc,
		Up:       dev.NewButton(r.up),
		Down:     dev.NewButton(r.down),
		Enter:    dev.NewButton(r.enter),
		Back:     dev.NewButton(r.back),
		Watchdog: func() { r.feeds++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	return p, r
}

// step advances the manual clock a millisecond at a time, running one
// scan pass per tick like the real loop.
func (r *rig) step(p *Panel, ms int) {
	for i := 0; i < ms; i++ {
		dev.AdvanceClock(1)
		p.Step()
	}
}

func traceContains(p *Panel, substr string) bool {
	found := false
	p.trace.tail(func(s string) {
		if strings.Contains(s, substr) {
			found = true
		}
	})
	return found
}

func TestNewRejectsMissingDeps(t *testing.T) {
	if _, err := New(Config{}, Deps{}); err != dev.ErrInvalidArgument {
		t.Fatalf("err = %v, want %v", err, dev.ErrInvalidArgument)
	}
}

func TestPanelBootsBridgeEnabled(t *testing.T) {
	p, r := newTestPanel(t)
	if !r.enablePin.Get() || !r.pPin.Get() || r.mPin.Get() {
		t.Fatalf("boot pins enable=%v p=%v m=%v, want enabled forward",
			r.enablePin.Get(), r.pPin.Get(), r.mPin.Get())
	}
	if !p.deps.Sampler.Configured() {
		t.Fatal("sampler not armed at boot")
	}
}

func TestPanelCutsMotorOnOvercurrent(t *testing.T) {
	p, r := newTestPanel(t)
	for i := range r.ring {
		r.ring[i] = 3500
	}
	r.smp.OnTransferComplete()
	r.step(p, 2)
	if r.enablePin.Get() {
		t.Fatal("overcurrent batch did not cut the bridge")
	}
	if !p.deps.Motor.Killed() || !p.guard.Tripped() {
		t.Fatalf("killed=%v tripped=%v, want both", p.deps.Motor.Killed(), p.guard.Tripped())
	}
	if !traceContains(p, "cut avg 3500") {
		t.Error("cut-off left no trace record")
	}
}

func TestPanelKeepsRunningBelowLimit(t *testing.T) {
	p, r := newTestPanel(t)
	for i := range r.ring {
		r.ring[i] = 3300
	}
	r.smp.OnTransferComplete()
	r.step(p, 2)
	if !r.enablePin.Get() || p.guard.Tripped() {
		t.Fatalf("clean batch tripped the guard, enable=%v", r.enablePin.Get())
	}
}

func TestPanelButtonDrivesMenu(t *testing.T) {
	p, r := newTestPanel(t)
	r.down.level = false
	r.step(p, 25)
	r.down.level = true
	r.step(p, 25)
	if got := p.eng.Page().Active(); got != 1 {
		t.Fatalf("root tile active = %d, want 1", got)
	}
	if !traceContains(p, "btn down") {
		t.Error("press left no trace record")
	}
}

func TestPanelEncoderMovesTiles(t *testing.T) {
	p, r := newTestPanel(t)
	r.counter.count = 2
	r.step(p, 20)
	if got := p.eng.Page().Active(); got != 2 {
		t.Fatalf("root tile active = %d, want 2", got)
	}
}

func TestPanelRootBackIsEmergencyStop(t *testing.T) {
	p, r := newTestPanel(t)
	r.back.level = false
	r.step(p, 25)
	if !p.deps.Motor.Killed() {
		t.Fatal("back on the root screen did not kill the bridge")
	}
	if r.enablePin.Get() || r.pPin.Get() || r.mPin.Get() {
		t.Fatal("kill left a bridge pin high")
	}
}

func TestPanelMenuActionTogglesMotor(t *testing.T) {
	p, r := newTestPanel(t)
	press := func(pin *fakePin) {
		pin.level = false
		r.step(p, 25)
		pin.level = true
		r.step(p, 25)
	}

	press(r.enter)
	r.step(p, 150) // fade into the motor page
	if p.eng.PageID() != pageMotor {
		t.Fatalf("page = %d, want motor", p.eng.PageID())
	}

	press(r.enter) // run / stop
	r.step(p, 60)  // action dispatch happens on the render cadence
	if r.enablePin.Get() {
		t.Fatal("toggle did not stop the running bridge")
	}
	if !traceContains(p, "run false") {
		t.Error("toggle left no trace record")
	}
}

func TestPanelClearTripRestoresBridge(t *testing.T) {
	p, r := newTestPanel(t)
	for i := range r.ring {
		r.ring[i] = 3600
	}
	r.smp.OnTransferComplete()
	r.step(p, 2)
	if !p.deps.Motor.Killed() {
		t.Fatal("trip setup failed")
	}

	p.runAction(actClearTrip)
	if p.guard.Tripped() {
		t.Error("trip flag survived the clear")
	}
	if !r.enablePin.Get() || !r.pPin.Get() || r.mPin.Get() {
		t.Fatalf("re-enable pins enable=%v p=%v m=%v, want enabled forward",
			r.enablePin.Get(), r.pPin.Get(), r.mPin.Get())
	}
}

func TestPanelTelemetryComputesRPM(t *testing.T) {
	p, r := newTestPanel(t)
	r.step(p, 150) // first record seeds the estimator
	r.counter.count = 500
	r.step(p, 100)
	if p.rpm != 300 {
		t.Fatalf("rpm = %d, want 300", p.rpm)
	}
	if !traceContains(p, "rpm 300") {
		t.Error("telemetry left no trace record")
	}
}

func TestPanelConsoleSwallowsInput(t *testing.T) {
	p, r := newTestPanel(t)
	p.runAction(actConsole)
	if !p.console {
		t.Fatal("console action did not enter the console")
	}
	p.tracef("hello %d", 42)

	r.back.level = false
	r.step(p, 25)
	if p.console {
		t.Fatal("back did not leave the console")
	}
	if p.deps.Motor.Killed() {
		t.Fatal("console back leaked into the emergency stop")
	}
}

func TestPanelSplashSwallowsBootInput(t *testing.T) {
	p, r := newTestPanelCfg(t, Config{SplashMS: 300})
	r.down.level = false
	r.step(p, 25)
	r.down.level = true
	r.step(p, 25)
	if !p.splash.active() {
		t.Fatal("splash retired before its hold ran out")
	}
	if got := p.eng.Page().Active(); got != 0 {
		t.Fatalf("press during the splash moved the menu, active = %d", got)
	}

	r.step(p, 300)
	if p.splash.active() {
		t.Fatal("splash still up after its hold")
	}
	r.down.level = false
	r.step(p, 25)
	r.down.level = true
	r.step(p, 25)
	if got := p.eng.Page().Active(); got != 1 {
		t.Fatalf("root tile active = %d, want 1", got)
	}
}

func TestPanelLimitEditApplies(t *testing.T) {
	p, r := newTestPanel(t)
	p.limit = 2000
	r.step(p, 60)
	if got := p.guard.Threshold(); got != 2000 {
		t.Fatalf("threshold = %d, want 2000", got)
	}
	if !traceContains(p, "limit 2000") {
		t.Error("limit change left no trace record")
	}
}

func TestPanelBrightnessEditApplies(t *testing.T) {
	dev.SetClock(0)
	r := &rig{
		up:        &fakePin{level: true},
		down:      &fakePin{level: true},
		enter:     &fakePin{level: true},
		back:      &fakePin{level: true},
		counter:   &scriptCounter{},
		enablePin: &latchPin{},
		pPin:      &latchPin{},
		mPin:      &latchPin{},
		ring:      make([]uint16, 200),
	}
	smp, _ := dev.NewSampler(nopStream{}, nopSource{}, r.ring)
	enc, _ := dev.NewEncoder(r.counter, 1000, 0xFFFF)
	var got []uint8
	p, err := New(Config{}, Deps{
		Motor:      dev.NewMotor(r.enablePin, r.pPin, r.mPin),
		Sampler:    smp,
		Encoder:    enc,
		Up:         dev.NewButton(r.up),
		Down:       dev.NewButton(r.down),
		Enter:      dev.NewButton(r.enter),
		Back:       dev.NewButton(r.back),
		Brightness: func(v uint8) { got = append(got, v) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}

	p.bright = 60
	r.step(p, 60)
	if len(got) != 1 || got[0] != 60 {
		t.Fatalf("brightness calls = %v, want [60]", got)
	}
	r.step(p, 60)
	if len(got) != 1 {
		t.Fatalf("unchanged brightness re-applied: %v", got)
	}
}

func TestPanelWatchdogFedFromRender(t *testing.T) {
	p, r := newTestPanel(t)
	r.step(p, 120)
	if r.feeds < 2 {
		t.Fatalf("watchdog feeds = %d, want at least 2", r.feeds)
	}
}

func TestPanelRunStopsOnSignal(t *testing.T) {
	p, r := newTestPanel(t)
	stop := make(chan struct{})
	close(stop)
	if err := p.Run(stop); err != nil {
		t.Fatal(err)
	}
	if r.enablePin.Get() {
		t.Fatal("run did not park the bridge on shutdown")
	}
}
