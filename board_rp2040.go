//go:build rp2040

package main

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/itohio/motmon/config"
	"github.com/itohio/motmon/dev"
	"github.com/itohio/motmon/panel"
)

const displayAddr = 0x3C

// adcFeed stands in for an ADC-to-memory stream on a port that exposes
// none. A goroutine paces conversions into the ring and raises the same
// half and complete hooks a stream engine would.
type adcFeed struct {
	adc  machine.ADC
	dst  []uint16
	pos  int
	stop chan struct{}

	half     func()
	complete func()
}

func (f *adcFeed) bind(half, complete func()) {
	f.half = half
	f.complete = complete
}

func (f *adcFeed) start() {
	f.stop = make(chan struct{})
	go f.run(f.stop)
}

func (f *adcFeed) halt() {
	if f.stop != nil {
		close(f.stop)
		f.stop = nil
	}
}

func (f *adcFeed) run(stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		// Get is left-aligned 16-bit; thresholds work on 12-bit counts.
		f.dst[f.pos] = f.adc.Get() >> 4
		f.pos++
		if f.pos == len(f.dst)/2 && f.half != nil {
			f.half()
		}
		if f.pos == len(f.dst) {
			f.pos = 0
			if f.complete != nil {
				f.complete()
			}
		}
		time.Sleep(50 * time.Microsecond)
	}
}

// The sampler sees the stream engine and the converter as separate
// devices with clashing Configure signatures, so the feed wears one
// face for each.
type feedStream struct{ f *adcFeed }

func (s feedStream) Disable() error {
	s.f.halt()
	return nil
}

func (s feedStream) Configure(dst []uint16) error {
	s.f.dst = dst
	s.f.pos = 0
	return nil
}

func (s feedStream) ClearFlags()                          {}
func (s feedStream) ClearHalfFlag()                       {}
func (s feedStream) ClearCompleteFlag()                   {}
func (s feedStream) EnableInterrupts(half, complete bool) {}
func (s feedStream) Enable()                              {}

type feedSource struct{ f *adcFeed }

func (s feedSource) Configure(cfg dev.SampleConfig) error { return nil }
func (s feedSource) Start()                               { s.f.start() }
func (s feedSource) Stop()                                { s.f.halt() }

// oled adds the periodic re-init the bench units need. Left running for
// hours the controller sometimes locks up; a reconfigure every ten
// seconds clears it.
type oled struct {
	dev      *ssd1306.Device
	cfg      ssd1306.Config
	contrast uint8
	lastInit time.Time
}

func newOLED(dev *ssd1306.Device, cfg ssd1306.Config) *oled {
	return &oled{dev: dev, cfg: cfg, contrast: 0xFF, lastInit: time.Now()}
}

func (o *oled) Size() (int16, int16)              { return o.dev.Size() }
func (o *oled) SetPixel(x, y int16, c color.RGBA) { o.dev.SetPixel(x, y, c) }

func (o *oled) Display() error {
	if time.Since(o.lastInit) > 10*time.Second {
		o.dev.Configure(o.cfg)
		time.Sleep(100 * time.Millisecond)
		o.SetContrast(o.contrast)
		o.lastInit = time.Now()
	}
	// scope trigger brackets the I2C push
	config.TEST.High()
	err := o.dev.Display()
	config.TEST.Low()
	return err
}

// SetContrast talks to the controller directly; the driver exposes no
// brightness control.
func (o *oled) SetContrast(v uint8) {
	o.contrast = v
	machine.I2C0.Tx(displayAddr, []byte{0x00, 0x81, v}, nil)
}

// newBoard wires the panel to the pico pins from the config package.
func newBoard(disp *oled) (panel.Deps, error) {
	config.MotorEnable.Configure(machine.PinConfig{Mode: machine.PinOutput})
	config.MotorP.Configure(machine.PinConfig{Mode: machine.PinOutput})
	config.MotorM.Configure(machine.PinConfig{Mode: machine.PinOutput})

	config.ButtonUp.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.ButtonDown.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.ButtonEnter.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.ButtonReturn.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	config.TEST.Configure(machine.PinConfig{Mode: machine.PinOutput})

	sense := config.CurrentSense
	sense.Configure(machine.ADCConfig{})

	feed := &adcFeed{adc: sense}
	smp, err := dev.NewSampler(feedStream{feed}, feedSource{feed}, make([]uint16, config.CurrentRingSize))
	if err != nil {
		return panel.Deps{}, err
	}
	feed.bind(smp.OnHalfTransfer, smp.OnTransferComplete)

	enc, err := dev.NewEncoder(dev.NewQuadCounter(config.EncoderA, config.EncoderB), config.EncoderCPR, 0xFFFF)
	if err != nil {
		return panel.Deps{}, err
	}
	// EC11 knobs emit four quadrature steps per detent.
	enc.SetDetentDivisor(4)

	return panel.Deps{
		Display:    disp,
		Motor:      dev.NewMotor(config.MotorEnable, config.MotorP, config.MotorM),
		Sampler:    smp,
		Encoder:    enc,
		Up:         dev.NewButton(config.ButtonUp),
		Down:       dev.NewButton(config.ButtonDown),
		Enter:      dev.NewButton(config.ButtonEnter),
		Back:       dev.NewButton(config.ButtonReturn),
		Watchdog:   machine.Watchdog.Update,
		Brightness: disp.SetContrast,
	}, nil
}
