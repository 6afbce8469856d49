//go:build rp2040

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/itohio/motmon/config"
	"github.com/itohio/motmon/panel"
)

//go:generate tinygo flash -target=pico

func main() {
	machine.InitADC()

	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	// the delay is needed for display start from a cold reboot, not sure why
	time.Sleep(time.Second)
	display := ssd1306.NewI2C(machine.I2C0)
	cfg := ssd1306.Config{Width: 128, Height: 64, Address: displayAddr, VccState: ssd1306.SWITCHCAPVCC}
	display.Configure(cfg)
	display.ClearDisplay()

	deps, err := newBoard(newOLED(&display, cfg))
	if err != nil {
		println("board:", err.Error())
		panic(err)
	}

	p, err := panel.New(panel.Config{
		TickHz:           config.UITickHz,
		SplashMS:         config.BootSplashMS,
		Threshold:        config.CurrentThreshold,
		ZeroCount:        config.SenseZeroCount,
		MicroampPerCount: config.SenseMicroampPerCount,
	}, deps)
	if err != nil {
		println("panel:", err.Error())
		panic(err)
	}

	machine.Watchdog.Configure(machine.WatchdogConfig{
		TimeoutMillis: 3000,
	})
	machine.Watchdog.Start()

	if err := p.Run(nil); err != nil {
		println("run:", err.Error())
		panic(err)
	}
}
