package panel

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/itohio/motmon/ui"
)

// Menu actions dispatched from the render slot.
const (
	actToggleRun ui.Action = iota + 1
	actForward
	actReverse
	actEmergencyStop
	actClearTrip
	actZeroPosition
	actConsole
	actBack
)

// Page arena indices.
const (
	pageRoot ui.PageID = iota
	pageMotor
	pageMonitor
	pageSettings
	pageAbout
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func (p *Panel) buildPages() []ui.Page {
	font := &proggy.TinySZ8pt7b
	titleFont := &freemono.Regular9pt7b

	limitWin := &ui.WindowStyle{
		W: 96, H: 30,
		Font: font, FontH: 10,
		TopMargin: 4, SideMargin: 5,
		Shape:          ui.WindowRounded,
		ContinueTimeMS: 4000,
		Prob:           ui.ProgressStyle{SideMargin: 5, BottomMargin: 4, Height: 7},
	}
	brightWin := &ui.WindowStyle{
		W: 80, H: 28,
		Font: font, FontH: 10,
		TopMargin: 3, SideMargin: 4,
		Shape:          ui.WindowRounded,
		ContinueTimeMS: 4000,
		Prob:           ui.ProgressStyle{SideMargin: 4, BottomMargin: 4, Height: 6},
	}
	calWin := &ui.WindowStyle{
		W: 88, H: 28,
		Font: font, FontH: 10,
		TopMargin: 3, SideMargin: 4,
		Shape:          ui.WindowRect,
		ContinueTimeMS: 4000,
		Prob:           ui.ProgressStyle{SideMargin: 4, BottomMargin: 4, Height: 6},
	}

	root := ui.Page{
		Type: ui.Tiles,
		Items: []ui.Item{
			ui.Submenu("motor", pageMotor).WithGif(rotorFrames),
			ui.Submenu("monitor", pageMonitor).WithIcon(iconWave),
			ui.Submenu("settings", pageSettings).WithIcon(iconGear),
			ui.ActionItem("console", actConsole).WithIcon(iconTerm),
			ui.Submenu("about", pageAbout).WithIcon(iconInfo),
		},
		Font: titleFont, FontH: 12,
		Mode: ui.PIDCurve, Speed: 30,
		Area:  ui.Box{X: 0, Y: 0, W: p.cfg.Width, H: p.cfg.Height},
		Start: ui.XY{X: (p.cfg.Width - 16) / 2, Y: 0},
		TileW: 16, TileH: 16, TileGap: 12,
	}

	motor := ui.Page{
		Type: ui.List,
		Items: []ui.Item{
			ui.ActionItem("run / stop", actToggleRun),
			ui.ActionItem("forward", actForward),
			ui.ActionItem("reverse", actReverse),
			ui.ActionItem("EMERGENCY STOP", actEmergencyStop),
			ui.ActionItem("clear trip", actClearTrip),
			ui.ActionItem("zero position", actZeroPosition),
			ui.ActionItem("back", actBack),
		},
		Font: font, FontH: 10, LineStep: 4,
		Cursor: ui.CursorSolid,
		Mode:   ui.Unlinear, Speed: 40,
		Area:  ui.Box{X: 0, Y: 0, W: p.cfg.Width, H: p.cfg.Height - 2},
		Start: ui.XY{X: 4, Y: 2},
	}

	monitor := ui.Page{
		Type: ui.List,
		Items: []ui.Item{
			ui.IntItem("limit", &ui.IntBox{
				Val: &p.limit, Min: 500, Max: 4000, Step: 50, Win: limitWin,
			}),
			ui.ActionItem("back", actBack),
		},
		Font: font, FontH: 10, LineStep: 4,
		Cursor: ui.CursorRounded,
		Mode:   ui.Unlinear, Speed: 40,
		Area:  ui.Box{X: 0, Y: 0, W: p.cfg.Width, H: 38},
		Start: ui.XY{X: 4, Y: 2},
		Aux:   p.drawMonitor,
	}

	settings := ui.Page{
		Type: ui.List,
		Items: []ui.Item{
			ui.IntItem("brightness", &ui.IntBox{
				Val: &p.bright, Min: 5, Max: 255, Step: 5, Win: brightWin,
			}),
			ui.FloatItem("sense cal", &ui.FloatBox{
				Val: &p.calGain, Min: 0.5, Max: 2, Step: 0.05, Prec: 2, Win: calWin,
			}),
			ui.Toggle("light", &p.light),
			ui.Toggle("fps", &p.showFPS),
			ui.ActionItem("back", actBack),
		},
		Font: font, FontH: 10, LineStep: 4,
		Cursor: ui.CursorRounded,
		Mode:   ui.Unlinear, Speed: 40,
		Area:  ui.Box{X: 0, Y: 0, W: p.cfg.Width, H: p.cfg.Height - 2},
		Start: ui.XY{X: 4, Y: 2},
	}

	about := ui.Page{
		Type: ui.List,
		Items: []ui.Item{
			ui.Label("motmon r1"),
			ui.Label("rp2040 + ssd1306 128x64"),
			ui.Label("quadrature encoder + acs712 current sense"),
			ui.ActionItem("back", actBack),
		},
		Font: font, FontH: 10, LineStep: 4,
		Cursor:     ui.CursorGutter,
		DrawPrefix: true,
		Mode:       ui.Unlinear, Speed: 40,
		Area:  ui.Box{X: 0, Y: 0, W: p.cfg.Width, H: p.cfg.Height - 2},
		Start: ui.XY{X: 4, Y: 2},
	}

	return []ui.Page{root, motor, monitor, settings, about}
}

// drawMonitor paints the live block under the monitor list.
func (p *Panel) drawMonitor(e *ui.Engine, f *ui.Frame) {
	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(f, font, 4, 50,
		fmt.Sprintf("rpm %d  pos %d", p.rpm, p.deps.Encoder.Total()), white)
	ma := p.meter.Milliamps(p.guard.Average()) * p.calGain
	line := fmt.Sprintf("%d mA  avg %d", int32(ma), p.guard.Average())
	if p.guard.Tripped() {
		line += "  TRIP"
	}
	tinyfont.WriteLine(f, font, 4, 61, line, white)
}

func (p *Panel) runAction(act ui.Action) {
	switch act {
	case actToggleRun:
		if p.deps.Motor.Killed() {
			p.tracef("blocked: tripped")
			return
		}
		p.deps.Motor.Toggle()
		p.tracef("run %v", p.deps.Motor.Running())
	case actForward:
		p.deps.Motor.SetDirection(true)
		p.tracef("dir fwd")
	case actReverse:
		p.deps.Motor.SetDirection(false)
		p.tracef("dir rev")
	case actEmergencyStop:
		p.deps.Motor.Kill()
	case actClearTrip:
		p.guard.ClearTrip()
		p.deps.Motor.Run()
		p.tracef("trip cleared")
	case actZeroPosition:
		p.deps.Encoder.Reset()
		p.tracef("pos zeroed")
	case actConsole:
		p.enterConsole()
	case actBack:
		p.eng.Back()
	}
}
