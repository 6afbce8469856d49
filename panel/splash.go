package panel

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"github.com/itohio/motmon/dev"
	"github.com/itohio/motmon/ui"
)

// splash slides the boot mark down to the screen center and holds it
// there for a moment. Protection keeps polling underneath; menu input
// is swallowed until the hold runs out.
type splash struct {
	start uint32
	ms    uint32
	y     ui.Dist
	tick  uint8
	on    bool
}

func (s *splash) begin(ms uint32, h int16) {
	s.on = ms > 0
	if !s.on {
		return
	}
	s.start = dev.Now()
	s.ms = ms
	s.tick = 0
	s.y = ui.Dist{Current: -16, Target: float32(h-16) / 2}
}

// active retires the splash once its time is up.
func (s *splash) active() bool {
	if !s.on {
		return false
	}
	if dev.Elapsed(s.start) >= s.ms {
		s.on = false
		return false
	}
	return true
}

// render draws one splash frame: the rotor spinning beside the device
// name, sliding in from above the screen.
func (s *splash) render(f *ui.Frame, d ui.Displayer) {
	s.y.Step(ui.Unlinear, 12)
	s.tick++
	f.ClearBuffer()
	w, _ := f.Size()
	font := &freemono.Regular9pt7b
	name := "motmon"
	tw, _ := tinyfont.LineWidth(font, name)
	x := (w - 16 - 6 - int16(tw)) / 2
	y := int16(s.y.Current)
	f.DrawBitmap(x, y, 16, 16, rotorFrames[(s.tick/3)%4])
	tinyfont.WriteLine(f, font, x+22, y+13, name, white)
	if d != nil {
		f.Flush(d)
	}
}
