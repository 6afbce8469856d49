package panel

import (
	"fmt"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const traceLines = 32

// traceRing keeps the most recent trace lines for the on-device console.
type traceRing struct {
	lines [traceLines]string
	head  int
	count int
}

func (r *traceRing) push(s string) {
	r.lines[r.head] = s
	r.head = (r.head + 1) % traceLines
	if r.count < traceLines {
		r.count++
	}
}

// tail walks the buffered lines oldest first.
func (r *traceRing) tail(fn func(string)) {
	start := r.head - r.count
	if start < 0 {
		start += traceLines
	}
	for i := 0; i < r.count; i++ {
		fn(r.lines[(start+i)%traceLines])
	}
}

// tracef emits one trace record: to the serial trace, to the ring, and
// to the console terminal when it is up.
func (p *Panel) tracef(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	println(line)
	p.trace.push(line)
	if p.term != nil {
		fmt.Fprintf(p.term, "%s\n", line)
	}
}

// enterConsole replaces the menu with a terminal over the same frame and
// replays the buffered trace tail into it.
func (p *Panel) enterConsole() {
	f := p.eng.Frame()
	f.ClearBuffer()
	term := tinyterm.NewTerminal(f)
	term.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        10,
		FontOffset:        8,
		UseSoftwareScroll: true,
	})
	p.term = term
	p.console = true
	p.trace.tail(func(s string) {
		fmt.Fprintf(term, "%s\n", s)
	})
}

func (p *Panel) leaveConsole() {
	p.console = false
	p.term = nil
}

// consoleTick swallows menu input while the console owns the screen.
// Back is the only way out.
func (p *Panel) consoleTick() {
	p.deps.Encoder.TakeDelta()
	p.deps.Up.TakePress()
	p.deps.Down.TakePress()
	p.deps.Enter.TakePress()
	if p.deps.Back.TakePress() {
		p.leaveConsole()
	}
}

// renderConsole pushes the terminal's frame. The terminal itself draws
// incrementally as trace lines arrive.
func (p *Panel) renderConsole() {
	if p.deps.Display == nil {
		return
	}
	p.eng.Frame().Flush(p.deps.Display)
}
