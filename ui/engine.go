package ui

// EncoderGate pauses the rotary input while a transition or a running
// action owns the screen.
type EncoderGate interface {
	Disable()
	Enable()
}

// Key is one input key's tick snapshot: a latched press edge plus the
// committed held level.
type Key struct {
	Pressed bool
	Held    bool
}

// Input is one UI tick's worth of input.
type Input struct {
	Up      Key
	Down    Key
	Enter   Key
	Back    Key
	Encoder int
}

// Config sizes the engine and its timing. Times are in milliseconds and
// divided by the tick rate, so any rate works as long as the owner ticks
// at it.
type Config struct {
	Width  int16
	Height int16
	TickHz uint32

	PressTimeMS         uint32 // hold time before autorepeat starts
	ContinuePressTimeMS uint32 // additional hold before the fast tier
	PressRepeatTicks    uint32 // ticks between repeats, first tier
	ContinueRepeatTicks uint32 // ticks between repeats, fast tier
	FadeStepMS          uint32 // dwell of one darkening level
	LineSlipPx          float32
	GifFrameDiv         uint32 // render frames per tile animation frame
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
	if c.PressTimeMS == 0 {
		c.PressTimeMS = 600
	}
	if c.ContinuePressTimeMS == 0 {
		c.ContinuePressTimeMS = 2000
	}
	if c.PressRepeatTicks == 0 {
		c.PressRepeatTicks = 6
	}
	if c.ContinueRepeatTicks == 0 {
		c.ContinueRepeatTicks = 2
	}
	if c.FadeStepMS == 0 {
		c.FadeStepMS = 20
	}
	if c.LineSlipPx == 0 {
		c.LineSlipPx = 1
	}
	if c.GifFrameDiv == 0 {
		c.GifFrameDiv = 3
	}
}

type nopGate struct{}

func (nopGate) Disable() {}
func (nopGate) Enable()  {}

// Engine owns all menu state: the page arena, the navigation stack, the
// animated scalars, the modal window and the input bookkeeping. Nothing
// lives in package globals; ticking and rendering are driven by the
// orchestrator from a single loop.
type Engine struct {
	cfg   Config
	frame *Frame
	sink  Displayer
	pages []Page
	cur   PageID
	stack []PageID

	start     Point
	lineStep  Dist
	cursor    Rect
	scroll    Dist
	frameRect Rect

	fadeStage int8
	fadeTicks uint32
	fadeTo    PageID
	fadePop   bool

	win window

	upHold   uint32
	downHold uint32

	pending    Action
	hasPending bool
	busyAction bool

	gate EncoderGate

	ticks     uint32
	frames    uint32
	fpsFrames uint32
	fps       uint32

	// ShowFPS and Light are optional bindings shared with radio items.
	// Light inverts the flushed polarity.
	ShowFPS *bool
	Light   *bool
}

func NewEngine(cfg Config, sink Displayer, pages []Page, root PageID, gate EncoderGate) *Engine {
	cfg.setDefaults()
	if len(pages) == 0 {
		panic("empty page arena")
	}
	if root < 0 || int(root) >= len(pages) {
		panic("root page out of range")
	}
	for i := range pages {
		for j := range pages[i].Items {
			it := &pages[i].Items[j]
			if it.Kind == KindSubmenu && (it.Sub < 0 || int(it.Sub) >= len(pages)) {
				panic("submenu target out of range")
			}
		}
	}
	if gate == nil {
		gate = nopGate{}
	}
	e := &Engine{
		cfg:   cfg,
		frame: NewFrame(cfg.Width, cfg.Height),
		sink:  sink,
		pages: pages,
		cur:   root,
		stack: make([]PageID, 0, 8),
		gate:  gate,
	}
	e.initPage(true)
	return e
}

// Frame exposes the shadow buffer for splash screens and console pages
// drawn outside the engine.
func (e *Engine) Frame() *Frame { return e.frame }

// Page returns the current page.
func (e *Engine) Page() *Page { return &e.pages[e.cur] }

// PageID returns the current page's arena index.
func (e *Engine) PageID() PageID { return e.cur }

// Depth is the navigation stack depth; 0 means the root page.
func (e *Engine) Depth() int { return len(e.stack) }

// Busy reports whether a transition, window or action currently owns the
// foreground.
func (e *Engine) Busy() bool {
	return e.fadeStage > 0 || e.win.active || e.busyAction
}

// WindowOpen reports whether the modal window is visible.
func (e *Engine) WindowOpen() bool { return e.win.active }

// FadeLevel returns the current darkening level, 0 when no transition is
// running.
func (e *Engine) FadeLevel() int { return int(e.fadeStage) }

// StartTarget returns the page start-point target, for tests and aux
// draws.
func (e *Engine) StartTarget() (float32, float32) {
	return e.start.X.Target, e.start.Y.Target
}

// CursorRect returns the animated cursor rectangle.
func (e *Engine) CursorRect() *Rect { return &e.cursor }

// FrameRect returns the animated page border rectangle.
func (e *Engine) FrameRect() *Rect { return &e.frameRect }

// TakeAction consumes a pending action raised by an action item.
func (e *Engine) TakeAction() (Action, bool) {
	if !e.hasPending {
		return ActionNone, false
	}
	e.hasPending = false
	return e.pending, true
}

// FinishAction releases the foreground hold a running action owns. The
// gate stays closed if the action kicked off a transition.
func (e *Engine) FinishAction() {
	e.busyAction = false
	if e.fadeStage == 0 {
		e.gate.Enable()
	}
}

// Tick advances input handling and transition timing by one UI tick.
func (e *Engine) Tick(in Input) {
	e.ticks++
	if e.ticks%e.cfg.TickHz == 0 {
		e.fps = e.frames - e.fpsFrames
		e.fpsFrames = e.frames
	}

	if e.win.active {
		e.tickWindow(in)
		return
	}
	if e.fadeStage > 0 {
		e.tickFade()
		return
	}
	if e.busyAction {
		return
	}
	e.tickKeys(in)
}

func (e *Engine) ticksFor(ms uint32) uint32 {
	t := ms * e.cfg.TickHz / 1000
	if t == 0 {
		t = 1
	}
	return t
}

// repeat implements the two-tier long-press: one move on the press edge,
// slow autorepeat after PressTime, fast autorepeat after an additional
// ContinuePressTime.
func (e *Engine) repeat(hold *uint32, k Key) int {
	if !k.Held {
		*hold = 0
		if k.Pressed {
			return 1
		}
		return 0
	}
	*hold++
	if k.Pressed {
		return 1
	}
	press := e.ticksFor(e.cfg.PressTimeMS)
	cont := press + e.ticksFor(e.cfg.ContinuePressTimeMS)
	switch {
	case *hold >= cont:
		if (*hold-cont)%e.cfg.ContinueRepeatTicks == 0 {
			return 1
		}
	case *hold >= press:
		if (*hold-press)%e.cfg.PressRepeatTicks == 0 {
			return 1
		}
	}
	return 0
}

func (e *Engine) tickKeys(in Input) {
	delta := in.Encoder
	delta += e.repeat(&e.downHold, in.Down)
	delta -= e.repeat(&e.upHold, in.Up)
	if delta != 0 {
		e.move(delta)
	}
	if in.Enter.Pressed {
		e.enterActive()
	}
	if in.Back.Pressed {
		e.back()
	}
}

// move walks the selection by delta single steps, positive toward the
// end of the list.
func (e *Engine) move(delta int) {
	p := e.Page()
	n := int16(len(p.Items))
	if n == 0 {
		return
	}
	for ; delta > 0; delta-- {
		e.stepNext(p, n)
	}
	for ; delta < 0; delta++ {
		e.stepPrev(p, n)
	}
	e.retarget(p)
	p.Items[p.active].slip = 0
}

func (e *Engine) stepNext(p *Page, n int16) {
	if p.Type == Tiles {
		p.active++
		if p.active >= n {
			p.active = 0
		}
		return
	}
	if p.active == n-1 {
		// wrap to the top; the viewport snaps back with it
		p.active = 0
		p.slot = 0
		e.start.SetTarget(float32(p.Start.X), float32(p.Start.Y))
		return
	}
	p.active++
	if p.slot < p.MaxSlots()-1 {
		p.slot++
	} else {
		e.start.Y.Target -= float32(p.Pitch())
	}
}

func (e *Engine) stepPrev(p *Page, n int16) {
	if p.Type == Tiles {
		p.active--
		if p.active < 0 {
			p.active = n - 1
		}
		return
	}
	if p.active == 0 {
		// wrap to the bottom, showing the last viewport of items
		p.active = n - 1
		vis := p.MaxSlots()
		if n < vis {
			vis = n
		}
		p.slot = vis - 1
		e.start.Y.Target = float32(p.Start.Y) - float32(n-vis)*float32(p.Pitch())
		return
	}
	p.active--
	if p.slot > 0 {
		p.slot--
	} else {
		e.start.Y.Target += float32(p.Pitch())
	}
}

// retarget recomputes the animated targets that follow the selection.
func (e *Engine) retarget(p *Page) {
	if p.Type == Tiles {
		pitch := p.TileW + p.TileGap
		e.start.X.Target = float32(p.Start.X) - float32(p.active)*float32(pitch)
		return
	}
	e.cursor.SetTarget(e.cursorTargetFor(p))
	n := int16(len(p.Items))
	if n > 0 {
		e.scroll.Target = float32(p.active+1) / float32(n) * float32(p.Area.H)
	}
}

func (e *Engine) enterActive() {
	p := e.Page()
	if len(p.Items) == 0 {
		return
	}
	it := &p.Items[p.active]
	switch it.Kind {
	case KindSubmenu:
		if it.Sub != NoPage {
			e.beginFade(it.Sub, false)
		}
	case KindAction:
		e.pending = it.Act
		e.hasPending = true
		e.busyAction = true
		e.gate.Disable()
	case KindToggle:
		if it.Flag != nil {
			*it.Flag = !*it.Flag
		}
	case KindInt:
		if it.Int != nil && it.Int.Win != nil {
			e.openWindow(it.Text, it.Int, nil)
		}
	case KindFloat:
		if it.Float != nil && it.Float.Win != nil {
			e.openWindow(it.Text, nil, it.Float)
		}
	}
}

func (e *Engine) back() {
	if len(e.stack) == 0 {
		return
	}
	e.beginFade(e.stack[len(e.stack)-1], true)
}

// Back requests the same transition as the back key. Builtin actions use
// it to leave modal screens.
func (e *Engine) Back() { e.back() }

func (e *Engine) beginFade(to PageID, pop bool) {
	e.fadeStage = 1
	e.fadeTicks = 0
	e.fadeTo = to
	e.fadePop = pop
	e.gate.Disable()
}

func (e *Engine) tickFade() {
	e.fadeTicks++
	step := e.ticksFor(e.cfg.FadeStepMS)
	lvl := int8(1 + e.fadeTicks/step)
	if lvl > 5 {
		lvl = 5
	}
	e.fadeStage = lvl
	if e.fadeTicks < 6*step {
		return
	}
	if e.fadePop {
		e.leaveToParent()
	} else {
		e.enterChild(e.fadeTo)
	}
	e.fadeStage = 0
	e.fadeTicks = 0
	e.gate.Enable()
}

// enterChild pushes the current page and switches to the child, which
// always starts fresh at its first item, sliding in from the right. The
// parent keeps its settled viewport, not a mid-animation snapshot.
func (e *Engine) enterChild(id PageID) {
	p := e.Page()
	p.savedX = e.start.X.Target
	p.savedY = e.start.Y.Target
	e.stack = append(e.stack, e.cur)
	e.cur = id
	c := e.Page()
	c.active = 0
	c.slot = 0
	e.initPage(true)
}

// leaveToParent pops the stack and restores the parent's selection and
// viewport, sliding in from the left.
func (e *Engine) leaveToParent() {
	e.cur = e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	e.initPage(false)
}

func (e *Engine) initPage(fresh bool) {
	p := e.Page()
	if fresh {
		e.start.Set(float32(p.Start.X)+float32(e.cfg.Width), float32(p.Start.Y))
		e.start.SetTarget(float32(p.Start.X), float32(p.Start.Y))
	} else {
		e.start.Set(p.savedX-float32(e.cfg.Width), p.savedY)
		e.start.SetTarget(p.savedX, p.savedY)
	}
	// rows roll out from a squeezed pitch
	e.lineStep.Current = -3
	e.lineStep.Target = float32(p.LineStep)
	// the frame border keeps its current area and glides to the new one
	e.frameRect.SetTarget(float32(p.Area.X), float32(p.Area.Y),
		float32(p.Area.W), float32(p.Area.H))
	e.cursor.Set(0, 0, 0, 0)
	e.scroll.Set(0)
	e.retarget(p)
}

func (e *Engine) openWindow(title string, ib *IntBox, fb *FloatBox) {
	var style *WindowStyle
	switch {
	case ib != nil:
		style = ib.Win
	case fb != nil:
		style = fb.Win
	}
	if style == nil {
		return
	}
	e.win.active = true
	e.win.closing = false
	e.win.style = style
	e.win.title = title
	e.win.intBox = ib
	e.win.floatBox = fb
	e.win.count = 0

	// pop out of the screen center
	cx := float32(e.cfg.Width) / 2
	cy := float32(e.cfg.Height) / 2
	e.win.rect.Set(cx, cy, 0, 0)
	e.win.rect.SetTarget(cx-float32(style.W)/2, cy-float32(style.H)/2,
		float32(style.W), float32(style.H))
	e.win.prob.Set(0)
}

func (e *Engine) tickWindow(in Input) {
	w := &e.win
	if w.closing {
		return
	}
	adj := in.Encoder
	adj += e.repeat(&e.upHold, in.Up)
	adj -= e.repeat(&e.downHold, in.Down)
	if adj != 0 {
		w.adjust(adj)
		w.count = 0
	} else {
		w.count++
	}
	limit := e.ticksFor(w.style.ContinueTimeMS)
	if in.Enter.Pressed {
		e.closeWindow()
		return
	}
	if in.Back.Pressed {
		// force the countdown over; the window leaves through the
		// ordinary timeout path
		w.count = limit
	}
	if w.count >= limit {
		e.closeWindow()
	}
}

// closeWindow starts the exit animation; the window stays modal until
// the rectangle leaves the screen.
func (e *Engine) closeWindow() {
	w := &e.win
	w.closing = true
	w.rect.SetTarget(w.rect.X.Current, -float32(w.style.H)-8,
		w.rect.W.Current, w.rect.H.Current)
}

// finishWindow retires a fully exited window. Called from the render
// path once the exit animation lands.
func (e *Engine) finishWindow() {
	e.win.active = false
	e.win.closing = false
	e.win.style = nil
	e.win.intBox = nil
	e.win.floatBox = nil
}
