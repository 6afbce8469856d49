package ui

import (
	"strconv"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

// Render draws one frame: a single animation step for every scalar, the
// page pass, the overlays, then the flush.
func (e *Engine) Render() error {
	e.frames++
	p := e.Page()

	e.start.Step(p.Mode, p.Speed)
	e.lineStep.Step(p.Mode, p.Speed)
	e.cursor.Step(p.Mode, p.Speed)
	e.scroll.Step(p.Mode, p.Speed)
	e.frameRect.Step(p.Mode, p.Speed)
	if e.frames%e.cfg.GifFrameDiv == 0 {
		for i := range p.Items {
			it := &p.Items[i]
			if len(it.Gif) > 0 {
				it.gifFrame = (it.gifFrame + 1) & 31
			}
		}
	}

	e.frame.ClearBuffer()
	if p.DrawFrame {
		// border sits one pixel outside the area so it never covers rows
		tinydraw.Rectangle(e.frame,
			int16(e.frameRect.X.Current)-1, int16(e.frameRect.Y.Current)-1,
			int16(e.frameRect.W.Current)+2, int16(e.frameRect.H.Current)+2,
			colorOn)
	}
	switch p.Type {
	case Tiles:
		e.renderTiles(p)
	default:
		e.renderList(p)
		e.renderCursor()
		e.renderScrollBar(p)
	}
	if p.Aux != nil {
		p.Aux(e, e.frame)
	}
	e.renderWindow(p)
	if e.fadeStage > 0 {
		e.frame.ApplyMask(int(e.fadeStage))
	}
	if e.ShowFPS != nil && *e.ShowFPS {
		e.drawFPS(p)
	}

	e.frame.SetInvert(e.Light != nil && *e.Light)
	if e.sink == nil {
		return nil
	}
	return e.frame.Flush(e.sink)
}

func textWidth(f tinyfont.Fonter, s string) int16 {
	w, _ := tinyfont.LineWidth(f, s)
	return int16(w)
}

func (e *Engine) lineText(p *Page, it *Item) string {
	if p.DrawPrefix {
		return "-" + it.Text
	}
	return it.Text
}

// cursorTargetFor computes where the cursor should settle for the active
// item: hugging the text, clamped to the viewport.
func (e *Engine) cursorTargetFor(p *Page) (x, y, w, h float32) {
	it := &p.Items[p.active]
	tw := float32(textWidth(p.Font, e.lineText(p, it)))
	w = tw + 5
	if max := float32(p.Area.W - 8); w > max {
		w = max
	}
	x = float32(p.Area.X+p.Start.X) - 2
	y = float32(p.Area.Y+p.Start.Y) + float32(p.slot)*float32(p.Pitch()) - 1
	h = float32(p.FontH) + 2
	return x, y, w, h
}

func (e *Engine) renderList(p *Page) {
	pitch := float32(p.FontH) + e.lineStep.Current
	top := float32(p.Area.Y)
	bottom := float32(p.Area.Y + p.Area.H)
	for i := range p.Items {
		y := top + e.start.Y.Current + float32(i)*pitch
		if y+float32(p.FontH) < top || y > bottom {
			continue
		}
		it := &p.Items[i]
		x := float32(p.Area.X) + e.start.X.Current
		if int16(i) == p.active {
			x += e.slipFor(p, it)
		}
		tinyfont.WriteLine(e.frame, p.Font, int16(x), int16(y)+p.FontH, e.lineText(p, it), colorOn)
		e.drawSuffix(p, it, int16(y))
	}
}

// slipFor scrolls overlong active-item text one notch per frame, cycling
// back in from the right edge.
func (e *Engine) slipFor(p *Page, it *Item) float32 {
	tw := float32(textWidth(p.Font, e.lineText(p, it)))
	vis := float32(p.Area.W - 8)
	if tw <= vis {
		it.slip = 0
		return 0
	}
	it.slip -= e.cfg.LineSlipPx
	if it.slip < -tw {
		it.slip = vis
	}
	return it.slip
}

func (e *Engine) drawSuffix(p *Page, it *Item, rowY int16) {
	// rides the entry slide with the rows
	right := p.Area.X + p.Area.W - 6 + int16(e.start.X.Current-float32(p.Start.X))
	baseline := rowY + p.FontH
	switch it.Kind {
	case KindToggle:
		if it.Flag == nil {
			return
		}
		bx := right - 8
		by := rowY + (p.FontH-7)/2 + 1
		tinydraw.Rectangle(e.frame, bx, by, 7, 7, colorOn)
		if *it.Flag {
			tinydraw.FilledRectangle(e.frame, bx+2, by+2, 3, 3, colorOn)
		}
	case KindInt:
		if it.Int == nil {
			return
		}
		s := strconv.Itoa(int(*it.Int.Val))
		tinyfont.WriteLine(e.frame, p.Font, right-textWidth(p.Font, s), baseline, s, colorOn)
	case KindFloat:
		if it.Float == nil {
			return
		}
		s := strconv.FormatFloat(float64(*it.Float.Val), 'f', int(it.Float.Prec), 32)
		tinyfont.WriteLine(e.frame, p.Font, right-textWidth(p.Font, s), baseline, s, colorOn)
	case KindSubmenu:
		tinyfont.WriteLine(e.frame, p.Font, right-textWidth(p.Font, ">"), baseline, ">", colorOn)
	}
}

func (e *Engine) renderCursor() {
	p := e.Page()
	if p.Cursor == CursorNone || len(p.Items) == 0 {
		return
	}
	x := int16(e.cursor.X.Current)
	y := int16(e.cursor.Y.Current)
	w := int16(e.cursor.W.Current)
	h := int16(e.cursor.H.Current)
	if w <= 0 || h <= 0 {
		return
	}
	switch p.Cursor {
	case CursorSolid:
		e.frame.ReverseArea(x, y, w, h)
	case CursorRounded:
		e.frame.ReverseArea(x, y, w, h)
		// un-reverse the shaved corners
		for _, c := range [4][2]int16{{x, y}, {x + w - 1, y}, {x, y + h - 1}, {x + w - 1, y + h - 1}} {
			e.frame.Set(c[0], c[1], !e.frame.Get(c[0], c[1]))
		}
	case CursorHollow:
		tinydraw.Rectangle(e.frame, x, y, w, h, colorOn)
	case CursorHollowRounded:
		e.frame.DrawRoundRect(x, y, w, h, 2, true)
	case CursorGutter:
		// one ASCII cell wide, hugging the left margin
		e.frame.ReverseArea(x, y+1, p.FontH/2, h)
	}
}

func (e *Engine) renderScrollBar(p *Page) {
	if len(p.Items) < 2 {
		return
	}
	// anchored to the border rect so it rides the page glide
	fy := int16(e.frameRect.Y.Current)
	fh := int16(e.frameRect.H.Current)
	x := int16(e.frameRect.X.Current+e.frameRect.W.Current) - 2
	tinydraw.Line(e.frame, x, fy, x, fy+fh-1, colorOn)
	bar := int16(e.scroll.Current)
	if bar < 1 {
		bar = 1
	}
	if bar > fh {
		bar = fh
	}
	tinydraw.FilledRectangle(e.frame, x-1, fy, 3, bar, colorOn)
}

func (e *Engine) renderTiles(p *Page) {
	if len(p.Items) == 0 {
		return
	}
	pitch := p.TileW + p.TileGap
	tileY := p.Area.Y + 6
	for i := range p.Items {
		x := float32(p.Area.X) + e.start.X.Current + float32(int16(i)*pitch)
		if x+float32(p.TileW) < float32(p.Area.X) || x > float32(p.Area.X+p.Area.W) {
			continue
		}
		it := &p.Items[i]
		art := it.Icon
		if len(it.Gif) > 0 {
			art = it.Gif[int(it.gifFrame)%len(it.Gif)]
		}
		if art != nil {
			e.frame.DrawBitmap(int16(x), tileY, p.TileW, p.TileH, art)
		}
	}

	// static indicator; the row scrolls so the active tile settles
	// under it
	e.frame.DrawRoundRect(p.Area.X+p.Start.X-3, tileY-3, p.TileW+6, p.TileH+6, 2, true)

	title := p.Items[p.active].Text
	tx := p.Area.X + (p.Area.W-textWidth(p.Font, title))/2
	tinyfont.WriteLine(e.frame, p.Font, tx, p.Area.Y+p.Area.H-2, title, colorOn)
}

func (e *Engine) renderWindow(p *Page) {
	w := &e.win
	if !w.active {
		return
	}
	style := w.style

	w.rect.Step(p.Mode, p.Speed)
	inner := float32(style.W - 2*style.Prob.SideMargin - 2)
	w.prob.Target = w.fraction() * inner
	w.prob.Step(p.Mode, p.Speed)

	x := int16(w.rect.X.Current)
	y := int16(w.rect.Y.Current)
	wd := int16(w.rect.W.Current)
	ht := int16(w.rect.H.Current)
	if wd >= 2 && ht >= 2 {
		if style.Shape == WindowRounded {
			e.frame.FillRoundRect(x, y, wd, ht, 3, false)
			e.frame.DrawRoundRect(x, y, wd, ht, 3, true)
		} else {
			e.frame.FillRectangle(x, y, wd, ht, colorOff)
			tinydraw.Rectangle(e.frame, x, y, wd, ht, colorOn)
		}
	}

	// content appears once the pop-in is close to full size
	if wd >= style.W-4 && ht >= style.H-4 {
		baseline := y + style.TopMargin + style.FontH
		tinyfont.WriteLine(e.frame, style.Font, x+style.SideMargin, baseline, w.title, colorOn)
		val := w.valueText()
		tinyfont.WriteLine(e.frame, style.Font, x+wd-style.SideMargin-textWidth(style.Font, val), baseline, val, colorOn)

		bx := x + style.Prob.SideMargin
		bw := wd - 2*style.Prob.SideMargin
		bh := style.Prob.Height
		by := y + ht - style.Prob.BottomMargin - bh
		tinydraw.Rectangle(e.frame, bx, by, bw, bh, colorOn)
		fill := int16(w.prob.Current)
		if fill > bw-2 {
			fill = bw - 2
		}
		if fill > 0 && bh > 2 {
			tinydraw.FilledRectangle(e.frame, bx+1, by+1, fill, bh-2, colorOn)
		}
	}

	if w.closing && w.rect.Done() {
		e.finishWindow()
	}
}

func (e *Engine) drawFPS(p *Page) {
	s := strconv.Itoa(int(e.fps))
	tinyfont.WriteLine(e.frame, p.Font, e.cfg.Width-textWidth(p.Font, s)-2, p.FontH, s, colorOn)
}
