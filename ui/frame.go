package ui

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer is the pixel sink a frame flushes to: the OLED on the
// board, an image buffer in the simulator.
type Displayer interface {
	Size() (int16, int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
}

var (
	colorOn  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOff = color.RGBA{A: 0xff}
)

// Frame is the 1-bpp buffer all drawing lands in. The panel driver is
// write-only, so reverse areas and fade masks need this local copy to
// read back from. Rows are packed MSB-first.
type Frame struct {
	w, h   int16
	stride int
	buf    []uint8
	invert bool
}

func NewFrame(w, h int16) *Frame {
	stride := (int(w) + 7) / 8
	return &Frame{
		w:      w,
		h:      h,
		stride: stride,
		buf:    make([]uint8, stride*int(h)),
	}
}

func (f *Frame) Size() (int16, int16) { return f.w, f.h }

// SetInvert flips the flushed polarity for the light color scheme.
func (f *Frame) SetInvert(v bool) { f.invert = v }

func (f *Frame) Inverted() bool { return f.invert }

// SetPixel implements the displayer contract; any non-black color sets
// the bit. Fonts and the terminal draw through this.
func (f *Frame) SetPixel(x, y int16, c color.RGBA) {
	f.Set(x, y, c.R != 0 || c.G != 0 || c.B != 0)
}

func (f *Frame) Set(x, y int16, on bool) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	idx := int(y)*f.stride + int(x)>>3
	mask := uint8(0x80) >> (uint8(x) & 7)
	if on {
		f.buf[idx] |= mask
	} else {
		f.buf[idx] &^= mask
	}
}

func (f *Frame) Get(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return f.buf[int(y)*f.stride+int(x)>>3]&(uint8(0x80)>>(uint8(x)&7)) != 0
}

// Display satisfies the displayer contract. Pushing to the panel is the
// explicit Flush.
func (f *Frame) Display() error { return nil }

func (f *Frame) ClearBuffer() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

// FillRectangle implements the terminal sink contract.
func (f *Frame) FillRectangle(x, y, w, h int16, c color.RGBA) error {
	on := c.R != 0 || c.G != 0 || c.B != 0
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.Set(xx, yy, on)
		}
	}
	return nil
}

// SetScroll is part of the terminal sink contract. The frame has no
// hardware scroll; terminals on it use software scrolling.
func (f *Frame) SetScroll(line int16) {}

// SetRotation is part of the terminal sink contract.
func (f *Frame) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// ReverseArea inverts every pixel in the rectangle.
func (f *Frame) ReverseArea(x, y, w, h int16) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.Set(xx, yy, !f.Get(xx, yy))
		}
	}
}

// DrawRoundRect outlines a rectangle with shaved corners.
func (f *Frame) DrawRoundRect(x, y, w, h, r int16, on bool) {
	for xx := int16(0); xx < w; xx++ {
		if insideRound(xx, 0, w, h, r) {
			f.Set(x+xx, y, on)
		}
		if insideRound(xx, h-1, w, h, r) {
			f.Set(x+xx, y+h-1, on)
		}
	}
	for yy := int16(0); yy < h; yy++ {
		if insideRound(0, yy, w, h, r) {
			f.Set(x, y+yy, on)
		}
		if insideRound(w-1, yy, w, h, r) {
			f.Set(x+w-1, y+yy, on)
		}
	}
	// Corner arcs: boundary of the rounded region inside each corner
	// square.
	for yy := int16(0); yy < r; yy++ {
		for xx := int16(0); xx < r; xx++ {
			if !cornerEdge(xx, yy, r) {
				continue
			}
			f.Set(x+xx, y+yy, on)
			f.Set(x+w-1-xx, y+yy, on)
			f.Set(x+xx, y+h-1-yy, on)
			f.Set(x+w-1-xx, y+h-1-yy, on)
		}
	}
}

// FillRoundRect fills a rectangle with shaved corners.
func (f *Frame) FillRoundRect(x, y, w, h, r int16, on bool) {
	for yy := int16(0); yy < h; yy++ {
		for xx := int16(0); xx < w; xx++ {
			if insideRound(xx, yy, w, h, r) {
				f.Set(x+xx, y+yy, on)
			}
		}
	}
}

func insideRound(xx, yy, w, h, r int16) bool {
	if r <= 0 {
		return true
	}
	var dx, dy int32
	switch {
	case xx < r && yy < r:
		dx, dy = int32(r-1-xx), int32(r-1-yy)
	case xx >= w-r && yy < r:
		dx, dy = int32(xx-(w-r)), int32(r-1-yy)
	case xx < r && yy >= h-r:
		dx, dy = int32(r-1-xx), int32(yy-(h-r))
	case xx >= w-r && yy >= h-r:
		dx, dy = int32(xx-(w-r)), int32(yy-(h-r))
	default:
		return true
	}
	return dx*dx+dy*dy <= int32(r-1)*int32(r-1)
}

func cornerEdge(xx, yy, r int16) bool {
	in := insideRound(xx, yy, 2*r, 2*r, r)
	if !in {
		return false
	}
	// Edge pixels have an excluded neighbor toward the corner.
	return !insideRound(xx-1, yy, 2*r, 2*r, r) || !insideRound(xx, yy-1, 2*r, 2*r, r)
}

// DrawBitmap blits a row-major MSB-first 1-bpp image.
func (f *Frame) DrawBitmap(x, y, w, h int16, data []byte) {
	f.DrawBitmapArea(x, y, data, w, h, 0, 0, w, h)
}

// DrawBitmapArea blits the sub-rectangle (sx, sy, sw, sh) of a row-major
// MSB-first 1-bpp image of size srcW x srcH.
func (f *Frame) DrawBitmapArea(x, y int16, data []byte, srcW, srcH, sx, sy, sw, sh int16) {
	stride := (int(srcW) + 7) / 8
	for yy := int16(0); yy < sh; yy++ {
		py := sy + yy
		if py < 0 || py >= srcH {
			continue
		}
		for xx := int16(0); xx < sw; xx++ {
			px := sx + xx
			if px < 0 || px >= srcW {
				continue
			}
			idx := int(py)*stride + int(px)>>3
			if idx >= len(data) {
				continue
			}
			on := data[idx]&(uint8(0x80)>>(uint8(px)&7)) != 0
			f.Set(x+xx, y+yy, on)
		}
	}
}

// Flush pushes the buffer to a sink and presents it. Inverted polarity
// is applied here so the shadow copy stays in one scheme.
func (f *Frame) Flush(d Displayer) error {
	for y := int16(0); y < f.h; y++ {
		for x := int16(0); x < f.w; x++ {
			on := f.Get(x, y)
			if f.invert {
				on = !on
			}
			if on {
				d.SetPixel(x, y, colorOn)
			} else {
				d.SetPixel(x, y, colorOff)
			}
		}
	}
	return d.Display()
}
