package ui

import (
	"strconv"

	"tinygo.org/x/tinyfont"
)

// Window frame shapes.
const (
	WindowRect WindowShape = iota
	WindowRounded
)

type WindowShape uint8

// ProgressStyle places the value bar inside a window.
type ProgressStyle struct {
	SideMargin   int16
	BottomMargin int16
	Height       int16
}

// WindowStyle is the static description of a modal value window.
type WindowStyle struct {
	W, H       int16
	Font       tinyfont.Fonter
	FontH      int16
	TopMargin  int16
	SideMargin int16
	Shape      WindowShape

	// ContinueTimeMS is how long the window outlives the last
	// interaction.
	ContinueTimeMS uint32

	Prob ProgressStyle
}

// window is the modal runtime. One window at most is ever visible.
type window struct {
	active  bool
	closing bool

	style    *WindowStyle
	title    string
	intBox   *IntBox
	floatBox *FloatBox

	rect  Rect
	prob  Dist
	count uint32
}

// adjust nudges the bound value by whole steps, clamped to its range.
func (w *window) adjust(steps int) {
	if w.intBox != nil {
		b := w.intBox
		v := *b.Val + int32(steps)*b.Step
		if v < b.Min {
			v = b.Min
		}
		if v > b.Max {
			v = b.Max
		}
		*b.Val = v
	}
	if w.floatBox != nil {
		b := w.floatBox
		v := *b.Val + float32(steps)*b.Step
		if v < b.Min {
			v = b.Min
		}
		if v > b.Max {
			v = b.Max
		}
		*b.Val = v
	}
}

// fraction maps the bound value onto [0, 1] for the progress bar.
func (w *window) fraction() float32 {
	if w.intBox != nil {
		b := w.intBox
		if b.Max == b.Min {
			return 0
		}
		return float32(*b.Val-b.Min) / float32(b.Max-b.Min)
	}
	if w.floatBox != nil {
		b := w.floatBox
		if b.Max == b.Min {
			return 0
		}
		return (*b.Val - b.Min) / (b.Max - b.Min)
	}
	return 0
}

// valueText renders the bound value for display.
func (w *window) valueText() string {
	if w.intBox != nil {
		return strconv.Itoa(int(*w.intBox.Val))
	}
	if w.floatBox != nil {
		return strconv.FormatFloat(float64(*w.floatBox.Val), 'f', int(w.floatBox.Prec), 32)
	}
	return ""
}
