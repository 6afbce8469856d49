package ui

import "tinygo.org/x/tinyfont"

// PageID indexes the page arena. Items reference children by ID, so the
// tree is plain data without self-referential literals; the parent chain
// lives on the engine's navigation stack.
type PageID int16

const NoPage PageID = -1

// Page layouts.
const (
	List PageType = iota
	Tiles
)

type PageType uint8

// Cursor styles for LIST pages.
const (
	CursorSolid CursorStyle = iota
	CursorRounded
	CursorHollow
	CursorHollowRounded
	CursorGutter
	CursorNone
)

type CursorStyle uint8

// Item payload kinds; the constructor fixes exactly one payload.
const (
	KindLabel Kind = iota
	KindSubmenu
	KindAction
	KindToggle
	KindInt
	KindFloat
)

type Kind uint8

// Action is an opaque code the orchestrator dispatches. The engine never
// interprets it.
type Action uint8

const ActionNone Action = 0

// IntBox binds a window-editable integer.
type IntBox struct {
	Val  *int32
	Min  int32
	Max  int32
	Step int32
	Win  *WindowStyle
}

// FloatBox binds a window-editable float.
type FloatBox struct {
	Val  *float32
	Min  float32
	Max  float32
	Step float32
	Prec uint8
	Win  *WindowStyle
}

// Item is one menu entry.
type Item struct {
	Text string
	Kind Kind

	Sub   PageID
	Act   Action
	Flag  *bool
	Int   *IntBox
	Float *FloatBox

	Icon []byte   // tile art, TileW x TileH, row-major MSB-first
	Gif  [][]byte // animated tile art, up to 32 frames

	slip     float32
	gifFrame uint8
}

func Label(text string) Item {
	return Item{Text: text, Kind: KindLabel}
}

func Submenu(text string, sub PageID) Item {
	return Item{Text: text, Kind: KindSubmenu, Sub: sub}
}

func ActionItem(text string, act Action) Item {
	return Item{Text: text, Kind: KindAction, Act: act}
}

func Toggle(text string, flag *bool) Item {
	return Item{Text: text, Kind: KindToggle, Flag: flag}
}

func IntItem(text string, box *IntBox) Item {
	return Item{Text: text, Kind: KindInt, Int: box}
}

func FloatItem(text string, box *FloatBox) Item {
	return Item{Text: text, Kind: KindFloat, Float: box}
}

// WithIcon attaches static tile art.
func (it Item) WithIcon(icon []byte) Item {
	it.Icon = icon
	return it
}

// WithGif attaches animated tile art.
func (it Item) WithGif(frames [][]byte) Item {
	it.Gif = frames
	return it
}

// Box is a static pixel rectangle.
type Box struct {
	X, Y, W, H int16
}

// XY is a static pixel point.
type XY struct {
	X, Y int16
}

// Page is one screen of the menu tree.
type Page struct {
	Type  PageType
	Items []Item

	Font     tinyfont.Fonter
	FontH    int16
	LineStep int16 // settled gap between rows
	Cursor   CursorStyle
	Mode     Mode
	Speed    float32

	Area  Box // menu viewport
	Start XY  // configured start point, relative to the viewport

	DrawFrame  bool
	DrawPrefix bool

	TileW   int16
	TileH   int16
	TileGap int16

	// Aux draws page-specific content after the item pass.
	Aux func(*Engine, *Frame)

	// runtime, owned by the engine
	active int16
	slot   int16
	savedX float32
	savedY float32
}

// Active returns the index of the highlighted item.
func (p *Page) Active() int { return int(p.active) }

// Slot returns the viewport row the highlighted item occupies.
func (p *Page) Slot() int { return int(p.slot) }

// Pitch is the settled row advance.
func (p *Page) Pitch() int16 { return p.FontH + p.LineStep }

// MaxSlots is how many rows fit the viewport.
func (p *Page) MaxSlots() int16 {
	pitch := p.Pitch()
	if pitch <= 0 {
		return 1
	}
	n := (p.Area.H - p.Start.Y + p.LineStep - 1) / pitch
	if n < 1 {
		n = 1
	}
	return n
}
