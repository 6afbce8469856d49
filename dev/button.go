package dev

// InputPin is the minimal contract for a digital input. machine.Pin
// satisfies it on device; tests plug in plain fakes.
type InputPin interface {
	Get() bool
}

// OutputPin is the minimal contract for a digital output.
type OutputPin interface {
	High()
	Low()
	Set(bool)
	Get() bool
}

const maxButtons = 8

// Button debounces one active-low key with an 8-bit shift register.
// A press commits once the four most recent samples agree high, a release
// once they agree low. Press edges are latched until taken so a short tap
// between scans of a slow consumer is never lost.
type Button struct {
	pin     InputPin
	shift   uint8
	pressed bool
	event   bool
}

func NewButton(pin InputPin) *Button {
	return &Button{pin: pin}
}

// Sample reads the pin and folds it into the debounce window. The key
// pulls the line low when pressed.
func (b *Button) Sample() {
	b.Debounce(!b.pin.Get())
}

// Debounce shifts one raw reading in and commits the level once the low
// nibble is unanimous.
func (b *Button) Debounce(raw bool) {
	var bit uint8
	if raw {
		bit = 1
	}
	b.shift = b.shift<<1 | bit
	switch b.shift & 0x0f {
	case 0x0f:
		if !b.pressed {
			b.event = true
		}
		b.pressed = true
	case 0x00:
		b.pressed = false
	}
}

// Pressed reports the committed level.
func (b *Button) Pressed() bool { return b.pressed }

// TakePress consumes the latched press edge.
func (b *Button) TakePress() bool {
	ev := b.event
	b.event = false
	return ev
}

// Manager samples a bank of buttons on a shared software timer so all
// debounce windows advance in lockstep.
type Manager struct {
	buttons []*Button
	timer   Timer
}

func NewManager(periodMS uint32, buttons ...*Button) (*Manager, error) {
	if len(buttons) > maxButtons {
		return nil, ErrTooManyButtons
	}
	return &Manager{
		buttons: buttons,
		timer:   NewTimer(periodMS, true),
	}, nil
}

func (m *Manager) Start() { m.timer.Start() }
func (m *Manager) Stop()  { m.timer.Stop() }

// Scan runs one sampling pass when the period has elapsed. It reports
// whether a pass ran.
func (m *Manager) Scan() bool {
	if !m.timer.Expired() {
		return false
	}
	for _, b := range m.buttons {
		b.Sample()
	}
	return true
}
