package dev

import "sync/atomic"

// Motor states
const (
	MotorStopped MotorState = iota // Bridge disabled, direction pins hold their level
	MotorForward                   // Bridge enabled, P high M low
	MotorReverse                   // Bridge enabled, P low M high
	MotorKilled                    // Protection cut: everything low until re-enabled
)

type MotorState uint8

// Motor drives a brushed DC motor through an H-bridge with an enable pin
// and a complementary direction pair. State is atomic so the render path
// can read it while the scan loop commands the bridge.
type Motor struct {
	enable OutputPin
	p      OutputPin
	m      OutputPin

	state        atomic.Int32
	forward      bool
	killCallback func()
}

func NewMotor(enable, p, m OutputPin) *Motor {
	d := &Motor{enable: enable, p: p, m: m, forward: true}
	d.state.Store(int32(MotorStopped))
	return d
}

// SetKillCallback registers a hook fired whenever the bridge is cut.
func (d *Motor) SetKillCallback(cb func()) {
	d.killCallback = cb
}

// Configure drives the bridge to its power-on state: enabled, forward.
func (d *Motor) Configure() {
	d.forward = true
	d.p.High()
	d.m.Low()
	d.enable.High()
	d.state.Store(int32(MotorForward))
}

// SetDirection latches the direction pair. Takes effect immediately when
// the bridge is running.
func (d *Motor) SetDirection(forward bool) {
	d.forward = forward
	d.p.Set(forward)
	d.m.Set(!forward)
	if d.Running() {
		d.state.Store(int32(d.runState()))
	}
}

func (d *Motor) Forward() bool { return d.forward }

// Run enables the bridge in the latched direction. Running after a kill
// is the explicit re-enable path, so the direction pins are restored
// first.
func (d *Motor) Run() {
	d.p.Set(d.forward)
	d.m.Set(!d.forward)
	d.enable.High()
	d.state.Store(int32(d.runState()))
}

// Stop disables the bridge. Direction pins keep their level.
func (d *Motor) Stop() {
	d.enable.Low()
	d.state.Store(int32(MotorStopped))
}

// Kill is the emergency cut: enable and both direction pins low. The
// bridge stays killed until Run is called again.
func (d *Motor) Kill() {
	d.enable.Low()
	d.p.Low()
	d.m.Low()
	d.state.Store(int32(MotorKilled))
	if d.killCallback != nil {
		d.killCallback()
	}
}

// Toggle flips between running and stopped.
func (d *Motor) Toggle() {
	if d.Running() {
		d.Stop()
	} else {
		d.Run()
	}
}

func (d *Motor) State() MotorState {
	return MotorState(d.state.Load())
}

func (d *Motor) Running() bool {
	s := d.State()
	return s == MotorForward || s == MotorReverse
}

func (d *Motor) Killed() bool {
	return d.State() == MotorKilled
}

func (d *Motor) runState() MotorState {
	if d.forward {
		return MotorForward
	}
	return MotorReverse
}
