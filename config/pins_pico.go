//go:build rp2040

package config

import "machine"

var (
	MotorEnable = machine.GP2
	MotorP      = machine.GP3
	MotorM      = machine.GP6

	EncoderA = machine.GP14
	EncoderB = machine.GP15

	ButtonUp     = machine.GP18
	ButtonDown   = machine.GP19
	ButtonEnter  = machine.GP20
	ButtonReturn = machine.GP21

	CurrentSense = machine.ADC{Pin: machine.ADC0}

	TEST = machine.GP10
)
