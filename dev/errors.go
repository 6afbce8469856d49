package dev

// error definitions
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidArgument = Error("invalid argument")
	ErrPeripheralBusy  = Error("peripheral busy")
	ErrTimeout         = Error("timeout")
	ErrReloadTooLarge  = Error("reload exceeds 24-bit counter")
	ErrUninitialized   = Error("not initialized")

	ErrRingSize       = Error("ring length must be even and non-zero")
	ErrStreamRequired = Error("sample stream required")
	ErrSourceRequired = Error("sample source required")
	ErrTooManyButtons = Error("too many buttons for one manager")
	ErrCounterNil     = Error("counter not attached")
)
