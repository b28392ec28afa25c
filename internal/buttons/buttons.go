/*
Copyright 2024 Tim St. Pierre
Polled push buttons on GPIO inputs
*/
package buttons

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Button is an active high push button read by polling.
type Button struct {
	pin  gpio.PinIn
	last gpio.Level
}

// New configures pin as a pulled down input.
func New(pin gpio.PinIn) (*Button, error) {
	if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("buttons: %s: %w", pin, err)
	}
	return &Button{pin: pin, last: pin.Read()}, nil
}

// Open looks up the named pin in gpioreg.
func Open(name string) (*Button, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("buttons: unknown pin %q", name)
	}
	return New(p)
}

// Pressed reports whether the button went from released to pressed since
// the previous call. Holding it down reports a single press.
func (b *Button) Pressed() bool {
	l := b.pin.Read()
	pressed := l == gpio.High && b.last == gpio.Low
	b.last = l
	return pressed
}

func (b *Button) String() string {
	return b.pin.String()
}
