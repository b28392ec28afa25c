/*
Copyright 2024 Tim St. Pierre
GPIO backed bus outputs for lcd2004
*/
package lcd2004

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// PinOutputs drives the bus with periph GPIO pins.
type PinOutputs struct {
	pins map[Signal]gpio.PinOut
}

// NewPinOutputs uses already opened pins. All six signals must be present.
func NewPinOutputs(pins map[Signal]gpio.PinOut) (*PinOutputs, error) {
	for _, s := range []Signal{RS, E, D4, D5, D6, D7} {
		if pins[s] == nil {
			return nil, fmt.Errorf("lcd2004: no pin for %s", s)
		}
	}
	p := &PinOutputs{pins: make(map[Signal]gpio.PinOut, len(pins))}
	for s, pin := range pins {
		p.pins[s] = pin
	}
	return p, nil
}

// OpenPins looks up the named pins in gpioreg and drives them low.
func OpenPins(names Pins) (*PinOutputs, error) {
	byName := map[Signal]string{
		RS: names.RS,
		E:  names.E,
		D4: names.D4,
		D5: names.D5,
		D6: names.D6,
		D7: names.D7,
	}
	pins := make(map[Signal]gpio.PinOut, len(byName))
	for s, name := range byName {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("lcd2004: %s: unknown pin %q", s, name)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("lcd2004: %s: %w", s, err)
		}
		pins[s] = p
	}
	return NewPinOutputs(pins)
}

func (p *PinOutputs) Set(s Signal, l gpio.Level) error {
	pin, ok := p.pins[s]
	if !ok {
		return fmt.Errorf("no pin for %s", s)
	}
	return pin.Out(l)
}

func (p *PinOutputs) String() string {
	return fmt.Sprintf("RS=%s E=%s D4=%s D5=%s D6=%s D7=%s",
		p.pins[RS], p.pins[E], p.pins[D4], p.pins[D5], p.pins[D6], p.pins[D7])
}
