/*
Copyright 2024 Tim St. Pierre
Options for lcd2004 character display
*/
package lcd2004

import (
	"errors"
	"fmt"
	"time"
)

// Pins names the GPIO lines of the bus, as known to gpioreg.
type Pins struct {
	RS string
	E  string
	D4 string
	D5 string
	D6 string
	D7 string
}

type Opts struct {
	// How many lines does the display have
	Lines uint8
	Cols  uint8
	// DDRAM address of the first cell of each line. Four line displays
	// interleave lines 1/3 and 2/4 so this is not a linear table.
	RowAddresses []byte
	Pins         Pins
	// Wait before and after each enable pulse
	SettleDelay time.Duration
	// Time the enable line is held high
	PulseWidth time.Duration
	// Wait after clear and home, which are slow on the controller
	ClearDelay time.Duration
}

var DefaultOpts = Opts{
	Lines:        4,
	Cols:         20,
	RowAddresses: []byte{0x00, 0x40, 0x14, 0x54},
	Pins: Pins{
		RS: "GPIO25",
		E:  "GPIO24",
		D4: "GPIO23",
		D5: "GPIO17",
		D6: "GPIO27",
		D7: "GPIO22",
	},
	SettleDelay: 50 * time.Microsecond,
	PulseWidth:  50 * time.Microsecond,
	ClearDelay:  2 * time.Millisecond,
}

func (o *Opts) validate() error {
	if o.Lines == 0 || o.Cols == 0 {
		return errors.New("lcd2004: lines and cols must be non-zero")
	}
	if len(o.RowAddresses) != int(o.Lines) {
		return fmt.Errorf("lcd2004: %d row addresses for %d lines", len(o.RowAddresses), o.Lines)
	}
	for i, a := range o.RowAddresses {
		if a >= CMD_DDRAM_Set {
			return fmt.Errorf("lcd2004: row %d address %#02x out of range", i, a)
		}
	}
	return nil
}
