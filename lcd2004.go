/*
Copyright 2024 Tim St. Pierre
Controls a 2004 character LCD display over a 4-bit parallel GPIO bus
*/
package lcd2004

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

const (
	// Commands
	CMD_Clear_Display        = 0x01
	CMD_Return_Home          = 0x02
	CMD_Entry_Mode           = 0x04
	CMD_Display_Control      = 0x08
	CMD_Cursor_Display_Shift = 0x10
	CMD_Function_Set         = 0x20
	CMD_DDRAM_Set            = 0x80

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode
	OPT_Cursor_Shift   = 0x01 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control
	OPT_Enable_Cursor  = 0x02 // CMD_Display_Control
	OPT_Enable_Blink   = 0x01 // CMD_Display_Control
	OPT_8_Bit          = 0x10 // CMD_Function_Set 0 = 4 bit
	OPT_2_Lines        = 0x08 // CMD_Function_Set 0 = 1 line
	OPT_5x10_Dots      = 0x04 // CMD_Function_Set 0 = 5x7 dots

	// Reset sequence. Each nibble of these lands on the controller as a
	// function set, which forces 8-bit mode and then switches to 4-bit mode
	// whatever state the controller powered up in.
	INIT_Reset_8_Bit = 0x33
	INIT_Reset_4_Bit = 0x32
)

// Signal is one of the write-only lines of the parallel bus.
type Signal uint8

const (
	RS Signal = iota // register select, high for character data
	E                // enable, latches the data lines on the falling edge
	D4
	D5
	D6
	D7
)

var dataLines = [4]Signal{D4, D5, D6, D7}

func (s Signal) String() string {
	switch s {
	case RS:
		return "RS"
	case E:
		return "E"
	case D4, D5, D6, D7:
		return fmt.Sprintf("D%d", 4+s-D4)
	}
	return fmt.Sprintf("Signal(%d)", uint8(s))
}

// DigitalOutputs drives the bus lines. Nothing is ever read back from the
// controller.
type DigitalOutputs interface {
	Set(s Signal, l gpio.Level) error
}

var (
	// ErrDimension is returned when a frame does not match the display size.
	ErrDimension = errors.New("lcd2004: dimension mismatch")
	// ErrNotInitialized is returned when writing before Init.
	ErrNotInitialized = errors.New("lcd2004: display not initialized")
)

type Dev struct {
	out         DigitalOutputs
	opts        Opts
	initialized bool
	sleep       func(time.Duration)
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcd2004{%dx%d %v}", d.opts.Cols, d.opts.Lines, d.out)
}

// New returns a new device driving the given outputs. It does not talk to
// the controller until Init is called.
//
// Use default options if nil is used.
func New(out DigitalOutputs, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	o := *opts
	o.RowAddresses = append([]byte(nil), opts.RowAddresses...)
	return &Dev{
		out:   out,
		opts:  o,
		sleep: time.Sleep,
	}, nil
}

// NewGPIO opens the pins named in opts.Pins and returns a device using
// them. host.Init must have been called first.
func NewGPIO(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	out, err := OpenPins(opts.Pins)
	if err != nil {
		return nil, err
	}
	return New(out, opts)
}

// Init puts the controller in 4-bit, 2-line mode with the display on, the
// cursor off and an incrementing cursor, then clears it. The order of the
// commands is fixed by the controller.
func (d *Dev) Init() error {
	log.Infof("Initializing %s", d)
	seq := []byte{
		INIT_Reset_8_Bit,
		INIT_Reset_4_Bit,
		CMD_Function_Set | OPT_2_Lines,
		CMD_Display_Control | OPT_Enable_Display,
		CMD_Entry_Mode | OPT_Increment,
	}
	for _, c := range seq {
		if err := d.command(c); err != nil {
			return err
		}
	}
	if err := d.Clear(); err != nil {
		return err
	}
	d.initialized = true
	return nil
}

// Halt blanks the screen.
func (d *Dev) Halt() error {
	if !d.initialized {
		return nil
	}
	return d.Clear()
}

func (d *Dev) Clear() error {
	if err := d.command(CMD_Clear_Display); err != nil {
		return err
	}
	d.sleep(d.opts.ClearDelay)
	return nil
}

func (d *Dev) Home() error {
	if err := d.command(CMD_Return_Home); err != nil {
		return err
	}
	d.sleep(d.opts.ClearDelay)
	return nil
}

// WriteFrame writes every row of f to the display. The frame must have
// exactly Lines rows of exactly Cols bytes.
func (d *Dev) WriteFrame(f Frame) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if err := f.Check(int(d.opts.Lines), int(d.opts.Cols)); err != nil {
		return err
	}
	for row, line := range f {
		if err := d.command(CMD_DDRAM_Set | d.opts.RowAddresses[row]); err != nil {
			return err
		}
		for i := 0; i < len(line); i++ {
			if err := d.transfer(line[i], true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dev) Rows() int {
	return int(d.opts.Lines)
}

func (d *Dev) Cols() int {
	return int(d.opts.Cols)
}

func (d *Dev) command(data byte) error {
	return d.transfer(data, false)
}

// transfer sends one byte as two nibbles, high nibble first.
func (d *Dev) transfer(data byte, char bool) error {
	log.Debugf("Writing %08b %#02x char=%t", data, data, char)
	if err := d.out.Set(RS, gpio.Level(char)); err != nil {
		return fmt.Errorf("lcd2004: %s: %w", RS, err)
	}
	if err := d.nibble(data >> 4); err != nil {
		return err
	}
	return d.nibble(data & 0x0F)
}

func (d *Dev) nibble(n byte) error {
	for bit, s := range dataLines {
		if err := d.out.Set(s, gpio.Level(n>>bit&0x01 == 0x01)); err != nil {
			return fmt.Errorf("lcd2004: %s: %w", s, err)
		}
	}
	return d.enable()
}

// enable pulses E so the controller latches the data lines.
func (d *Dev) enable() error {
	d.sleep(d.opts.SettleDelay)
	if err := d.out.Set(E, gpio.High); err != nil {
		return fmt.Errorf("lcd2004: %s: %w", E, err)
	}
	d.sleep(d.opts.PulseWidth)
	if err := d.out.Set(E, gpio.Low); err != nil {
		return fmt.Errorf("lcd2004: %s: %w", E, err)
	}
	d.sleep(d.opts.SettleDelay)
	return nil
}
