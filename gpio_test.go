package lcd2004

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func testPins() (map[Signal]*gpiotest.Pin, map[Signal]gpio.PinOut) {
	fake := map[Signal]*gpiotest.Pin{}
	outs := map[Signal]gpio.PinOut{}
	for i, s := range []Signal{RS, E, D4, D5, D6, D7} {
		p := &gpiotest.Pin{N: "LCD_" + s.String(), Num: 900 + i}
		fake[s] = p
		outs[s] = p
	}
	return fake, outs
}

func TestPinOutputs_Set(t *testing.T) {
	fake, outs := testPins()
	p, err := NewPinOutputs(outs)
	if err != nil {
		t.Fatalf("NewPinOutputs: %v", err)
	}
	if err := p.Set(D6, gpio.High); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if fake[D6].Read() != gpio.High || fake[D5].Read() != gpio.Low {
		t.Fatalf("D6=%s D5=%s", fake[D6].Read(), fake[D5].Read())
	}
}

func TestNewPinOutputs_Missing(t *testing.T) {
	_, outs := testPins()
	delete(outs, E)
	if _, err := NewPinOutputs(outs); err == nil {
		t.Fatal("NewPinOutputs accepted a bus without E")
	}
}

func TestDev_OverGPIO(t *testing.T) {
	fake, outs := testPins()
	p, err := NewPinOutputs(outs)
	if err != nil {
		t.Fatalf("NewPinOutputs: %v", err)
	}
	d, err := New(p, testOpts())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.sleep = func(time.Duration) {}
	if err := d.transfer(0x5A, true); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	// Low nibble 0xA stays on the bus after the second pulse.
	want := map[Signal]gpio.Level{RS: gpio.High, E: gpio.Low, D4: gpio.Low, D5: gpio.High, D6: gpio.Low, D7: gpio.High}
	for s, l := range want {
		if got := fake[s].Read(); got != l {
			t.Errorf("%s = %s, want %s", s, got, l)
		}
	}
}

func TestOpenPins(t *testing.T) {
	fake, _ := testPins()
	names := Pins{}
	for s, p := range fake {
		p.N = "LCDTEST_" + s.String()
		p.Num += 100
		p.L = gpio.High
		if err := gpioreg.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	names.RS, names.E = fake[RS].N, fake[E].N
	names.D4, names.D5, names.D6, names.D7 = fake[D4].N, fake[D5].N, fake[D6].N, fake[D7].N

	p, err := OpenPins(names)
	if err != nil {
		t.Fatalf("OpenPins: %v", err)
	}
	for s, pin := range fake {
		if pin.Read() != gpio.Low {
			t.Errorf("%s not driven low on open", s)
		}
	}
	if err := p.Set(RS, gpio.High); err != nil || fake[RS].Read() != gpio.High {
		t.Fatalf("Set RS: err=%v level=%s", err, fake[RS].Read())
	}

	names.E = "LCDTEST_NOPE"
	if _, err := OpenPins(names); err == nil {
		t.Fatal("OpenPins accepted an unknown pin")
	}
}
