package adi

import (
	"testing"

	"triport-go/errcode"
)

func TestDigitalWriteRead(t *testing.T) {
	d, tr := newTestDriver()

	if err := d.PinMode(1, ModeOutput); err != nil {
		t.Fatalf("PinMode output: %v", err)
	}
	if err := d.DigitalWrite(1, true); err != nil {
		t.Fatalf("DigitalWrite: %v", err)
	}
	if tr.dev.val[0] != 1 {
		t.Fatalf("raw after write true = %d, want 1", tr.dev.val[0])
	}
	if err := d.DigitalWrite(1, false); err != nil {
		t.Fatalf("DigitalWrite false: %v", err)
	}
	if tr.dev.val[0] != 0 {
		t.Fatalf("raw after write false = %d, want 0", tr.dev.val[0])
	}

	// Reading back requires the port to be a digital input; cross-type read
	// must fail.
	if _, err := d.DigitalRead(1); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("DigitalRead on output port: %v", err)
	}

	if err := d.PinMode(1, ModeInput); err != nil {
		t.Fatalf("PinMode input: %v", err)
	}
	tr.dev.val[0] = 1
	lvl, err := d.DigitalRead(1)
	if err != nil || !lvl {
		t.Fatalf("DigitalRead = %v,%v want true", lvl, err)
	}
	// And writing an input port fails.
	if err := d.DigitalWrite(1, true); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("DigitalWrite on input port: %v", err)
	}
}

func TestPinModeMapping(t *testing.T) {
	d, _ := newTestDriver()

	modes := map[PinMode]PortConfig{
		ModeInput:        ConfigDigitalIn,
		ModeOutput:       ConfigDigitalOut,
		ModeInputAnalog:  ConfigAnalogIn,
		ModeOutputAnalog: ConfigAnalogOut,
	}
	for mode, want := range modes {
		if err := d.PinMode(2, mode); err != nil {
			t.Fatalf("PinMode(%v): %v", mode, err)
		}
		cfg, err := d.PortConfigGet(2)
		if err != nil || cfg != want {
			t.Fatalf("after PinMode(%v): config=%v,%v want %v", mode, cfg, err, want)
		}
	}

	if err := d.PinMode(2, PinMode(42)); errcode.Of(err) != errcode.InvalidArg {
		t.Fatalf("PinMode(42): err=%v, want invalid_arg", err)
	}
}
