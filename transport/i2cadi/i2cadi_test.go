package i2cadi

import (
	"errors"
	"testing"

	"triport-go/adi"
	"triport-go/errcode"
)

// fakeI2C emulates the expander's register map behind drivers.I2C.
type fakeI2C struct {
	id   byte
	regs [0x40]byte
	err  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if len(w) == 0 {
		return errors.New("empty write")
	}
	reg := w[0]
	if len(w) > 1 { // register write
		copy(f.regs[reg:], w[1:])
		return nil
	}
	if reg == regWhoAmI {
		if len(r) > 0 {
			r[0] = f.id
		}
		return nil
	}
	copy(r, f.regs[reg:])
	return nil
}

func TestNewProbesIdentity(t *testing.T) {
	if _, err := New(&fakeI2C{id: whoAmI}, 0); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := New(&fakeI2C{id: 0x99}, 0); errcode.Of(err) != errcode.DeviceMismatch {
		t.Fatalf("wrong identity: err=%v, want device_mismatch", err)
	}
	if _, err := New(&fakeI2C{err: errors.New("nak")}, 0); errcode.Of(err) != errcode.PortBusy {
		t.Fatalf("dead bus: err=%v, want port_busy", err)
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	fi := &fakeI2C{id: whoAmI}
	b, err := New(fi, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dev, err := b.Claim()
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := dev.ConfigSet(3, adi.ConfigDigitalOut); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}
	cfg, err := dev.ConfigGet(3)
	if err != nil || cfg != adi.ConfigDigitalOut {
		t.Fatalf("ConfigGet = %v,%v", cfg, err)
	}
	if err := dev.ValueSet(3, -1234567); err != nil {
		t.Fatalf("ValueSet: %v", err)
	}
	v, err := dev.ValueGet(3)
	if err != nil || v != -1234567 {
		t.Fatalf("ValueGet = %d,%v want -1234567", v, err)
	}
	b.Release()
}

func TestDriverOverI2C(t *testing.T) {
	fi := &fakeI2C{id: whoAmI}
	b, err := New(fi, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d := adi.New(b, adi.Config{})

	if err := d.PinMode(1, adi.ModeOutput); err != nil {
		t.Fatalf("PinMode: %v", err)
	}
	if err := d.DigitalWrite(1, true); err != nil {
		t.Fatalf("DigitalWrite: %v", err)
	}
	if fi.regs[regValueBase+3] != 1 {
		t.Fatalf("value register not written: %v", fi.regs[regValueBase:regValueBase+4])
	}
}
