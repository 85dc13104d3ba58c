package adi

import (
	"testing"

	"triport-go/errcode"
)

func TestEncoderInit(t *testing.T) {
	d, _ := newTestDriver()

	enc, err := d.EncoderInit(3, 4, false)
	if err != nil {
		t.Fatalf("EncoderInit(3,4): %v", err)
	}
	if enc.Port() != 3 {
		t.Fatalf("anchor = %d, want 3", enc.Port())
	}
	cfg, err := d.PortConfigGet(3)
	if err != nil || cfg != ConfigLegacyEncoder {
		t.Fatalf("anchor config = %v,%v want legacy-encoder", cfg, err)
	}

	// Order does not matter.
	enc2, err := d.EncoderInit(4, 3, false)
	if err != nil || enc2.Port() != 3 {
		t.Fatalf("EncoderInit(4,3) = %d,%v want anchor 3", enc2.Port(), err)
	}
}

func TestEncoderInitRejectsBadPairs(t *testing.T) {
	d, tr := newTestDriver()

	cases := []struct {
		top, bottom int
		err         error
	}{
		{3, 5, errcode.InvalidPair}, // not adjacent
		{4, 5, errcode.InvalidPair}, // anchor not first-of-pair
		{6, 6, errcode.InvalidPair}, // same port twice
		{9, 10, errcode.OutOfRange},
	}
	for _, c := range cases {
		if _, err := d.EncoderInit(c.top, c.bottom, true); errcode.Of(err) != c.err {
			t.Fatalf("EncoderInit(%d,%d): err=%v, want %v", c.top, c.bottom, err, c.err)
		}
	}
	if tr.dev.configSets != 0 {
		t.Fatalf("rejected pairs must not configure hardware")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, rev := range d.reversed {
		if rev {
			t.Fatalf("rejected pairs must not touch reversal slot %d", i)
		}
	}
}

func TestEncoderGetReversal(t *testing.T) {
	d, tr := newTestDriver()

	fwd, err := d.EncoderInit(1, 2, false)
	if err != nil {
		t.Fatalf("EncoderInit forward: %v", err)
	}
	rev, err := d.EncoderInit(5, 6, true)
	if err != nil {
		t.Fatalf("EncoderInit reversed: %v", err)
	}

	tr.dev.val[0] = 250
	tr.dev.val[4] = 250

	f, err := fwd.Get()
	if err != nil {
		t.Fatalf("forward Get: %v", err)
	}
	r, err := rev.Get()
	if err != nil {
		t.Fatalf("reversed Get: %v", err)
	}
	if f != 250 || r != -250 {
		t.Fatalf("forward=%d reversed=%d, want 250 and -250", f, r)
	}
}

func TestEncoderResetAndShutdown(t *testing.T) {
	d, tr := newTestDriver()

	enc, err := d.EncoderInit(7, 8, false)
	if err != nil {
		t.Fatalf("EncoderInit: %v", err)
	}
	tr.dev.val[6] = 9000

	if err := enc.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if v, _ := enc.Get(); v != 0 {
		t.Fatalf("ticks after reset = %d, want 0", v)
	}

	if err := enc.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	cfg, _ := d.PortConfigGet(7)
	if cfg != ConfigUndefined {
		t.Fatalf("config after shutdown = %v, want undefined", cfg)
	}
	// The handle is dead once the port is released.
	if _, err := enc.Get(); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("Get after shutdown: %v", err)
	}
}

func TestEncoderZeroHandle(t *testing.T) {
	var enc Encoder
	if _, err := enc.Get(); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("zero handle Get: %v", err)
	}
	if err := enc.Reset(); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("zero handle Reset: %v", err)
	}
}
