package adi

import "testing"

func TestMotorSetClamps(t *testing.T) {
	d, tr := newTestDriver()
	if err := d.PortConfigSet(1, ConfigLegacyPWM); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// The fake hardware stores motor writes in offset encoding (v + 127).
	if err := d.MotorSet(1, 200); err != nil {
		t.Fatalf("MotorSet(200): %v", err)
	}
	over := tr.dev.val[0]
	if err := d.MotorSet(1, 127); err != nil {
		t.Fatalf("MotorSet(127): %v", err)
	}
	if tr.dev.val[0] != over {
		t.Fatalf("MotorSet(200) wrote %d, MotorSet(127) wrote %d; want identical", over, tr.dev.val[0])
	}

	if err := d.MotorSet(1, -200); err != nil {
		t.Fatalf("MotorSet(-200): %v", err)
	}
	under := tr.dev.val[0]
	if err := d.MotorSet(1, -128); err != nil {
		t.Fatalf("MotorSet(-128): %v", err)
	}
	if tr.dev.val[0] != under {
		t.Fatalf("MotorSet(-200) wrote %d, MotorSet(-128) wrote %d; want identical", under, tr.dev.val[0])
	}
}

func TestMotorGetInvertsOffsetEncoding(t *testing.T) {
	d, _ := newTestDriver()
	if err := d.PortConfigSet(3, ConfigLegacyPWM); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for _, s := range []int{-128, -1, 0, 1, 64, 127} {
		if err := d.MotorSet(3, s); err != nil {
			t.Fatalf("MotorSet(%d): %v", s, err)
		}
		got, err := d.MotorGet(3)
		if err != nil {
			t.Fatalf("MotorGet after set %d: %v", s, err)
		}
		if got != int32(s) {
			t.Fatalf("MotorGet after MotorSet(%d) = %d", s, got)
		}
	}
}

func TestMotorStop(t *testing.T) {
	d, _ := newTestDriver()
	if err := d.PortConfigSet(2, ConfigLegacyServo); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := d.MotorSet(2, 90); err != nil {
		t.Fatalf("MotorSet: %v", err)
	}
	if err := d.MotorStop(2); err != nil {
		t.Fatalf("MotorStop: %v", err)
	}
	got, err := d.MotorGet(2)
	if err != nil || got != 0 {
		t.Fatalf("MotorGet after stop = %d,%v want 0", got, err)
	}
}
