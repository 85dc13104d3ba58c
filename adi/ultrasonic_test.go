package adi

import (
	"testing"

	"triport-go/errcode"
)

func TestUltrasonicInitEchoAsymmetry(t *testing.T) {
	d, _ := newTestDriver()

	// Echo on the anchor port succeeds.
	ult, err := d.UltrasonicInit(5, 6)
	if err != nil {
		t.Fatalf("UltrasonicInit(5,6): %v", err)
	}
	if ult.Port() != 5 {
		t.Fatalf("handle port = %d, want 5", ult.Port())
	}
	cfg, _ := d.PortConfigGet(5)
	if cfg != ConfigLegacyUltrasonic {
		t.Fatalf("echo config = %v, want legacy-ultrasonic", cfg)
	}

	// Swapped wires: the pair itself is fine but echo is not the anchor.
	if _, err := d.UltrasonicInit(6, 5); errcode.Of(err) != errcode.InvalidPair {
		t.Fatalf("UltrasonicInit(6,5): err=%v, want invalid_pair", err)
	}

	// Plain bad pairs fail the same way encoders do.
	if _, err := d.UltrasonicInit(1, 3); errcode.Of(err) != errcode.InvalidPair {
		t.Fatalf("UltrasonicInit(1,3): err=%v, want invalid_pair", err)
	}
}

func TestUltrasonicGetShutdown(t *testing.T) {
	d, tr := newTestDriver()

	ult, err := d.UltrasonicInit(1, 2)
	if err != nil {
		t.Fatalf("UltrasonicInit: %v", err)
	}
	tr.dev.val[0] = 743

	v, err := ult.Get()
	if err != nil || v != 743 {
		t.Fatalf("Get = %d,%v want 743", v, err)
	}

	if err := ult.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	cfg, _ := d.PortConfigGet(1)
	if cfg != ConfigUndefined {
		t.Fatalf("config after shutdown = %v, want undefined", cfg)
	}
	if _, err := ult.Get(); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("Get after shutdown: %v", err)
	}
}
