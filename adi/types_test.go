package adi

import "testing"

func TestPortConfigNamesRoundTrip(t *testing.T) {
	for c, name := range configNames {
		if c.String() != name {
			t.Fatalf("String(%d) = %q, want %q", c, c.String(), name)
		}
		got, err := ParsePortConfig(name)
		if err != nil || got != c {
			t.Fatalf("ParsePortConfig(%q) = %v,%v want %v", name, got, err, c)
		}
	}
	if PortConfig(200).String() != "undefined" {
		t.Fatalf("unknown config did not stringify as undefined")
	}
	if _, err := ParsePortConfig("warp-core"); err == nil {
		t.Fatalf("unknown name accepted")
	}
}

func TestParsePinMode(t *testing.T) {
	cases := map[string]PinMode{
		"input":         ModeInput,
		"output":        ModeOutput,
		"input-analog":  ModeInputAnalog,
		"output-analog": ModeOutputAnalog,
	}
	for name, want := range cases {
		got, err := ParsePinMode(name)
		if err != nil || got != want {
			t.Fatalf("ParsePinMode(%q) = %v,%v", name, got, err)
		}
	}
	if _, err := ParsePinMode("sideways"); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}
