// Package config loads declarative port profiles and applies them to a
// driver at start-up.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"triport-go/adi"
)

// Profile describes the desired configuration of one port bank.
type Profile struct {
	Ports       []PortAssignment `yaml:"ports"`
	Encoders    []EncoderSpec    `yaml:"encoders"`
	Ultrasonics []UltrasonicSpec `yaml:"ultrasonics"`
	Monitor     []MonitorSpec    `yaml:"monitor"`
}

// PortAssignment configures a single port for a device class. Port accepts
// both numeric ("3") and letter ("c") identifiers.
type PortAssignment struct {
	Port   string `yaml:"port"`
	Config string `yaml:"config"`
}

// EncoderSpec claims an adjacent port pair for a quadrature encoder.
type EncoderSpec struct {
	Top      string `yaml:"top"`
	Bottom   string `yaml:"bottom"`
	Reversed bool   `yaml:"reversed"`
}

// UltrasonicSpec claims an adjacent port pair for an ultrasonic sensor. The
// echo wire must land on the first-of-pair port.
type UltrasonicSpec struct {
	Echo string `yaml:"echo"`
	Ping string `yaml:"ping"`
}

// MonitorSpec asks the port monitor service to poll one port. Apply does not
// consume these; the daemon forwards them to the service over the bus.
type MonitorSpec struct {
	Port     string `yaml:"port"`
	Kind     string `yaml:"kind"`
	PeriodMS int    `yaml:"period_ms"`
}

// Devices holds the two-wire handles created by Apply, in profile order.
type Devices struct {
	Encoders    []adi.Encoder
	Ultrasonics []adi.Ultrasonic
}

// Load reads and parses a profile file.
func Load(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a profile document.
func Parse(raw []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("config: parse: %w", err)
	}
	return p, nil
}

// Apply configures every assignment and claims every two-wire pair on the
// given driver. It stops at the first failure; earlier assignments remain
// applied.
func (p Profile) Apply(d *adi.Driver) (Devices, error) {
	var out Devices

	for _, a := range p.Ports {
		port, err := parsePort(a.Port)
		if err != nil {
			return out, fmt.Errorf("config: port %q: %w", a.Port, err)
		}
		cfg, err := adi.ParsePortConfig(a.Config)
		if err != nil {
			return out, fmt.Errorf("config: port %q: unknown config %q", a.Port, a.Config)
		}
		if err := d.PortConfigSet(port, cfg); err != nil {
			return out, fmt.Errorf("config: port %q: %w", a.Port, err)
		}
	}

	for _, e := range p.Encoders {
		top, err := parsePort(e.Top)
		if err != nil {
			return out, fmt.Errorf("config: encoder top %q: %w", e.Top, err)
		}
		bottom, err := parsePort(e.Bottom)
		if err != nil {
			return out, fmt.Errorf("config: encoder bottom %q: %w", e.Bottom, err)
		}
		enc, err := d.EncoderInit(top, bottom, e.Reversed)
		if err != nil {
			return out, fmt.Errorf("config: encoder %s/%s: %w", e.Top, e.Bottom, err)
		}
		out.Encoders = append(out.Encoders, enc)
	}

	for _, u := range p.Ultrasonics {
		echo, err := parsePort(u.Echo)
		if err != nil {
			return out, fmt.Errorf("config: ultrasonic echo %q: %w", u.Echo, err)
		}
		ping, err := parsePort(u.Ping)
		if err != nil {
			return out, fmt.Errorf("config: ultrasonic ping %q: %w", u.Ping, err)
		}
		ult, err := d.UltrasonicInit(echo, ping)
		if err != nil {
			return out, fmt.Errorf("config: ultrasonic %s/%s: %w", u.Echo, u.Ping, err)
		}
		out.Ultrasonics = append(out.Ultrasonics, ult)
	}

	return out, nil
}

// parsePort converts a profile port identifier to the driver's external
// form: a number stays a number, a single letter becomes its rune value.
func parsePort(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if len(s) == 1 {
		return int(s[0]), nil
	}
	return 0, fmt.Errorf("not a port identifier")
}
