// adi/driver.go

// Package adi drives a fixed bank of eight three-wire ADI ports multiplexed
// behind one shared hardware interface. Higher-level code addresses ports as
// typed logical devices (digital I/O, analog input, PWM motor, quadrature
// encoder, ultrasonic range sensor); the driver enforces the
// configuration-per-port invariant and serialises every hardware transaction
// through the Transport's claim/release discipline.
//
// Ports are addressed externally as 1-8 or 'a'-'h'/'A'-'H'. All operations
// are synchronous; failures carry an errcode.Code recoverable via
// errcode.Of.
package adi

import (
	"sync"
	"time"

	"triport-go/errcode"
	"triport-go/x/timex"
)

// Config controls non-hardware behaviour of a Driver. All fields are
// optional.
type Config struct {
	// SampleDelay is the pause between the 512 calibration samples.
	// Default is one scheduler tick (1ms).
	SampleDelay time.Duration
	// Sleep is the delay primitive used by the calibration loop. Default
	// time.Sleep; tests inject a no-op.
	Sleep func(time.Duration)
}

// analogEntry is the per-port calibration record. value holds the last raw
// reading observed by an analog read; it is refreshed without claiming the
// transport again and readers must treat it as eventually-consistent.
type analogEntry struct {
	calib int32
	mult  int32 // reserved scale factor, unused
	value int32
	typ   AnalogType
}

// Driver owns the registries for one port bank and the Transport that guards
// its shared hardware interface. All methods are safe for concurrent use.
type Driver struct {
	tr  Transport
	cfg Config

	mu       sync.Mutex // guards analog and reversed; never held across a claim
	analog   [NumPorts]analogEntry
	reversed [numTwoWire]bool
}

// New returns a Driver over the given transport. Registries start
// zero-initialised: every port is unconfigured and uncalibrated.
func New(tr Transport, cfg Config) *Driver {
	if cfg.SampleDelay <= 0 {
		cfg.SampleDelay = timex.Tick
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Driver{tr: tr, cfg: cfg}
}

// PortConfigSet configures a port for the given device class.
func (d *Driver) PortConfigSet(port int, cfg PortConfig) error {
	idx, err := translatePort(port)
	if err != nil {
		return err
	}
	return d.configSet(idx, cfg)
}

// PortConfigGet reports the hardware's current configuration for a port.
func (d *Driver) PortConfigGet(port int) (PortConfig, error) {
	idx, err := translatePort(port)
	if err != nil {
		return ConfigUndefined, err
	}
	return d.configGet(idx)
}

// ---- raw accessors (translated index, one claim per transaction) ----

func (d *Driver) configSet(idx int, cfg PortConfig) error {
	dev, err := d.tr.Claim()
	if err != nil {
		return err
	}
	defer d.tr.Release()
	return dev.ConfigSet(idx, cfg)
}

func (d *Driver) configGet(idx int) (PortConfig, error) {
	dev, err := d.tr.Claim()
	if err != nil {
		return ConfigUndefined, err
	}
	defer d.tr.Release()
	return dev.ConfigGet(idx)
}

func (d *Driver) valueSet(idx int, v int32) error {
	dev, err := d.tr.Claim()
	if err != nil {
		return err
	}
	defer d.tr.Release()
	return dev.ValueSet(idx, v)
}

func (d *Driver) valueGet(idx int) (int32, error) {
	dev, err := d.tr.Claim()
	if err != nil {
		return 0, err
	}
	defer d.tr.Release()
	return dev.ValueGet(idx)
}

// ---- type validation ----

// requireConfig fails with errcode.InvalidConfig unless the port's current
// hardware-reported configuration equals want exactly.
func (d *Driver) requireConfig(idx int, want PortConfig) error {
	cfg, err := d.configGet(idx)
	if err != nil {
		return err
	}
	if cfg != want {
		return errcode.InvalidConfig
	}
	return nil
}

// requireClass fails with errcode.InvalidConfig unless the port's current
// configuration belongs to the given compatibility class.
func (d *Driver) requireClass(idx int, ok func(PortConfig) bool) error {
	cfg, err := d.configGet(idx)
	if err != nil {
		return err
	}
	if !ok(cfg) {
		return errcode.InvalidConfig
	}
	return nil
}

func isAnalogInput(cfg PortConfig) bool {
	switch cfg {
	case ConfigAnalogIn, ConfigLegacyPot, ConfigLegacyLineSensor,
		ConfigLegacyLightSensor, ConfigLegacyAccelerometer, ConfigSmartPot:
		return true
	}
	return false
}

func isDigitalInput(cfg PortConfig) bool {
	switch cfg {
	case ConfigDigitalIn, ConfigLegacyButton, ConfigSmartButton:
		return true
	}
	return false
}

func isMotor(cfg PortConfig) bool {
	return cfg == ConfigLegacyPWM || cfg == ConfigLegacyServo
}
