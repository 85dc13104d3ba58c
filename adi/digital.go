// adi/digital.go
package adi

import "triport-go/errcode"

// DigitalRead returns the level of a digital-input-compatible port.
func (d *Driver) DigitalRead(port int) (bool, error) {
	idx, err := translatePort(port)
	if err != nil {
		return false, err
	}
	if err := d.requireClass(idx, isDigitalInput); err != nil {
		return false, err
	}
	v, err := d.valueGet(idx)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// DigitalWrite drives a port configured as digital output.
func (d *Driver) DigitalWrite(port int, level bool) error {
	idx, err := translatePort(port)
	if err != nil {
		return err
	}
	if err := d.requireConfig(idx, ConfigDigitalOut); err != nil {
		return err
	}
	var v int32
	if level {
		v = 1
	}
	return d.valueSet(idx, v)
}

// PinMode maps an Arduino-style mode onto the corresponding port
// configuration.
func (d *Driver) PinMode(port int, mode PinMode) error {
	var cfg PortConfig
	switch mode {
	case ModeInput:
		cfg = ConfigDigitalIn
	case ModeOutput:
		cfg = ConfigDigitalOut
	case ModeInputAnalog:
		cfg = ConfigAnalogIn
	case ModeOutputAnalog:
		cfg = ConfigAnalogOut
	default:
		return errcode.InvalidArg
	}
	return d.PortConfigSet(port, cfg)
}
