// adi/ultrasonic.go
package adi

import "triport-go/errcode"

// Ultrasonic addresses a two-wire range sensor through its echo port. The
// zero value is not a usable handle; obtain one from UltrasonicInit.
type Ultrasonic struct {
	d    *Driver
	port int // validated 1-based echo (anchor) port
}

// UltrasonicInit claims an adjacent port pair for an ultrasonic sensor. The
// two wires are not interchangeable: the echo wire must land on the anchor
// (first-of-pair) port, otherwise the init fails with errcode.InvalidPair.
func (d *Driver) UltrasonicInit(portEcho, portPing int) (Ultrasonic, error) {
	anchor, err := resolvePair(portEcho, portPing)
	if err != nil {
		return Ultrasonic{}, err
	}
	if anchor != portEcho {
		return Ultrasonic{}, errcode.InvalidPair
	}
	if err := d.PortConfigSet(portEcho, ConfigLegacyUltrasonic); err != nil {
		return Ultrasonic{}, err
	}
	return Ultrasonic{d: d, port: portEcho}, nil
}

// Port reports the echo port the sensor is addressed by.
func (u Ultrasonic) Port() int { return u.port }

// Get returns the current range reading.
func (u Ultrasonic) Get() (int32, error) {
	idx, err := u.validate()
	if err != nil {
		return 0, err
	}
	return u.d.valueGet(idx)
}

// Shutdown releases the pair by resetting the echo port to undefined.
func (u Ultrasonic) Shutdown() error {
	idx, err := u.validate()
	if err != nil {
		return err
	}
	return u.d.configSet(idx, ConfigUndefined)
}

func (u Ultrasonic) validate() (int, error) {
	if u.d == nil {
		return 0, errcode.InvalidConfig
	}
	idx, err := translatePort(u.port)
	if err != nil {
		return 0, err
	}
	if err := u.d.requireConfig(idx, ConfigLegacyUltrasonic); err != nil {
		return 0, err
	}
	return idx, nil
}
