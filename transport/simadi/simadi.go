// Package simadi is an in-memory stand-in for the ADI expander hardware. It
// implements adi.Transport with a plain mutex as the claim primitive and a
// register bank per port, and is used by tests and the selftest command.
//
// The simulation mirrors two hardware behaviours the driver depends on:
// motor-configured ports store writes in offset encoding (value + 127), and
// resetting a port's configuration clears its raw register.
package simadi

import (
	"sync"

	"triport-go/adi"
)

// Sim is a simulated ADI expander. The zero value is not usable; call New.
type Sim struct {
	mu sync.Mutex

	cfg [adi.NumPorts]adi.PortConfig
	val [adi.NumPorts]int32

	// ClaimErr, when non-nil, is returned by every Claim. Tests use it to
	// exercise the port_busy / device_mismatch paths.
	ClaimErr error
}

func New() *Sim { return &Sim{} }

// Claim blocks until the simulated interface is free.
func (s *Sim) Claim() (adi.Device, error) {
	if s.ClaimErr != nil {
		return nil, s.ClaimErr
	}
	s.mu.Lock()
	return (*dev)(s), nil
}

// Release frees the interface claimed by the last successful Claim.
func (s *Sim) Release() { s.mu.Unlock() }

// SetInput injects a raw input value at a zero-based port index, as if a
// sensor were driving the wire. Safe to call concurrently with driver use.
func (s *Sim) SetInput(index int, v int32) {
	s.mu.Lock()
	s.val[index] = v
	s.mu.Unlock()
}

// Snapshot returns copies of the simulated config and value banks.
func (s *Sim) Snapshot() ([adi.NumPorts]adi.PortConfig, [adi.NumPorts]int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.val
}

// dev is the raw register surface handed out by Claim. It aliases the Sim so
// the mutex held by Claim covers every access.
type dev Sim

func (d *dev) ConfigSet(index int, cfg adi.PortConfig) error {
	d.cfg[index] = cfg
	if cfg == adi.ConfigUndefined {
		d.val[index] = 0
	}
	return nil
}

func (d *dev) ConfigGet(index int) (adi.PortConfig, error) {
	return d.cfg[index], nil
}

func (d *dev) ValueSet(index int, v int32) error {
	if c := d.cfg[index]; c == adi.ConfigLegacyPWM || c == adi.ConfigLegacyServo {
		v += adi.MotorMaxSpeed
	}
	d.val[index] = v
	return nil
}

func (d *dev) ValueGet(index int) (int32, error) {
	return d.val[index], nil
}
