// adi/encoder.go
package adi

import "triport-go/errcode"

// Encoder addresses a quadrature encoder through its anchor port. The zero
// value is not a usable handle; obtain one from EncoderInit.
type Encoder struct {
	d    *Driver
	port int // validated 1-based anchor port
}

// EncoderInit claims an adjacent port pair for a quadrature encoder. Port
// order does not matter; the pair resolver picks the anchor. reversed flips
// the sign of every subsequent Get on this pair.
func (d *Driver) EncoderInit(portTop, portBottom int, reversed bool) (Encoder, error) {
	anchor, err := resolvePair(portTop, portBottom)
	if err != nil {
		return Encoder{}, err
	}
	d.mu.Lock()
	d.reversed[reversalSlot(anchor)] = reversed
	d.mu.Unlock()
	if err := d.PortConfigSet(anchor, ConfigLegacyEncoder); err != nil {
		return Encoder{}, err
	}
	return Encoder{d: d, port: anchor}, nil
}

// Port reports the anchor port the encoder is addressed by.
func (e Encoder) Port() int { return e.port }

// Get returns the current tick count, negated when the pair was initialised
// reversed.
func (e Encoder) Get() (int32, error) {
	idx, err := e.validate()
	if err != nil {
		return 0, err
	}
	v, err := e.d.valueGet(idx)
	if err != nil {
		return 0, err
	}
	e.d.mu.Lock()
	rev := e.d.reversed[reversalSlot(e.port)]
	e.d.mu.Unlock()
	if rev {
		return -v, nil
	}
	return v, nil
}

// Reset zeroes the tick count.
func (e Encoder) Reset() error {
	idx, err := e.validate()
	if err != nil {
		return err
	}
	return e.d.valueSet(idx, 0)
}

// Shutdown releases the pair by resetting the anchor to undefined.
func (e Encoder) Shutdown() error {
	idx, err := e.validate()
	if err != nil {
		return err
	}
	return e.d.configSet(idx, ConfigUndefined)
}

func (e Encoder) validate() (int, error) {
	if e.d == nil {
		return 0, errcode.InvalidConfig
	}
	idx, err := translatePort(e.port)
	if err != nil {
		return 0, err
	}
	if err := e.d.requireConfig(idx, ConfigLegacyEncoder); err != nil {
		return 0, err
	}
	return idx, nil
}
