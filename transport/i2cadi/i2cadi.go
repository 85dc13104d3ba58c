// Package i2cadi drives an ADI expander sitting behind an I²C bus. The
// expander exposes a flat register map: an identity register, one config
// byte per port, and one big-endian 32-bit value register per port.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
package i2cadi

import (
	"sync"

	"tinygo.org/x/drivers"

	"triport-go/adi"
	"triport-go/errcode"
)

// Default I²C address of the expander.
const Address = 0x58

// Register map.
const (
	regWhoAmI     = 0x00
	regConfigBase = 0x10 // one byte per port
	regValueBase  = 0x20 // four bytes per port, big-endian

	whoAmI = 0xAD
)

// Bus owns one expander on one I²C bus and implements adi.Transport. The
// claim primitive is a plain mutex: transactions from concurrent goroutines
// are serialised, never interleaved on the wire.
type Bus struct {
	bus  drivers.I2C
	addr uint16
	mu   sync.Mutex
	buf  [5]byte // reuse buffer to avoid allocations
}

// New probes the expander's identity register and returns a transport over
// it. A response from some other device class is errcode.DeviceMismatch; no
// response at all is errcode.PortBusy.
func New(bus drivers.I2C, addr uint16) (*Bus, error) {
	if addr == 0 {
		addr = Address
	}
	b := &Bus{bus: bus, addr: addr}
	var id [1]byte
	if err := bus.Tx(addr, []byte{regWhoAmI}, id[:]); err != nil {
		return nil, &errcode.E{C: errcode.PortBusy, Op: "i2cadi.New", Err: err}
	}
	if id[0] != whoAmI {
		return nil, &errcode.E{C: errcode.DeviceMismatch, Op: "i2cadi.New"}
	}
	return b, nil
}

// Claim blocks until the bus is free for one transaction.
func (b *Bus) Claim() (adi.Device, error) {
	b.mu.Lock()
	return (*dev)(b), nil
}

// Release frees the bus claimed by the last successful Claim.
func (b *Bus) Release() { b.mu.Unlock() }

type dev Bus

func (d *dev) ConfigSet(index int, cfg adi.PortConfig) error {
	d.buf[0] = byte(regConfigBase + index)
	d.buf[1] = byte(cfg)
	return d.bus.Tx(d.addr, d.buf[:2], nil)
}

func (d *dev) ConfigGet(index int) (adi.PortConfig, error) {
	d.buf[0] = byte(regConfigBase + index)
	var r [1]byte
	if err := d.bus.Tx(d.addr, d.buf[:1], r[:]); err != nil {
		return adi.ConfigUndefined, err
	}
	return adi.PortConfig(r[0]), nil
}

func (d *dev) ValueSet(index int, v int32) error {
	d.buf[0] = byte(regValueBase + 4*index)
	d.buf[1] = byte(uint32(v) >> 24)
	d.buf[2] = byte(uint32(v) >> 16)
	d.buf[3] = byte(uint32(v) >> 8)
	d.buf[4] = byte(uint32(v))
	return d.bus.Tx(d.addr, d.buf[:5], nil)
}

func (d *dev) ValueGet(index int) (int32, error) {
	d.buf[0] = byte(regValueBase + 4*index)
	var r [4]byte
	if err := d.bus.Tx(d.addr, d.buf[:1], r[:]); err != nil {
		return 0, err
	}
	u := uint32(r[0])<<24 | uint32(r[1])<<16 | uint32(r[2])<<8 | uint32(r[3])
	return int32(u), nil
}
