// Package serialadi talks to an ADI expander over a serial link using small
// fixed-size CRC-framed request/response transactions. It implements
// adi.Transport for host-side tooling; the expander end of the protocol
// lives in firmware.
package serialadi

import (
	"io"
	"sync"

	"github.com/tarm/serial"

	"triport-go/adi"
	"triport-go/errcode"
)

// Port is a serial transport to one expander. The claim primitive is a
// mutex; one request/response transaction happens on the wire at a time.
type Port struct {
	rw io.ReadWriter
	mu sync.Mutex
}

// Open dials a serial device and performs the identity handshake.
func Open(device string, baud int) (*Port, error) {
	s, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, &errcode.E{C: errcode.PortBusy, Op: "serialadi.Open", Err: err}
	}
	return New(s)
}

// New wraps an existing stream and performs the identity handshake. A peer
// that answers with the wrong magic is errcode.DeviceMismatch.
func New(rw io.ReadWriter) (*Port, error) {
	p := &Port{rw: rw}
	v, err := p.roundTrip(opPing, 0, 0)
	if err != nil {
		return nil, &errcode.E{C: errcode.PortBusy, Op: "serialadi.New", Err: err}
	}
	if uint32(v) != pingMagic {
		return nil, &errcode.E{C: errcode.DeviceMismatch, Op: "serialadi.New"}
	}
	return p, nil
}

// Claim blocks until the link is free for one transaction.
func (p *Port) Claim() (adi.Device, error) {
	p.mu.Lock()
	return (*dev)(p), nil
}

// Release frees the link claimed by the last successful Claim.
func (p *Port) Release() { p.mu.Unlock() }

// roundTrip writes one request frame and reads the full response frame.
// Callers must hold the claim mutex (New is the only exception; the Port has
// not been shared yet at that point).
func (p *Port) roundTrip(op byte, index int, value int32) (int32, error) {
	if _, err := p.rw.Write(encodeRequest(op, index, value)); err != nil {
		return 0, err
	}
	var resp [respLen]byte
	if _, err := io.ReadFull(p.rw, resp[:]); err != nil {
		return 0, err
	}
	return decodeResponse(resp[:])
}

type dev Port

func (d *dev) ConfigSet(index int, cfg adi.PortConfig) error {
	_, err := (*Port)(d).roundTrip(opConfigSet, index, int32(cfg))
	return err
}

func (d *dev) ConfigGet(index int) (adi.PortConfig, error) {
	v, err := (*Port)(d).roundTrip(opConfigGet, index, 0)
	if err != nil {
		return adi.ConfigUndefined, err
	}
	return adi.PortConfig(v), nil
}

func (d *dev) ValueSet(index int, v int32) error {
	_, err := (*Port)(d).roundTrip(opValueSet, index, v)
	return err
}

func (d *dev) ValueGet(index int) (int32, error) {
	return (*Port)(d).roundTrip(opValueGet, index, 0)
}
