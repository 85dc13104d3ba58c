// adi/transport.go
package adi

// Device is the raw register surface of the shared ADI hardware. A Device is
// only valid between a successful Claim and the matching Release on the
// owning Transport. Port indices are zero-based.
type Device interface {
	ConfigSet(index int, cfg PortConfig) error
	ConfigGet(index int) (PortConfig, error)
	ValueSet(index int, value int32) error
	ValueGet(index int) (int32, error)
}

// Transport guards the single shared hardware interface behind the port bank.
// Claim blocks the calling goroutine until the interface is free and returns
// its raw surface; errcode.PortBusy or errcode.DeviceMismatch is returned when
// the interface cannot be handed out at all. Release must be called exactly
// once per successful Claim.
//
// The driver holds a claim only for the duration of one hardware transaction,
// never across multi-sample loops.
type Transport interface {
	Claim() (Device, error)
	Release()
}
