package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Port addressing and configuration.
	OutOfRange    Code = "out_of_range"   // port identifier outside 1-8 / 'a'-'h'
	InvalidConfig Code = "invalid_config" // operation does not match the port's configured type
	InvalidPair   Code = "invalid_pair"   // two-wire adjacency/parity/anchor violation
	InvalidArg    Code = "invalid_arg"    // bad mode or enum value

	// Shared hardware interface.
	PortBusy       Code = "port_busy"       // interface unavailable
	DeviceMismatch Code = "device_mismatch" // interface claimed by another device class
	Timeout        Code = "timeout"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
