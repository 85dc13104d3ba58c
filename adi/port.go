// adi/port.go
package adi

import (
	"triport-go/errcode"
	"triport-go/x/mathx"
)

// translatePort maps an external port identifier to a zero-based index.
// Accepted forms: integer 1-8, letter 'a'-'h' or 'A'-'H'. Anything that lands
// outside [0, NumPorts) after translation is errcode.OutOfRange.
func translatePort(port int) (int, error) {
	switch {
	case port >= 'a' && port <= 'h':
		port -= 'a'
	case port >= 'A' && port <= 'H':
		port -= 'A'
	default:
		port--
	}
	if port < 0 || port >= NumPorts {
		return 0, errcode.OutOfRange
	}
	return port, nil
}

// resolvePair validates a two-wire port pair and returns the anchor port,
// still in 1-based numbering. The two ports must be distinct and adjacent,
// and the anchor (the lower of the two) must occupy the first slot of its
// pair, i.e. be odd in 1-based numbering. The pair must also lie inside the
// port bank; this is checked here because the anchor indexes the reversal
// registry before any hardware write happens.
func resolvePair(top, bottom int) (int, error) {
	if mathx.Abs(top-bottom) != 1 {
		return 0, errcode.InvalidPair
	}
	anchor := mathx.Min(top, bottom)
	if anchor%2 == 0 {
		return 0, errcode.InvalidPair
	}
	if !mathx.Between(anchor, 1, NumPorts-1) {
		return 0, errcode.OutOfRange
	}
	return anchor, nil
}

// reversalSlot maps a validated 1-based anchor port to its slot in the
// per-pair reversal registry.
func reversalSlot(anchor int) int { return (anchor - 1) / 2 }
