package serialadi

import "triport-go/errcode"

// Wire format. Fixed-size frames in both directions:
//
//	request:  [sync][op][index][value:4 BE][crc:2 BE]   (9 bytes)
//	response: [sync][status][value:4 BE][crc:2 BE]      (8 bytes)
//
// The CRC covers every byte between the sync byte and the CRC itself.
const (
	syncByte = 0xA5

	reqLen  = 9
	respLen = 8
)

// Operations.
const (
	opPing      = 0x01
	opConfigSet = 0x02
	opConfigGet = 0x03
	opValueSet  = 0x04
	opValueGet  = 0x05
)

// Response status codes.
const (
	statusOK  = 0x00
	statusErr = 0x01
)

// pingMagic is returned in the value field of a ping response and identifies
// the expander device class.
const pingMagic = 0x41444931 // "ADI1"

func putU32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func getU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// encodeRequest builds a request frame.
func encodeRequest(op byte, index int, value int32) []byte {
	f := make([]byte, reqLen)
	f[0] = syncByte
	f[1] = op
	f[2] = byte(index)
	putU32(f[3:7], uint32(value))
	crc := crc16(f[1:7])
	f[7] = byte(crc >> 8)
	f[8] = byte(crc)
	return f
}

// decodeResponse validates a response frame and returns its value field.
func decodeResponse(f []byte) (int32, error) {
	if len(f) != respLen || f[0] != syncByte {
		return 0, &errcode.E{C: errcode.Error, Op: "serialadi.decode", Msg: "bad frame"}
	}
	want := uint16(f[6])<<8 | uint16(f[7])
	if crc16(f[1:6]) != want {
		return 0, &errcode.E{C: errcode.Error, Op: "serialadi.decode", Msg: "crc mismatch"}
	}
	if f[1] != statusOK {
		return 0, &errcode.E{C: errcode.Error, Op: "serialadi.decode", Msg: "device error"}
	}
	return int32(getU32(f[2:6])), nil
}

// encodeResponse builds a response frame. Used by expander firmware and the
// loopback peer in tests.
func encodeResponse(status byte, value int32) []byte {
	f := make([]byte, respLen)
	f[0] = syncByte
	f[1] = status
	putU32(f[2:6], uint32(value))
	crc := crc16(f[1:6])
	f[6] = byte(crc >> 8)
	f[7] = byte(crc)
	return f
}

// decodeRequest validates a request frame. Counterpart of encodeRequest for
// the peer side.
func decodeRequest(f []byte) (op byte, index int, value int32, err error) {
	if len(f) != reqLen || f[0] != syncByte {
		return 0, 0, 0, &errcode.E{C: errcode.Error, Op: "serialadi.decode", Msg: "bad frame"}
	}
	want := uint16(f[7])<<8 | uint16(f[8])
	if crc16(f[1:7]) != want {
		return 0, 0, 0, &errcode.E{C: errcode.Error, Op: "serialadi.decode", Msg: "crc mismatch"}
	}
	return f[1], int(f[2]), int32(getU32(f[3:7])), nil
}
