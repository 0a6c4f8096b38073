package namemap

import "encoding/binary"

func encodeUint64(v uint64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b
}

func decodeUint64(b [8]byte) uint64 {
	return binary.LittleEndian.Uint64(b[:])
}
