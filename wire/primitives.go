// Package wire implements the hop dispatcher's length-prefixed binary
// framing (weaver core component C6): Size/Pack/Unpack for every type
// carried between shards. One endianness — little-endian — is used for
// the whole system, matching namemap's key/attribute encoding.
package wire

import "encoding/binary"

func sizeUint32() int { return 4 }
func sizeUint64() int { return 8 }
func sizeBool() int   { return 1 }

func packUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func unpackUint32(buf []byte) (uint32, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, ErrShortBuffer
	}
	return binary.LittleEndian.Uint32(buf[:4]), buf[4:], nil
}

func packUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func unpackUint64(buf []byte) (uint64, []byte, error) {
	if len(buf) < 8 {
		return 0, nil, ErrShortBuffer
	}
	return binary.LittleEndian.Uint64(buf[:8]), buf[8:], nil
}

func packBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func unpackBool(buf []byte) (bool, []byte, error) {
	if len(buf) < 1 {
		return false, nil, ErrShortBuffer
	}
	return buf[0] != 0, buf[1:], nil
}

// sizeString is the wire size of a string: a uint32 length prefix
// followed by its raw bytes.
func sizeString(s string) int {
	return sizeUint32() + len(s)
}

func packString(buf []byte, s string) []byte {
	buf = packUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func unpackString(buf []byte) (string, []byte, error) {
	n, buf, err := unpackUint32(buf)
	if err != nil {
		return "", nil, err
	}
	if uint32(len(buf)) < n {
		return "", nil, ErrShortBuffer
	}
	return string(buf[:n]), buf[n:], nil
}
