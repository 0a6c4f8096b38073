package wire

import "github.com/pierrec/lz4/v4"

// CompressionType tags an envelope's payload encoding.
type CompressionType uint8

const (
	// CompressionNone carries the payload as-is.
	CompressionNone CompressionType = 0

	// CompressionLZ4 carries an LZ4 block-compressed payload, prefixed
	// with its uncompressed size.
	CompressionLZ4 CompressionType = 1
)

// EncodeEnvelope wraps a packed payload with a one-byte CompressionType
// tag. Hop messages with large EntriesToAdd/FinalPath slices may ask
// for CompressionLZ4; most hop payloads are small enough that
// compression isn't worth it. The caller chooses the compression per
// call; the shard package does not encode envelopes. If LZ4
// compression doesn't shrink the payload, the envelope falls back to
// storing it uncompressed.
func EncodeEnvelope(payload []byte, compression CompressionType) ([]byte, error) {
	if compression == CompressionNone {
		return append([]byte{byte(CompressionNone)}, payload...), nil
	}
	if compression != CompressionLZ4 {
		return nil, ErrUnknownTag
	}

	bound := lz4.CompressBlockBound(len(payload))
	compressed := make([]byte, bound)
	n, err := lz4.CompressBlock(payload, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(payload) {
		return append([]byte{byte(CompressionNone)}, payload...), nil
	}

	buf := make([]byte, 0, 1+4+n)
	buf = append(buf, byte(CompressionLZ4))
	buf = packUint32(buf, uint32(len(payload)))
	buf = append(buf, compressed[:n]...)
	return buf, nil
}

// DecodeEnvelope reverses EncodeEnvelope, returning the original
// packed payload.
func DecodeEnvelope(buf []byte) ([]byte, error) {
	if len(buf) < 1 {
		return nil, ErrShortBuffer
	}
	tag := CompressionType(buf[0])
	buf = buf[1:]

	switch tag {
	case CompressionNone:
		return buf, nil
	case CompressionLZ4:
		uncompressedSize, rest, err := unpackUint32(buf)
		if err != nil {
			return nil, err
		}
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(rest, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, ErrSizeMismatch
		}
		return out, nil
	default:
		return nil, ErrUnknownTag
	}
}
