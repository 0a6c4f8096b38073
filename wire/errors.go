package wire

import "errors"

var (
	// ErrShortBuffer is returned when an Unpack call runs out of bytes
	// before a value is fully decoded.
	ErrShortBuffer = errors.New("wire: buffer too short")

	// ErrUnknownTag is returned when a compression envelope carries a
	// CompressionType this build doesn't recognize.
	ErrUnknownTag = errors.New("wire: unknown compression tag")

	// ErrSizeMismatch is returned when a decompressed LZ4 block's size
	// doesn't match the size recorded in its envelope header.
	ErrSizeMismatch = errors.New("wire: decompressed size mismatch")
)
