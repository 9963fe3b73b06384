// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	bit32Size = 4
	bit64Size = 8

	// MaxPacketSize is the largest payload a single UDP datagram can carry.
	MaxPacketSize = 65507
)

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}

// EncodeString returns s as an OSC-string: its UTF-8 bytes, one NUL
// terminator and NUL padding up to the next multiple of four.
func EncodeString(s string) []byte {
	n := len(s) + 1
	b := make([]byte, n+padBytesNeeded(n))
	copy(b, s)
	return b
}

// EncodeInt32 returns v as four big-endian bytes.
func EncodeInt32(v int32) []byte {
	b := make([]byte, bit32Size)
	binary.BigEndian.PutUint32(b, uint32(v))
	return b
}

// EncodeFloat32 returns the IEEE-754 bits of v as four big-endian bytes.
func EncodeFloat32(v float32) []byte {
	b := make([]byte, bit32Size)
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
	return b
}

// EncodeBlob returns a length-prefixed, padded OSC blob.
func EncodeBlob(data []byte) []byte {
	n := bit32Size + len(data)
	b := make([]byte, n+padBytesNeeded(n))
	binary.BigEndian.PutUint32(b, uint32(len(data)))
	copy(b[bit32Size:], data)
	return b
}

// parsePaddedString reads an OSC-string from the start of data and returns
// the string and the number of bytes it occupied including padding.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("%w: unterminated string", ErrMalformedPacket)
	}

	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(data) {
		return "", 0, fmt.Errorf("%w: string padding runs past end of packet", ErrMalformedPacket)
	}
	return string(data[:pos]), n, nil
}

// parseBlob reads an OSC blob from the start of data and returns the blob
// contents and the number of bytes it occupied including padding.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("%w: truncated blob length", ErrMalformedPacket)
	}
	blobLen := int(binary.BigEndian.Uint32(data[:bit32Size]))
	n := bit32Size + blobLen
	if blobLen < 0 || n > len(data) {
		return nil, 0, fmt.Errorf("%w: invalid blob length %d", ErrMalformedPacket, blobLen)
	}

	padded := n + padBytesNeeded(n)
	if padded > len(data) {
		return nil, 0, fmt.Errorf("%w: blob padding runs past end of packet", ErrMalformedPacket)
	}

	blob := make([]byte, blobLen)
	copy(blob, data[bit32Size:n])
	return blob, padded, nil
}
