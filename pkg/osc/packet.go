// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"encoding/binary"
	"fmt"
)

const bundleTag = "#bundle"

// ParsePacket decodes a datagram that holds either one message or a
// '#bundle'. Bundles are flattened, nested bundles included, and their
// time tags are ignored: eltool only prints what it receives.
func ParsePacket(data []byte) ([]*Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty packet", ErrMalformedPacket)
	}

	switch data[0] {
	case '/':
		m, err := ParseMessage(data)
		if err != nil {
			return nil, err
		}
		return []*Message{m}, nil
	case '#':
		return parseBundle(data)
	default:
		return nil, fmt.Errorf("%w: packet starts with %q", ErrMalformedPacket, data[0])
	}
}

func parseBundle(data []byte) ([]*Message, error) {
	tag, n, err := parsePaddedString(data)
	if err != nil {
		return nil, err
	}
	if tag != bundleTag {
		return nil, fmt.Errorf("%w: unknown packet tag %q", ErrMalformedPacket, tag)
	}
	data = data[n:]

	if len(data) < bit64Size {
		return nil, fmt.Errorf("%w: bundle is missing its time tag", ErrMalformedPacket)
	}
	data = data[bit64Size:]

	var msgs []*Message
	for len(data) > 0 {
		if len(data) < bit32Size {
			return nil, fmt.Errorf("%w: truncated bundle element size", ErrMalformedPacket)
		}
		size := int(binary.BigEndian.Uint32(data))
		data = data[bit32Size:]
		if size <= 0 || size > len(data) {
			return nil, fmt.Errorf("%w: invalid bundle element size %d", ErrMalformedPacket, size)
		}

		inner, err := ParsePacket(data[:size])
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, inner...)
		data = data[size:]
	}
	return msgs, nil
}
