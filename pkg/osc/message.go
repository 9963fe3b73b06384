// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidAddress is returned for empty addresses or addresses that do
	// not start with '/'.
	ErrInvalidAddress = errors.New("invalid OSC address")
	// ErrUnsupportedTypeTag is returned when an argument carries a tag this
	// package cannot encode.
	ErrUnsupportedTypeTag = errors.New("unsupported OSC type tag")
	// ErrArgumentMismatch is returned when an argument's Go value does not
	// match its tag.
	ErrArgumentMismatch = errors.New("OSC argument does not match its type tag")
	// ErrMalformedPacket is returned by the decoder for truncated or
	// otherwise invalid packets.
	ErrMalformedPacket = errors.New("malformed OSC packet")
	// ErrPacketTooLarge is returned when an encoded message does not fit in
	// a single datagram.
	ErrPacketTooLarge = errors.New("OSC packet too large")
)

type (
	// Argument is one typed OSC argument. Value holds int32, float32,
	// string, int64, float64, []byte, bool or nil according to Tag.
	Argument struct {
		Tag   TypeTag
		Value any
	}

	// Message represents a single OSC message. An OSC message consists of an
	// OSC address pattern and zero or more arguments.
	Message struct {
		Address   string
		Arguments []Argument
	}
)

// Int32 returns an 'i' argument.
func Int32(v int32) Argument { return Argument{Tag: TypeInt32, Value: v} }

// Float32 returns an 'f' argument.
func Float32(v float32) Argument { return Argument{Tag: TypeFloat32, Value: v} }

// String returns an 's' argument.
func String(v string) Argument { return Argument{Tag: TypeString, Value: v} }

// Validate checks that the tag is supported and the value has the Go type
// the tag requires.
func (a Argument) Validate() error {
	if !a.Tag.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedTypeTag, a.Tag.String())
	}
	if !a.Tag.hasPayload() {
		return nil
	}
	if got := TypeTagOf(a.Value); got != a.Tag {
		return fmt.Errorf("%w: tag %q with %T", ErrArgumentMismatch, a.Tag.String(), a.Value)
	}
	// OSC-strings end at the first NUL.
	if s, ok := a.Value.(string); ok && strings.IndexByte(s, 0) != -1 {
		return fmt.Errorf("%w: string argument contains NUL", ErrArgumentMismatch)
	}
	return nil
}

// appendTo writes the argument payload to buf. Validate must have passed.
func (a Argument) appendTo(buf *bytes.Buffer) {
	switch v := a.Value.(type) {
	case int32:
		buf.Write(EncodeInt32(v))
	case float32:
		buf.Write(EncodeFloat32(v))
	case string:
		buf.Write(EncodeString(v))
	case int64:
		var b [bit64Size]byte
		binary.BigEndian.PutUint64(b[:], uint64(v))
		buf.Write(b[:])
	case float64:
		var b [bit64Size]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
		buf.Write(b[:])
	case []byte:
		buf.Write(EncodeBlob(v))
	}
}

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...Argument) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...Argument) {
	m.Arguments = append(m.Arguments, args...)
}

// TypeTags returns the type tag string, including the leading ','.
func (m *Message) TypeTags() string {
	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, arg := range m.Arguments {
		tags = append(tags, byte(arg.Tag))
	}
	return string(tags)
}

// Validate checks the address and every argument.
func (m *Message) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidAddress)
	}
	if m.Address == "" || m.Address[0] != '/' {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, m.Address)
	}
	if strings.IndexByte(m.Address, 0) != -1 {
		return fmt.Errorf("%w: address contains NUL", ErrInvalidAddress)
	}
	for i, arg := range m.Arguments {
		if err := arg.Validate(); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (m *Message) MarshalBinary() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(EncodeString(m.Address))
	buf.Write(EncodeString(m.TypeTags()))
	for _, arg := range m.Arguments {
		arg.appendTo(&buf)
	}

	if buf.Len() > MaxPacketSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, buf.Len())
	}
	return buf.Bytes(), nil
}

// BuildMessage encodes an address and its arguments into OSC wire format.
func BuildMessage(address string, args ...Argument) ([]byte, error) {
	return NewMessage(address, args...).MarshalBinary()
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return fmt.Errorf("%w: data is not an OSC message", ErrMalformedPacket)
	}
	if len(data)%bit32Size != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 4", ErrMalformedPacket, len(data))
	}

	addr, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	args, err := parseArguments(data[n:])
	if err != nil {
		return err
	}

	m.Address = addr
	m.Arguments = args
	return nil
}

// ParseMessage decodes a single OSC message.
func ParseMessage(data []byte) (*Message, error) {
	m := &Message{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// parseArguments decodes the type-tag string and the argument payloads.
// A message without a type-tag string carries no arguments.
func parseArguments(data []byte) ([]Argument, error) {
	if len(data) == 0 {
		return nil, nil
	}

	tags, n, err := parsePaddedString(data)
	if err != nil {
		return nil, fmt.Errorf("type tags: %w", err)
	}
	if tags == "" || tags[0] != ',' {
		return nil, fmt.Errorf("%w: type tag string %q does not start with ','", ErrMalformedPacket, tags)
	}
	data = data[n:]

	args := make([]Argument, 0, len(tags)-1)
	for i := 1; i < len(tags); i++ {
		tag := TypeTag(tags[i])
		arg, used, err := parseArgument(tag, data)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i-1, err)
		}
		args = append(args, arg)
		data = data[used:]
	}
	return args, nil
}

func parseArgument(tag TypeTag, data []byte) (Argument, int, error) {
	need := func(size int) error {
		if len(data) < size {
			return fmt.Errorf("%w: %q needs %d bytes, %d left", ErrMalformedPacket, tag.String(), size, len(data))
		}
		return nil
	}

	switch tag {
	case TypeInt32:
		if err := need(bit32Size); err != nil {
			return Argument{}, 0, err
		}
		return Int32(int32(binary.BigEndian.Uint32(data))), bit32Size, nil
	case TypeFloat32:
		if err := need(bit32Size); err != nil {
			return Argument{}, 0, err
		}
		return Float32(math.Float32frombits(binary.BigEndian.Uint32(data))), bit32Size, nil
	case TypeInt64:
		if err := need(bit64Size); err != nil {
			return Argument{}, 0, err
		}
		return Argument{Tag: tag, Value: int64(binary.BigEndian.Uint64(data))}, bit64Size, nil
	case TypeFloat64:
		if err := need(bit64Size); err != nil {
			return Argument{}, 0, err
		}
		return Argument{Tag: tag, Value: math.Float64frombits(binary.BigEndian.Uint64(data))}, bit64Size, nil
	case TypeString:
		s, n, err := parsePaddedString(data)
		if err != nil {
			return Argument{}, 0, err
		}
		return String(s), n, nil
	case TypeBlob:
		b, n, err := parseBlob(data)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{Tag: tag, Value: b}, n, nil
	case TypeTrue:
		return Argument{Tag: tag, Value: true}, 0, nil
	case TypeFalse:
		return Argument{Tag: tag, Value: false}, 0, nil
	case TypeNil:
		return Argument{Tag: tag}, 0, nil
	default:
		return Argument{}, 0, fmt.Errorf("%w: %q", ErrUnsupportedTypeTag, tag.String())
	}
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.Address)
	sb.WriteByte(' ')
	sb.WriteString(m.TypeTags())

	for _, arg := range m.Arguments {
		switch v := arg.Value.(type) {
		case nil:
			sb.WriteString(" Nil")
		case []byte:
			fmt.Fprintf(&sb, " blob(%d)", len(v))
		case string:
			fmt.Fprintf(&sb, " %q", v)
		default:
			fmt.Fprintf(&sb, " %v", v)
		}
	}

	return sb.String()
}
