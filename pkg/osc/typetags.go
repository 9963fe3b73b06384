// SPDX-License-Identifier: MPL-2.0

package osc

// TypeTag is the single-character OSC argument type identifier.
type TypeTag byte

const (
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeString  TypeTag = 's'
	TypeInt64   TypeTag = 'h'
	TypeFloat64 TypeTag = 'd'
	TypeBlob    TypeTag = 'b'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
	TypeNil     TypeTag = 'N'
	TypeInvalid TypeTag = 0
)

// String returns the tag character.
func (t TypeTag) String() string { return string(rune(t)) }

// IsValid reports whether the tag is one this package can encode and decode.
func (t TypeTag) IsValid() bool {
	switch t {
	case TypeInt32, TypeFloat32, TypeString, TypeInt64, TypeFloat64,
		TypeBlob, TypeTrue, TypeFalse, TypeNil:
		return true
	default:
		return false
	}
}

// hasPayload reports whether arguments with this tag occupy bytes in the
// argument section. T, F and N are carried by the tag alone.
func (t TypeTag) hasPayload() bool {
	switch t {
	case TypeTrue, TypeFalse, TypeNil:
		return false
	default:
		return true
	}
}

// TypeTagOf returns the tag for a Go value, or TypeInvalid when the value
// has no OSC representation.
func TypeTagOf(v any) TypeTag {
	switch t := v.(type) {
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	case string:
		return TypeString
	case int64:
		return TypeInt64
	case float64:
		return TypeFloat64
	case []byte:
		return TypeBlob
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	default:
		return TypeInvalid
	}
}
