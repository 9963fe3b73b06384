// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"fmt"
	"strconv"
)

// ParseArgument converts a command-line token into a typed argument.
//
//	i:42      int32
//	f:0.5     float32
//	s:hello   string
//	h:42      int64
//	d:0.5     float64
//	T, F, N   true, false, nil
//
// Any other token is sent as a string unchanged.
func ParseArgument(token string) (Argument, error) {
	switch token {
	case "T":
		return Argument{Tag: TypeTrue, Value: true}, nil
	case "F":
		return Argument{Tag: TypeFalse, Value: false}, nil
	case "N":
		return Argument{Tag: TypeNil}, nil
	}

	if len(token) < 2 || token[1] != ':' {
		return String(token), nil
	}

	value := token[2:]
	switch TypeTag(token[0]) {
	case TypeInt32:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return Argument{}, fmt.Errorf("parse int32 argument %q: %w", token, err)
		}
		return Int32(int32(v)), nil
	case TypeFloat32:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return Argument{}, fmt.Errorf("parse float32 argument %q: %w", token, err)
		}
		return Float32(float32(v)), nil
	case TypeInt64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Argument{}, fmt.Errorf("parse int64 argument %q: %w", token, err)
		}
		return Argument{Tag: TypeInt64, Value: v}, nil
	case TypeFloat64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Argument{}, fmt.Errorf("parse float64 argument %q: %w", token, err)
		}
		return Argument{Tag: TypeFloat64, Value: v}, nil
	case TypeString:
		return String(value), nil
	default:
		return String(token), nil
	}
}

// ParseArguments converts every token with ParseArgument.
func ParseArguments(tokens []string) ([]Argument, error) {
	args := make([]Argument, 0, len(tokens))
	for _, tok := range tokens {
		arg, err := ParseArgument(tok)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}
