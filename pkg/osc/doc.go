// SPDX-License-Identifier: MPL-2.0

// Package osc encodes, sends and receives Open Sound Control 1.0 messages.
//
// An OSC message on the wire is the padded address string, the padded
// type-tag string (a ',' followed by one character per argument) and the
// arguments themselves:
//
//	encode(address) + encode("," + tags) + encode(arg0) + encode(arg1) ...
//
// Strings are UTF-8 followed by one required NUL byte and padded with NUL
// bytes to the next multiple of four. int32 and float32 arguments are four
// bytes big-endian; float32 uses the IEEE-754 bit pattern.
//
// The sender side only needs 'i', 'f' and 's'. The decoder also accepts
// 'h' (int64), 'd' (float64), 'b' (blob), 'T', 'F' and 'N', as well as
// '#bundle' packets, so that diagnostic listeners can print whatever a peer
// sends.
//
// Client delivers one datagram per message over UDP. There is no
// acknowledgement, retry or response: a successful Send only means the
// operating system accepted the datagram.
package osc
