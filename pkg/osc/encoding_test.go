// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []byte
	}{
		{"", []byte{0, 0, 0, 0}},
		{"a", []byte{'a', 0, 0, 0}},
		{"abc", []byte{'a', 'b', 'c', 0}},
		{"test", []byte("test\x00\x00\x00\x00")},
		{"tests", []byte("tests\x00\x00\x00")},
		{",si", []byte(",si\x00")},
		{"/element/engine", []byte("/element/engine\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := EncodeString(tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if len(got)%4 != 0 {
				t.Errorf("EncodeString(%q) length %d is not a multiple of 4", tt.in, len(got))
			}
		})
	}
}

func TestEncodeScalars(t *testing.T) {
	t.Parallel()

	if got, want := EncodeInt32(44100), []byte{0x00, 0x00, 0xac, 0x44}; !bytes.Equal(got, want) {
		t.Errorf("EncodeInt32(44100) = % x, want % x", got, want)
	}
	if got, want := EncodeInt32(-1), []byte{0xff, 0xff, 0xff, 0xff}; !bytes.Equal(got, want) {
		t.Errorf("EncodeInt32(-1) = % x, want % x", got, want)
	}
	if got, want := EncodeFloat32(1.0), []byte{0x3f, 0x80, 0x00, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("EncodeFloat32(1.0) = % x, want % x", got, want)
	}
	if got, want := EncodeFloat32(-0.5), []byte{0xbf, 0x00, 0x00, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("EncodeFloat32(-0.5) = % x, want % x", got, want)
	}
}

func TestEncodeBlob(t *testing.T) {
	t.Parallel()

	got := EncodeBlob([]byte{1, 2, 3, 4, 5})
	want := []byte{0, 0, 0, 5, 1, 2, 3, 4, 5, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeBlob() = % x, want % x", got, want)
	}
}

func TestParsePaddedString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		buf     []byte
		want    string
		wantN   int
		wantErr bool
	}{
		{[]byte("teststring\x00\x00"), "teststring", 12, false},
		{[]byte("testers\x00"), "testers", 8, false},
		{[]byte("tests\x00\x00\x00"), "tests", 8, false},
		{[]byte("tes\x00\x00\x00\x00\x00"), "tes", 4, false},
		{[]byte("test"), "", 0, true},
		{[]byte("tests\x00"), "", 0, true},
	}

	for _, tt := range tests {
		got, n, err := parsePaddedString(tt.buf)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parsePaddedString(%q) error = %v, wantErr %v", tt.buf, err, tt.wantErr)
		}
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedPacket) {
				t.Errorf("error should wrap ErrMalformedPacket, got %v", err)
			}
			continue
		}
		if got != tt.want || n != tt.wantN {
			t.Errorf("parsePaddedString(%q) = (%q, %d), want (%q, %d)", tt.buf, got, n, tt.want, tt.wantN)
		}
	}
}

func TestPadBytesNeeded(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ in, want int }{
		{0, 0}, {1, 3}, {3, 1}, {4, 0}, {10, 2}, {32, 0}, {63, 1},
	} {
		if got := padBytesNeeded(tt.in); got != tt.want {
			t.Errorf("padBytesNeeded(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
