// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package digest renders a result as hex digits and turns the digits into bytes.
package digest

import (
	"RSA_EXP/pkg/BigInt"

	"github.com/pkg/errors"
)

// ErrInvalidDigit is returned by Decode for a character outside 0-9, a-f, A-F.
var ErrInvalidDigit = errors.New("digest: invalid hex digit")

// Encode returns the big-endian hex digits of x in lowercase, without padding.
// Zero encodes as "0".
func Encode(x *BigInt.Nat) string {
	s := x.Hex()
	if s[0] == '0' {
		return s[1:]
	}
	return s
}

// Decode turns each pair of hex digits into one byte, most significant first.
//
// An odd-length string is read as if it had one more leading 0, so "abc"
// decodes to {0x0a, 0xbc}. The empty string decodes to an empty slice.
func Decode(s string) ([]byte, error) {
	pad := len(s) % 2
	if pad == 1 {
		s = "0" + s
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok := hexval(s[2*i])
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDigit, "%q at offset %d", s[2*i], 2*i-pad)
		}
		lo, ok := hexval(s[2*i+1])
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDigit, "%q at offset %d", s[2*i+1], 2*i+1-pad)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

// FromNat returns the decoded digest of x.
func FromNat(x *BigInt.Nat) []byte {
	out, err := Decode(Encode(x))
	if err != nil {
		// Encode only emits hex digits
		panic(err)
	}
	return out
}

func hexval(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
