// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package decimal reads a single integer literal from a text source.
//
// The literal may carry a base prefix: 0x or 0X for hex, 0b or 0B for binary,
// and a leading 0 for octal. Anything else is read as decimal.
package decimal

import (
	"bufio"
	"io"
	"os"

	"RSA_EXP/pkg/BigInt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrParseFailure is returned when no integer can be read from a source.
var ErrParseFailure = errors.New("decimal: parse failure")

// Load parses one integer from r. It returns the value and the number of
// characters consumed, counting the leading whitespace that was skipped.
//
// Reading stops at the first character that is not a digit of the detected
// base. When r is an io.ByteScanner that character is unread and r is left
// positioned right after the literal; any other reader is buffered and may be
// read past the literal.
func Load(r io.Reader) (*BigInt.Nat, int, error) {
	br, ok := r.(io.ByteScanner)
	if !ok {
		br = bufio.NewReader(r)
	}
	consumed := 0

	c, err := br.ReadByte()
	for err == nil && isSpace(c) {
		consumed++
		c, err = br.ReadByte()
	}
	if err == io.EOF {
		return nil, consumed, errors.Wrap(ErrParseFailure, "empty input")
	}
	if err != nil {
		return nil, consumed, errors.Wrapf(ErrParseFailure, "read: %v", err)
	}
	if c == '-' {
		_ = br.UnreadByte()
		return nil, consumed, errors.Wrap(ErrParseFailure, "negative values are not supported")
	}

	base := 10
	var digits []byte
	if c == '0' {
		// a lone 0 is a valid octal literal on its own
		base = 8
		digits = append(digits, c)
		consumed++
		c, err = br.ReadByte()
		if err == nil {
			switch c {
			case 'x', 'X':
				base = 16
			case 'b', 'B':
				base = 2
			}
			if base != 8 {
				digits = digits[:0]
				consumed++
				c, err = br.ReadByte()
			}
		}
	}
	for err == nil && digitValue(c) < base {
		digits = append(digits, c)
		consumed++
		c, err = br.ReadByte()
	}
	if err == nil {
		if err = br.UnreadByte(); err != nil {
			return nil, consumed, errors.Wrapf(ErrParseFailure, "unread: %v", err)
		}
	}
	if err != nil && err != io.EOF {
		return nil, consumed, errors.Wrapf(ErrParseFailure, "read: %v", err)
	}
	if len(digits) == 0 {
		return nil, consumed, errors.Wrapf(ErrParseFailure, "no base %d digits", base)
	}

	z, ok := new(BigInt.Nat).SetString(string(digits), base)
	if !ok {
		return nil, consumed, errors.Wrapf(ErrParseFailure, "malformed base %d literal", base)
	}
	return z, consumed, nil
}

// LoadFile opens path and parses one integer from it.
// An unreadable file is a parse failure, never a zero.
func LoadFile(path string) (*BigInt.Nat, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("fail open %s", path)
		return nil, errors.Wrapf(ErrParseFailure, "open: %v", err)
	}
	defer f.Close()

	z, consumed, err := Load(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	log.Debugf("read %d-bit value from %s (%d characters)", z.BitLen(), path, consumed)
	return z, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// digitValue returns the value of c as a digit, or 36 when c is no digit at all.
func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}
