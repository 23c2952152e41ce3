// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package BigInt provides Nat, the arbitrary-precision nonnegative integer
// used for every value flowing through the RSA primitive.
package BigInt

import (
	"encoding/hex"
	"math/big"
)

// Nat is a nonnegative integer of unbounded size.
// The zero value is ready to use and holds 0.
type Nat struct {
	Data *backendInt
}

// zero is shared by every read of a Nat whose Data has not been set. Never written.
var zero = new(backendInt)

// data returns the storage of z, allocating it on first write.
func (z *Nat) data() *backendInt {
	if z.Data == nil {
		z.Data = new(backendInt)
	}
	return z.Data
}

// val returns the storage of z for reading.
func (z *Nat) val() *backendInt {
	if z == nil || z.Data == nil {
		return zero
	}
	return z.Data
}

// SetUint64 sets z to x, and returns z
func (z *Nat) SetUint64(x uint64) *Nat {
	z.data().SetUint64(x)
	return z
}

// Uint64 represents this number as uint64
//
// The behavior of this function is undefined if the bit length of z is > 64.
func (z *Nat) Uint64() uint64 {
	return z.val().Uint64()
}

// SetBytes interprets a number in big-endian format, stores it in z, and returns z.
func (z *Nat) SetBytes(buf []byte) *Nat {
	z.data().SetBytes(buf)
	return z
}

// Bytes creates a slice containing the contents of this Nat, in big endian.
// Zero yields an empty slice.
func (z *Nat) Bytes() []byte {
	return z.val().Bytes()
}

// SetString sets z to the value of s in the given base and reports success.
// Base 0 follows the usual prefix rules (0x, 0b, 0). Negative values are
// rejected and leave z unchanged.
func (z *Nat) SetString(s string, base int) (*Nat, bool) {
	tmp, ok := new(backendInt).SetString(s, base)
	if !ok || tmp.Sign() < 0 {
		return z, false
	}
	z.data().Set(tmp)
	return z, true
}

// SetHex modifies the value of z to hold a hex string, returning z
//
// The hex string must be in big endian order. If it contains characters
// other than 0..9, a..f, A..F, z is left unchanged and false is returned.
func (z *Nat) SetHex(s string) (*Nat, bool) {
	return z.SetString(s, 16)
}

// Hex will represent this Nat as a lowercase hex string holding a multiple of 8 bits.
func (z *Nat) Hex() string {
	buf := z.Bytes()
	if len(buf) == 0 {
		return "00"
	}
	return hex.EncodeToString(buf)
}

// String returns the decimal representation of z.
func (z *Nat) String() string {
	return z.val().String()
}

// Big converts a Nat into a math/big Int.
func (z *Nat) Big() *big.Int {
	return new(big.Int).SetBytes(z.Bytes())
}

// SetBig modifies z to contain the absolute value of x, return z
func (z *Nat) SetBig(x *big.Int) *Nat {
	return z.SetBytes(x.Bytes())
}

// SetNat copies the value of x into z
func (z *Nat) SetNat(x *Nat) *Nat {
	if z == x {
		return z
	}
	z.data().Set(x.val())
	return z
}

// Clone returns a copy of this value.
//
// This copy can safely be mutated without affecting the original.
func (z *Nat) Clone() *Nat {
	return new(Nat).SetNat(z)
}

// BitLen return the length of Nat in bits. Zero has length 0.
func (z *Nat) BitLen() int {
	return z.val().BitLen()
}

// Bit returns the value of the i'th bit of x. That is, it
// returns (x>>i)&1.
func (z *Nat) Bit(i uint) uint {
	return z.val().Bit(int(i))
}

// IsZero reports whether z == 0.
func (z *Nat) IsZero() bool {
	return z.val().Sign() == 0
}

// Cmp compares two Nats, returning:
//
//	-1 if z <  y
//	 0 if z == y
//	+1 if z >  y
func (z *Nat) Cmp(y *Nat) int {
	return z.val().Cmp(y.val())
}

// Eq checks if z = y.
func (z *Nat) Eq(y *Nat) bool {
	return z.Cmp(y) == 0
}

// capTo reduces z modulo 2^cap when cap >= 0.
func (z *Nat) capTo(cap int) *Nat {
	if cap < 0 {
		return z
	}
	modulo := new(backendInt).Lsh(new(backendInt).SetUint64(1), uint(cap))
	z.Data.Mod(z.Data, modulo)
	return z
}

// Add calculates z <- x + y, modulo 2^cap, and return z
// If cap < 0, the result is not truncated.
func (z *Nat) Add(x *Nat, y *Nat, cap int) *Nat {
	z.data().Add(x.val(), y.val())
	return z.capTo(cap)
}

// Sub calculates z <- x - y, modulo 2^cap, and return z
//
// With cap < 0 the caller must guarantee x >= y; a negative difference panics.
func (z *Nat) Sub(x *Nat, y *Nat, cap int) *Nat {
	if cap < 0 && x.Cmp(y) < 0 {
		panic("BigInt: negative result in Sub")
	}
	z.data().Sub(x.val(), y.val())
	return z.capTo(cap)
}

// Mul calculates z <- x * y, modulo 2^cap, and return z
// If cap < 0, the result is not truncated.
func (z *Nat) Mul(x *Nat, y *Nat, cap int) *Nat {
	z.data().Mul(x.val(), y.val())
	return z.capTo(cap)
}

// Rsh calculates z <- x >> shift and return z
func (z *Nat) Rsh(x *Nat, shift uint) *Nat {
	z.data().Rsh(x.val(), shift)
	return z
}

// Lsh calculates z <- x << shift and return z
func (z *Nat) Lsh(x *Nat, shift uint) *Nat {
	z.data().Lsh(x.val(), shift)
	return z
}

// Mod calculates z <- x mod m and return z
//
// m must be nonzero.
func (z *Nat) Mod(x *Nat, m *Nat) *Nat {
	z.data().Mod(x.val(), m.val())
	return z
}

// ModMul calculates z <- x * y mod m and return z
func (z *Nat) ModMul(x *Nat, y *Nat, m *Nat) *Nat {
	d := z.data()
	d.Mul(x.val(), y.val())
	d.Mod(d, m.val())
	return z
}

// ModAdd calculates z <- x + y mod m and return z
func (z *Nat) ModAdd(x *Nat, y *Nat, m *Nat) *Nat {
	d := z.data()
	d.Add(x.val(), y.val())
	d.Mod(d, m.val())
	return z
}

// ModSub calculates z <- x - y mod m and return z
//
// The result is always in [0, m), even when x < y.
func (z *Nat) ModSub(x *Nat, y *Nat, m *Nat) *Nat {
	d := z.data()
	d.Sub(x.val(), y.val())
	d.Mod(d, m.val())
	return z
}

// ModInverse calculates z <- x^-1 mod m, reporting whether the inverse exists.
// z is left unchanged when it does not.
func (z *Nat) ModInverse(x *Nat, m *Nat) (*Nat, bool) {
	if m.val().Cmp(zero) == 0 {
		return z, false
	}
	inv := new(backendInt).ModInverse(x.val(), m.val())
	if inv == nil {
		return z, false
	}
	// some backends leave garbage instead of reporting failure
	check := new(backendInt).Mul(inv, x.val())
	check.Mod(check, m.val())
	if check.Cmp(new(backendInt).SetUint64(1)) != 0 && m.val().Cmp(new(backendInt).SetUint64(1)) != 0 {
		return z, false
	}
	z.data().Set(inv)
	return z, true
}
