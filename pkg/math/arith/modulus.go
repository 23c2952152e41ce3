// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package arith implements modular exponentiation over a validated modulus.
package arith

import (
	"RSA_EXP/pkg/BigInt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidModulus is returned when a modulus is not greater than 1.
	ErrInvalidModulus = errors.New("arith: modulus must be greater than 1")
	// ErrInvalidFactors is returned when p and q cannot serve as a CRT factorization.
	ErrInvalidFactors = errors.New("arith: factors must be coprime and greater than 1")
)

var one = new(BigInt.Nat).SetUint64(1)

// Modulus wraps a BigInt.Nat n > 1 and enables faster modular exponentiation when
// the factorization is known.
// When n = p⋅q, xᵉ (mod n) can be computed with only two exponentiations
// with p and q respectively.
//
// A Modulus is immutable once built, so Exp may be called concurrently.
type Modulus struct {
	// represents modulus n
	n *BigInt.Nat
	// n = p⋅q
	p, q *BigInt.Nat
	// pInv = p⁻¹ (mod q)
	pInv *BigInt.Nat
}

// ModulusFromN creates a Modulus from a copy of n.
// It fails with ErrInvalidModulus when n is nil or n ≤ 1.
func ModulusFromN(n *BigInt.Nat) (*Modulus, error) {
	if n == nil {
		return nil, errors.Wrap(ErrInvalidModulus, "nil modulus")
	}
	if n.Cmp(one) <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "n = %s", n)
	}
	return &Modulus{n: n.Clone()}, nil
}

// ModulusFromFactors creates the necessary cached values to accelerate
// exponentiation mod n = p⋅q.
//
// p and q only need to be coprime; primality is not checked.
func ModulusFromFactors(p, q *BigInt.Nat) (*Modulus, error) {
	if p == nil || q == nil || p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, errors.Wrap(ErrInvalidFactors, "factor ≤ 1")
	}
	pInv, ok := new(BigInt.Nat).ModInverse(p, q) // p^(-1) mod q
	if !ok {
		return nil, errors.Wrapf(ErrInvalidFactors, "gcd(%s, %s) ≠ 1", p, q)
	}
	return &Modulus{
		n:    new(BigInt.Nat).Mul(p, q, -1),
		p:    p.Clone(),
		q:    q.Clone(),
		pInv: pInv,
	}, nil
}

// ModulusFromUint64 creates a Modulus from an integer.
func ModulusFromUint64(x uint64) (*Modulus, error) {
	return ModulusFromN(new(BigInt.Nat).SetUint64(x))
}

// ModulusFromBytes creates a Modulus, converting from big endian bytes
func ModulusFromBytes(buf []byte) (*Modulus, error) {
	return ModulusFromN(new(BigInt.Nat).SetBytes(buf))
}

// ModulusFromHex creates a Modulus from a hex string.
//
// The same rules as Nat.SetHex apply.
func ModulusFromHex(hex string) (*Modulus, error) {
	n, ok := new(BigInt.Nat).SetHex(hex)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidModulus, "malformed hex %q", hex)
	}
	return ModulusFromN(n)
}

// Nat returns a copy of n.
func (nMod *Modulus) Nat() *BigInt.Nat {
	return nMod.n.Clone()
}

// BitLen return the length of n in bits
func (nMod *Modulus) BitLen() int {
	return nMod.n.BitLen()
}

// hasFactorization reports whether the CRT values were cached
func (nMod *Modulus) hasFactorization() bool {
	return nMod.p != nil && nMod.q != nil && nMod.pInv != nil
}

// Exp returns xᵉ (mod n) in a new Nat. Neither x nor e is modified.
func (nMod *Modulus) Exp(x, e *BigInt.Nat) *BigInt.Nat {
	if nMod.hasFactorization() {
		xp := squareMultiply(x, e, nMod.p) // x₁ = xᵉ (mod p)
		xq := squareMultiply(x, e, nMod.q) // x₂ = xᵉ (mod q)
		// h = p⁻¹ ⋅ (x₂ - x₁) (mod q), r = x₁ + p ⋅ h < n
		h := new(BigInt.Nat).ModSub(xq, xp, nMod.q)
		h.ModMul(h, nMod.pInv, nMod.q)
		r := new(BigInt.Nat).Mul(nMod.p, h, -1)
		return r.Add(r, xp, -1)
	}
	return squareMultiply(x, e, nMod.n)
}

// squareMultiply computes xᵉ (mod n) scanning e from its least significant bit.
//
// The loop runs exactly e.BitLen() times and every product is reduced
// before the next one. n must be > 1.
func squareMultiply(x, e, n *BigInt.Nat) *BigInt.Nat {
	result := new(BigInt.Nat).SetUint64(1)
	base := new(BigInt.Nat).Mod(x, n)
	exp := e.Clone()
	for !exp.IsZero() {
		if exp.Bit(0) == 1 {
			result.ModMul(result, base, n)
		}
		base.ModMul(base, base, n)
		exp.Rsh(exp, 1)
	}
	return result
}
