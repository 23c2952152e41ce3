// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package arith

import (
	"RSA_EXP/pkg/BigInt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// WordBits is the widest modulus ExpWord accepts.
const WordBits = 256

// ErrModulusTooWide is returned by ExpWord when n does not fit in WordBits.
var ErrModulusTooWide = errors.New("arith: modulus does not fit in a 256-bit word")

// FitsWord reports whether n can be handled by ExpWord.
func (nMod *Modulus) FitsWord() bool {
	return nMod.n.BitLen() <= WordBits
}

// ExpWord returns xᵉ (mod n) like Exp, but keeps the base and the accumulator
// in fixed-width 256-bit words. The exponent keeps its arbitrary length.
func (nMod *Modulus) ExpWord(x, e *BigInt.Nat) (*BigInt.Nat, error) {
	if !nMod.FitsWord() {
		return nil, errors.Wrapf(ErrModulusTooWide, "%d bits", nMod.n.BitLen())
	}
	m, _ := uint256.FromBig(nMod.n.Big())
	// x mod n < n fits, whatever the width of x
	base, _ := uint256.FromBig(new(BigInt.Nat).Mod(x, nMod.n).Big())
	result := uint256.NewInt(1)
	exp := e.Clone()
	for !exp.IsZero() {
		if exp.Bit(0) == 1 {
			result = new(uint256.Int).MulMod(result, base, m)
		}
		base = new(uint256.Int).MulMod(base, base, m)
		exp.Rsh(exp, 1)
	}
	return new(BigInt.Nat).SetBig(result.ToBig()), nil
}
