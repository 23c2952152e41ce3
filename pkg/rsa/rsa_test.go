// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package rsa

import (
	"errors"
	"testing"

	"RSA_EXP/pkg/BigInt"
	"RSA_EXP/pkg/math/arith"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func nat(x uint64) *BigInt.Nat {
	return new(BigInt.Nat).SetUint64(x)
}

func inputs(m, d, n uint64) Inputs {
	return Inputs{Message: nat(m), Exponent: nat(d), Modulus: nat(n)}
}

func TestComputeScenarios(t *testing.T) {
	res, err := Compute(inputs(2, 10, 1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(24), res.Value.Uint64())
	assert.Equal(t, "18", res.Digest)
	assert.Equal(t, []byte{0x18}, res.Payload)
	assert.Equal(t, EngineGeneric, res.Engine)
	assert.Equal(t, sha3.Sum256([]byte{0x18}), res.Fingerprint)

	res, err = Compute(inputs(5, 3, 13))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), res.Value.Uint64())
	assert.Equal(t, "8", res.Digest)
	assert.Equal(t, []byte{0x08}, res.Payload)
}

func TestComputeRejectsInvalidModulus(t *testing.T) {
	for _, n := range []uint64{0, 1} {
		_, err := Compute(inputs(3, 5, n))
		assert.True(t, errors.Is(err, arith.ErrInvalidModulus), "n = %d", n)
	}
}

func TestComputeRejectsMissingInput(t *testing.T) {
	in := inputs(3, 5, 7)
	in.Exponent = nil
	_, err := Compute(in)
	assert.True(t, errors.Is(err, ErrMissingInput))

	in = inputs(3, 5, 7)
	in.Message = nil
	_, err = Validate(in)
	assert.True(t, errors.Is(err, ErrMissingInput))

	in = inputs(3, 5, 7)
	in.Modulus = nil
	_, err = Validate(in)
	assert.True(t, errors.Is(err, ErrMissingInput))
}

func TestEnginesAgree(t *testing.T) {
	// p = 61, q = 53
	in := inputs(65, 17, 3233)
	generic, err := Compute(in)
	require.NoError(t, err)
	assert.Equal(t, uint64(2790), generic.Value.Uint64())

	word, err := Compute(in, WithEngine(EngineWord))
	require.NoError(t, err)
	assert.Equal(t, EngineWord, word.Engine)
	assert.True(t, generic.Value.Eq(word.Value))

	crt, err := Compute(in, WithFactors(nat(61), nat(53)))
	require.NoError(t, err)
	assert.Equal(t, EngineCRT, crt.Engine)
	assert.True(t, generic.Value.Eq(crt.Value))
	assert.Equal(t, generic.Payload, crt.Payload)
	assert.Equal(t, generic.Fingerprint, crt.Fingerprint)
}

func TestWordEngineFallsBack(t *testing.T) {
	n := new(BigInt.Nat).SetUint64(1)
	n.Lsh(n, 300)
	n.Add(n, nat(1), -1)
	res, err := Compute(Inputs{Message: nat(3), Exponent: nat(5), Modulus: n}, WithEngine(EngineWord))
	require.NoError(t, err)
	assert.Equal(t, EngineGeneric, res.Engine)
	assert.Equal(t, uint64(243), res.Value.Uint64())
}

func TestCRTFactorMismatch(t *testing.T) {
	_, err := Compute(inputs(65, 17, 3233), WithFactors(nat(61), nat(59)))
	assert.True(t, errors.Is(err, ErrFactorMismatch))

	_, err = Compute(inputs(65, 17, 3233), WithFactors(nat(61), nil))
	assert.True(t, errors.Is(err, arith.ErrInvalidFactors))
}

func TestRoundTrip(t *testing.T) {
	// n = 1000000007 ⋅ 998244353
	msg := new(BigInt.Nat).SetBytes([]byte("hi"))
	e := nat(65537)
	enc, err := Compute(Inputs{Message: msg, Exponent: e, Modulus: nat(1_000_000_007 * 998_244_353)})
	require.NoError(t, err)
	phi := new(BigInt.Nat).Mul(nat(1_000_000_006), nat(998_244_352), -1)
	d, ok := new(BigInt.Nat).ModInverse(e, phi)
	require.True(t, ok)
	dec, err := Compute(Inputs{Message: enc.Value, Exponent: d, Modulus: enc.Modulus})
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), dec.Payload)
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{"": EngineGeneric, "generic": EngineGeneric, "word": EngineWord, "crt": EngineCRT} {
		got, err := ParseEngine(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseEngine("montgomery")
	assert.True(t, errors.Is(err, ErrUnknownEngine))

	_, err = Compute(inputs(2, 3, 5), WithEngine("montgomery"))
	assert.True(t, errors.Is(err, ErrUnknownEngine))
}
