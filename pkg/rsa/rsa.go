// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package rsa computes the raw RSA primitive m^k mod n and renders its digest.
//
// No padding is applied and nothing here runs in constant time.
package rsa

import (
	"RSA_EXP/pkg/BigInt"
	"RSA_EXP/pkg/digest"
	"RSA_EXP/pkg/math/arith"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"
)

// Engine selects how the exponentiation is carried out.
type Engine string

const (
	// EngineGeneric runs square-and-multiply on arbitrary-precision integers.
	EngineGeneric Engine = "generic"
	// EngineWord runs square-and-multiply on 256-bit words when n fits, generic otherwise.
	EngineWord Engine = "word"
	// EngineCRT splits the work over the factors of n. It needs WithFactors.
	EngineCRT Engine = "crt"
)

var (
	ErrMissingInput   = errors.New("rsa: missing input")
	ErrUnknownEngine  = errors.New("rsa: unknown engine")
	ErrFactorMismatch = errors.New("rsa: factors do not multiply to the modulus")
)

// ParseEngine returns the engine named s. The empty string selects EngineGeneric.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case "", EngineGeneric:
		return EngineGeneric, nil
	case EngineWord:
		return EngineWord, nil
	case EngineCRT:
		return EngineCRT, nil
	}
	return "", errors.Wrapf(ErrUnknownEngine, "%q", s)
}

// Inputs holds the three operands of the primitive.
type Inputs struct {
	Message  *BigInt.Nat
	Exponent *BigInt.Nat
	Modulus  *BigInt.Nat
}

// Result is the outcome of Compute.
type Result struct {
	Inputs
	// Value = Message^Exponent mod Modulus
	Value *BigInt.Nat
	// Engine is the engine that actually ran
	Engine Engine
	// Digest holds the hex digits of Value
	Digest string
	// Payload is Digest decoded two digits per byte
	Payload []byte
	// Fingerprint is the SHA3-256 of Payload
	Fingerprint [32]byte
}

type options struct {
	engine Engine
	p, q   *BigInt.Nat
}

// Option configures Compute.
type Option func(*options)

// WithEngine selects the engine.
func WithEngine(e Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithFactors supplies n = p⋅q and selects EngineCRT.
func WithFactors(p, q *BigInt.Nat) Option {
	return func(o *options) {
		o.engine = EngineCRT
		o.p, o.q = p, q
	}
}

// Validate checks that every operand is present and builds the modulus.
// A modulus ≤ 1 fails with arith.ErrInvalidModulus.
func Validate(in Inputs) (*arith.Modulus, error) {
	switch {
	case in.Message == nil:
		return nil, errors.Wrap(ErrMissingInput, "message")
	case in.Exponent == nil:
		return nil, errors.Wrap(ErrMissingInput, "exponent")
	case in.Modulus == nil:
		return nil, errors.Wrap(ErrMissingInput, "modulus")
	}
	return arith.ModulusFromN(in.Modulus)
}

// Compute validates in, raises the message to the exponent modulo the modulus
// and renders the digest.
func Compute(in Inputs, opts ...Option) (*Result, error) {
	o := options{engine: EngineGeneric}
	for _, opt := range opts {
		opt(&o)
	}
	nMod, err := Validate(in)
	if err != nil {
		return nil, err
	}

	var value *BigInt.Nat
	engine := o.engine
	switch engine {
	case EngineGeneric:
		value = nMod.Exp(in.Message, in.Exponent)
	case EngineWord:
		if !nMod.FitsWord() {
			log.Debugf("%d-bit modulus is too wide for the word engine, using generic", nMod.BitLen())
			engine = EngineGeneric
			value = nMod.Exp(in.Message, in.Exponent)
			break
		}
		value, err = nMod.ExpWord(in.Message, in.Exponent)
		if err != nil {
			return nil, err
		}
	case EngineCRT:
		crt, err := arith.ModulusFromFactors(o.p, o.q)
		if err != nil {
			return nil, err
		}
		if !crt.Nat().Eq(in.Modulus) {
			return nil, ErrFactorMismatch
		}
		value = crt.Exp(in.Message, in.Exponent)
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", engine)
	}
	log.Debugf("%s engine: %d-bit exponent over %d-bit modulus", engine, in.Exponent.BitLen(), nMod.BitLen())

	res := &Result{
		Inputs: in,
		Value:  value,
		Engine: engine,
		Digest: digest.Encode(value),
	}
	res.Payload, err = digest.Decode(res.Digest)
	if err != nil {
		return nil, err
	}
	res.Fingerprint = sha3.Sum256(res.Payload)
	log.Debugf("digest %s, fingerprint %x", res.Digest, res.Fingerprint)
	return res, nil
}
