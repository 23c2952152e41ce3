// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"RSA_EXP/pkg/BigInt"
	"RSA_EXP/pkg/rsa"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeRecord(t *testing.T, m, d, n uint64) *Record {
	t.Helper()
	res, err := rsa.Compute(rsa.Inputs{
		Message:  new(BigInt.Nat).SetUint64(m),
		Exponent: new(BigInt.Nat).SetUint64(d),
		Modulus:  new(BigInt.Nat).SetUint64(n),
	})
	require.NoError(t, err)
	return NewRecord(res)
}

func TestSaveLoadRecord(t *testing.T) {
	rec := computeRecord(t, 65, 17, 3233)
	path := filepath.Join(t.TempDir(), "records", "65.cbor")

	require.NoError(t, SaveRecord(path, rec))
	loaded, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
	assert.Equal(t, "ae6", loaded.Digest)
	assert.Equal(t, "generic", loaded.Engine)
	require.NoError(t, loaded.Verify())
}

func TestSaveRecordDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.cbor")
	require.NoError(t, SaveRecord(path, computeRecord(t, 2, 10, 1000)))
	err := SaveRecord(path, computeRecord(t, 5, 3, 13))
	assert.True(t, errors.Is(err, ErrRecordExists))

	loaded, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "18", loaded.Digest)
}

func TestRemoveRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.cbor")
	require.NoError(t, SaveRecord(path, computeRecord(t, 2, 10, 1000)))
	require.NoError(t, RemoveRecord(path))
	_, err := LoadRecord(path)
	assert.Error(t, err)

	// removing twice is fine, and the path can be written again
	require.NoError(t, RemoveRecord(path))
	require.NoError(t, SaveRecord(path, computeRecord(t, 5, 3, 13)))
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := computeRecord(t, 5, 3, 13)
	rec.Value = []byte{9}
	assert.True(t, errors.Is(rec.Verify(), ErrRecordMismatch))

	rec = computeRecord(t, 5, 3, 13)
	rec.Digest = "9"
	assert.True(t, errors.Is(rec.Verify(), ErrRecordMismatch))

	rec = computeRecord(t, 5, 3, 13)
	rec.Fingerprint[0] ^= 0xff
	assert.True(t, errors.Is(rec.Verify(), ErrRecordMismatch))

	rec = computeRecord(t, 5, 3, 13)
	rec.Modulus = []byte{1}
	assert.Error(t, rec.Verify())
}

func TestLoadRecordFailures(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadRecord(filepath.Join(dir, "missing.cbor"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.cbor")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0x00}, 0600))
	_, err = LoadRecord(bad)
	assert.Error(t, err)
}

func TestRecordWireKeys(t *testing.T) {
	raw, err := cbor.Marshal(computeRecord(t, 2, 10, 1000))
	require.NoError(t, err)
	var generic map[int]interface{}
	require.NoError(t, cbor.Unmarshal(raw, &generic))
	assert.Len(t, generic, 7)
	assert.Equal(t, "18", generic[5])
}
