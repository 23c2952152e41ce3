// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package save

import (
	"bytes"
	"os"
	"path/filepath"

	"RSA_EXP/pkg/BigInt"
	"RSA_EXP/pkg/rsa"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrRecordExists is returned instead of overwriting a record file.
	ErrRecordExists = errors.New("save: record file already exists")
	// ErrRecordMismatch is returned by Verify when a record does not reproduce.
	ErrRecordMismatch = errors.New("save: record does not match its inputs")
)

// Record is the persisted form of one rsa.Result.
// Integers are stored big-endian.
type Record struct {
	Message     []byte `cbor:"1,keyasint"`
	Exponent    []byte `cbor:"2,keyasint"`
	Modulus     []byte `cbor:"3,keyasint"`
	Value       []byte `cbor:"4,keyasint"`
	Digest      string `cbor:"5,keyasint"`
	Fingerprint []byte `cbor:"6,keyasint"`
	Engine      string `cbor:"7,keyasint"`
}

// NewRecord captures res.
func NewRecord(res *rsa.Result) *Record {
	return &Record{
		Message:     res.Message.Bytes(),
		Exponent:    res.Exponent.Bytes(),
		Modulus:     res.Modulus.Bytes(),
		Value:       res.Value.Bytes(),
		Digest:      res.Digest,
		Fingerprint: res.Fingerprint[:],
		Engine:      string(res.Engine),
	}
}

// Verify recomputes the record from its inputs with the generic engine and
// checks the value, the digest and the fingerprint.
func (r *Record) Verify() error {
	res, err := rsa.Compute(rsa.Inputs{
		Message:  new(BigInt.Nat).SetBytes(r.Message),
		Exponent: new(BigInt.Nat).SetBytes(r.Exponent),
		Modulus:  new(BigInt.Nat).SetBytes(r.Modulus),
	})
	if err != nil {
		return err
	}
	if !res.Value.Eq(new(BigInt.Nat).SetBytes(r.Value)) {
		return errors.Wrap(ErrRecordMismatch, "value")
	}
	if res.Digest != r.Digest {
		return errors.Wrap(ErrRecordMismatch, "digest")
	}
	if !bytes.Equal(res.Fingerprint[:], r.Fingerprint) {
		return errors.Wrap(ErrRecordMismatch, "fingerprint")
	}
	return nil
}

// SaveRecord marshals rec and writes it to path. An existing file is never overwritten.
func SaveRecord(path string, rec *Record) error {
	marshalled, err := cbor.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "marshal record")
	}
	return writeRecordFile(path, marshalled)
}

// LoadRecord reads and unmarshals the record stored at path.
func LoadRecord(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("unable to read record file %s", path)
		return nil, errors.Wrap(err, "read record")
	}
	rec := new(Record)
	if err := cbor.Unmarshal(raw, rec); err != nil {
		return nil, errors.Wrapf(err, "unmarshal record %s", path)
	}
	log.Debugf("done read record file %s", path)
	return rec, nil
}

// RemoveRecord deletes the record stored at path. A missing file is not an error.
func RemoveRecord(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Errorf("unable to remove record file %s", path)
		return errors.Wrap(err, "remove record")
	}
	log.Debugf("done removed record file %s", path)
	return nil
}

// writeRecordFile saves data to path, creating the parent directory.
func writeRecordFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create record dir")
	}
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		log.Errorf("record %s already exists, will not overwrite file", path)
		return errors.Wrap(ErrRecordExists, path)
	}
	if err != nil {
		log.Errorf("unable to open record file %s for writing", path)
		return errors.Wrap(err, "open record")
	}
	if _, err = fd.Write(data); err != nil {
		fd.Close()
		log.Errorf("unable to write record file %s", path)
		return errors.Wrap(err, "write record")
	}
	if err = fd.Close(); err != nil {
		log.Errorf("unable to close record file %s", path)
		return errors.Wrap(err, "close record")
	}
	log.Debugf("done wrote record file %s", path)
	return nil
}
