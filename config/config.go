// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Usage is the one-line synopsis printed with ErrUsage.
const Usage = "rsaexp -m <message_file> -n <modulus_file> -d <key_file>"

// ErrUsage is returned when a required input path is missing.
var ErrUsage = errors.New("usage: " + Usage)

// Config struct represents the configuration of one run.
type Config struct {
	//Path of the file holding the message m.
	MessagePath string `json:"message"`
	//Path of the file holding the exponent d.
	ExponentPath string `json:"exp"`
	//Path of the file holding the modulus n.
	ModulusPath string `json:"modulus"`
	//Exponentiation engine, generic or word.
	Engine string `json:"engine"`
	//Where to write a result record, empty for none.
	RecordPath string `json:"record"`
	//logrus level name.
	LogLevel string `json:"logLevel"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Engine:   "generic",
		LogLevel: "warn",
	}
}

// Load reads a JSON configuration file on top of Default.
func Load(path string) (Config, error) {
	conf := Default()
	jsonFile, err := os.Open(path)
	if err != nil {
		log.Errorf("fail open %s", path)
		return conf, errors.Wrap(err, "open config")
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return conf, errors.Wrap(err, "read config")
	}
	if err = json.Unmarshal(byteValue, &conf); err != nil {
		log.Errorf("fail unmarshal %s", path)
		return conf, errors.Wrapf(err, "unmarshal config %s", path)
	}
	log.Debugf("done unmarshal %s", path)
	return conf, nil
}

// Merge returns c with every non-empty field of o taking precedence.
func (c Config) Merge(o Config) Config {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&c.MessagePath, o.MessagePath)
	pick(&c.ExponentPath, o.ExponentPath)
	pick(&c.ModulusPath, o.ModulusPath)
	pick(&c.Engine, o.Engine)
	pick(&c.RecordPath, o.RecordPath)
	pick(&c.LogLevel, o.LogLevel)
	return c
}

// Validate returns ErrUsage naming every missing input path.
func (c Config) Validate() error {
	var missing []string
	if c.MessagePath == "" {
		missing = append(missing, "message")
	}
	if c.ExponentPath == "" {
		missing = append(missing, "exp")
	}
	if c.ModulusPath == "" {
		missing = append(missing, "modulus")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrUsage, "missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}
