// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

/*
*
rsaexp computes the raw RSA primitive m^d mod n
 1. Read m, d and n from three files
 2. Raise m to d modulo n
 3. Write the result's hex digest to stdout, two digits per byte
*/
package main

import (
	"fmt"
	"io"
	"os"

	"RSA_EXP/config"
	"RSA_EXP/internal/save"
	"RSA_EXP/pkg/BigInt"
	"RSA_EXP/pkg/decimal"
	"RSA_EXP/pkg/rsa"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// attachFlags binds the command line onto conf.
func attachFlags(fs *pflag.FlagSet, conf *config.Config, configPath *string) {
	fs.StringVarP(&conf.MessagePath, "message", "m", "", "file holding the message m")
	fs.StringVarP(&conf.ExponentPath, "exp", "d", "", "file holding the exponent d")
	fs.StringVarP(&conf.ModulusPath, "modulus", "n", "", "file holding the modulus n")
	fs.StringVar(configPath, "config", "", "JSON configuration file")
	fs.StringVar(&conf.Engine, "engine", "", "exponentiation engine: generic or word")
	fs.StringVar(&conf.RecordPath, "record", "", "write a cbor result record to this file")
	fs.StringVar(&conf.LogLevel, "log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")
}

// newRootCmd builds the command. The digest goes to stdout, everything else to stderr.
func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		flags      config.Config
		configPath string
	)
	cmd := &cobra.Command{
		Use:   config.Usage,
		Short: "Compute the raw RSA primitive m^d mod n",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.Wrapf(config.ErrUsage, "unexpected arguments %q", args)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.Default()
			if configPath != "" {
				var err error
				if conf, err = config.Load(configPath); err != nil {
					return err
				}
			}
			conf = conf.Merge(flags)
			return run(conf, stdout)
		},
	}
	attachFlags(cmd.Flags(), &flags, &configPath)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(config.ErrUsage, err.Error())
	})
	return cmd
}

// run loads the three inputs, computes the primitive and writes the payload.
// Nothing reaches stdout unless every step succeeded.
func run(conf config.Config, stdout io.Writer) error {
	level, err := conf.Level()
	if err != nil {
		return errors.Wrap(config.ErrUsage, err.Error())
	}
	log.SetLevel(level)
	if err := conf.Validate(); err != nil {
		return err
	}
	engine, err := rsa.ParseEngine(conf.Engine)
	if err != nil || engine == rsa.EngineCRT {
		return errors.Wrapf(config.ErrUsage, "unsupported engine %q", conf.Engine)
	}
	log.Debugf("integer backend %s, engine %s", BigInt.Backend, engine)

	var in rsa.Inputs
	for _, src := range []struct {
		path string
		dst  **BigInt.Nat
		name string
	}{
		{conf.MessagePath, &in.Message, "message"},
		{conf.ExponentPath, &in.Exponent, "exponent"},
		{conf.ModulusPath, &in.Modulus, "modulus"},
	} {
		*src.dst, err = decimal.LoadFile(src.path)
		if err != nil {
			return errors.WithMessagef(err, "%s file error", src.name)
		}
	}

	res, err := rsa.Compute(in, rsa.WithEngine(engine))
	if err != nil {
		return err
	}
	if conf.RecordPath != "" {
		if err := save.SaveRecord(conf.RecordPath, save.NewRecord(res)); err != nil {
			return err
		}
	}
	if _, err := stdout.Write(res.Payload); err != nil {
		if conf.RecordPath != "" {
			// no output, no record
			if rmErr := save.RemoveRecord(conf.RecordPath); rmErr != nil {
				log.Warnln(rmErr)
			}
		}
		return errors.Wrap(err, "write digest")
	}
	log.Infof("wrote %d bytes, fingerprint %x", len(res.Payload), res.Fingerprint)
	return nil
}

// The main function is the entry point of the program.
func main() {
	log.SetOutput(os.Stderr)
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, config.ErrUsage) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
		if errors.Is(err, decimal.ErrParseFailure) {
			fmt.Fprintln(os.Stderr, "Error: cannot read one or more files.")
		}
		log.Errorln(err)
		os.Exit(1)
	}
}
