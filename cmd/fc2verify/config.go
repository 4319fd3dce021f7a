// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel  = "info"
	defaultLogFile   = "fc2verify.log"
	defaultNetwork   = "mainnet"
	defaultHeight    = -1
)

// config defines the configuration options for fc2verify.
//
// See loadConfig for details on the configuration load process.
type config struct {
	BlockFile        string `short:"f" long:"blockfile" description:"Path to a single serialized block to verify" required:"true"`
	Network          string `short:"n" long:"network" description:"Network to verify against (mainnet, testnet, legacytestnet, regtest)"`
	Height           int32  `short:"H" long:"height" description:"Height of the block being verified, or -1 if unknown"`
	HeightInCoinbase bool   `long:"heightincoinbase" description:"Require and check the BIP-34 coinbase height commitment"`
	DumpMerkleTree   bool   `long:"dumpmerkletree" description:"Log every node of the block's full merkle tree before verifying"`
	LogDir           string `long:"logdir" description:"Directory to log output to"`
	Debug            string `short:"d" long:"debuglevel" description:"Logging level: trace, debug, info, warn, error, critical"`
}

// loadConfig parses command-line arguments into a config struct, filling in
// defaults for anything the caller did not set, in the same
// flags.NewParser/flags.Default shape the btcsuite family of daemons use for
// their CLI entry points.
func loadConfig() (*config, []string, error) {
	cfg := config{
		Network: defaultNetwork,
		Height:  defaultHeight,
		LogDir:  defaultLogDir(),
		Debug:   defaultLogLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}

func defaultLogDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".fc2verify", "logs")
}

func logFilePath(cfg *config) string {
	return filepath.Join(cfg.LogDir, defaultLogFile)
}

func usageError(msg string) error {
	return fmt.Errorf("fc2verify: %s", msg)
}
