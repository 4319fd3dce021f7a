// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/faircoin2/fc2core/blockchain"
)

// logWriter implements io.Writer and writes marshalled log records both to
// standard output and a rotating log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

// backendLog is the logging backend used to create all subsystem loggers.
// The backend must not be used before the log rotator has been initialized,
// or data races and/or nil pointer dereferences will occur.
var backendLog = btclog.NewBackend(logWriter{})

// logRotator is one of the logging outputs. It should be closed on
// application shutdown.
var logRotator *rotator.Rotator

// log is the logger used by this package's own code (the CLI wiring
// itself); subsystem loggers for the imported packages are created in
// subsystemLoggers below, handed to their packages in init, and leveled by
// setLogLevels.
var log = backendLog.Logger("VRFY")

// subsystemLoggers maps each subsystem identifier to its associated logger,
// mirroring the teacher's per-package UseLogger convention so every
// subsystem can be leveled independently.
var subsystemLoggers = map[string]btclog.Logger{
	"VRFY": log,
	"BLCH": backendLog.Logger("BLCH"),
}

func init() {
	blockchain.UseLogger(subsystemLoggers["BLCH"])
}

// initLogRotator initializes the logging rotator to write logs to logFile
// and create roll files in the same directory. It must be called before the
// package-level log rotator variable is used, otherwise logging will fail.
func initLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0o700)
	if err != nil {
		os.Stderr.WriteString("failed to create log directory: " + err.Error() + "\n")
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		os.Stderr.WriteString("failed to create file rotator: " + err.Error() + "\n")
		os.Exit(1)
	}
	logRotator = r
}

// setLogLevels sets the logging level for every registered subsystem logger.
// Invalid levels are silently ignored.
func setLogLevels(levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, l := range subsystemLoggers {
		l.SetLevel(level)
	}
}
