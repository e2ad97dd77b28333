// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/consts"
)

// newLogger writes colored output to stdout and, when a log directory is
// configured, JSON lines to a rotated file.
func newLogger(cfg *config.Config) logging.Logger {
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(cfg.LogLevel, os.Stdout, logging.Colors.ConsoleEncoder()),
	}
	if len(cfg.LogDir) > 0 {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, consts.Name+".log"),
			MaxSize:    cfg.LogMaxSizeMB, // megabytes
			MaxBackups: cfg.LogMaxFiles,
			Compress:   true,
		}
		cores = append(cores, logging.NewWrappedCore(cfg.LogLevel, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(consts.Name, cores...)
}
