// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package logger builds the zap logger of the tokentree command.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaissmai/tokentree/internal/config"
)

// ParseLevel maps the config level to a zap level, unknown levels are info.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a logger writing to stderr.
func New(cfg config.LogConfig) *zap.Logger {
	return NewWriter(cfg, os.Stderr)
}

// NewWriter returns a logger writing to w, the output of the
// command stays free of log lines.
func NewWriter(cfg config.LogConfig, w io.Writer) *zap.Logger {
	var enc zapcore.Encoder

	if cfg.Format == "json" {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "timestamp"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(cfg.Level)))

	return zap.New(core, zap.AddCaller())
}
