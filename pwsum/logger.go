package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// newLogger builds the diagnostics logger. Diagnostics always go to STDERR so that STDOUT carries
// nothing but digests; --quiet silences them entirely and --debug lowers the threshold.
func newLogger() *zap.Logger {
	if pQuiet {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.OutputPaths, cfg.ErrorOutputPaths = []string{"stderr"}, []string{"stderr"}
	cfg.DisableStacktrace = true
	if pDebug {
		cfg = zap.NewDevelopmentConfig()
	}
	if pNoCodes || pDebug {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
