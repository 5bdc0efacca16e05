// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd009-technology-stack R5 (logging).
package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// configureLogger sets the global slog logger. Logs go to stderr; when a
// log file is configured they go through a rotating writer instead.
func configureLogger(level, logFile string) {
	var writer = os.Stderr

	handlerOpts := &slog.HandlerOptions{
		Level: parseSlogLevel(level, slog.LevelInfo),
	}

	if strings.TrimSpace(logFile) != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(rotating, handlerOpts)))
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, handlerOpts)))
}

// parseSlogLevel maps a level name (or numeric slog level) to slog.Level.
func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}
