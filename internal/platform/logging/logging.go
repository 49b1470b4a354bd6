// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process-wide structured logger.
//
// Every entry is JSON on stdout. When a log file is configured the same
// stream is duplicated into a size-rotated file managed by lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/recursos/internal/platform/constants"
)

// Rotation policy for the optional log file.
const (
	maxFileSizeMB  = 50
	maxFileBackups = 5
	maxFileAgeDays = 30
)

// Options controls how [New] assembles the logger.
type Options struct {
	// Debug lowers the level to [slog.LevelDebug].
	Debug bool

	// File is the optional path of the rotating log file.
	File string

	// Stdout overrides the console writer; nil means [os.Stdout].
	Stdout io.Writer
}

// New returns a JSON logger tagged with the application name, plus a closer
// that flushes the rotating file (a no-op when no file is configured).
func New(opts Options) (*slog.Logger, func() error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	if opts.Stdout != nil {
		out = opts.Stdout
	}

	closer := func() error { return nil }
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxFileBackups,
			MaxAge:     maxFileAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(out, rotating)
		closer = rotating.Close
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName)), closer
}
