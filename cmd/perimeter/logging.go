package main

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "perimeter.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the standard logger and the returned component logger
// With debug off both discard and the returned file is nil
// The terminal owns stdout and stderr, so logs only ever go to the file
func setupLogging(debug bool) (*log.Logger, *os.File) {
	if !debug {
		stdlog.SetOutput(io.Discard)
		return log.New(io.Discard), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		stdlog.SetOutput(io.Discard)
		return log.New(io.Discard), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, info.ModTime().Format("20060102-150405")+"-"+logFileName)
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		stdlog.SetOutput(io.Discard)
		return log.New(io.Discard), nil
	}

	stdlog.SetOutput(f)
	stdlog.SetFlags(stdlog.LstdFlags | stdlog.Lmicroseconds)

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "perimeter",
	})
	return logger, f
}
