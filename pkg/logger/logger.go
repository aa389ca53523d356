package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
)

var logger *log.Logger

// Init initializes the logger
func Init(verbose bool) {
	logLevel, err := log.ParseLevel(config.GetString("log.level"))
	if err != nil {
		logLevel = log.InfoLevel
	}
	if verbose {
		logLevel = log.DebugLevel
	}

	logger = log.NewWithOptions(openSink(config.GetString("log.file")), log.Options{
		ReportTimestamp: true,
		Prefix:          "deserve",
	})
	logger.SetLevel(logLevel)
}

// openSink returns a rotating file writer, or stderr when the log
// directory cannot be created.
func openSink(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.GetInt("log.max_size_mb"),
		MaxBackups: config.GetInt("log.max_backups"),
	}
}

// SetOutput redirects the logger, creating it when Init was never called.
func SetOutput(w io.Writer) {
	if logger == nil {
		logger = log.New(w)
		return
	}
	logger.SetOutput(w)
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// GetLogger returns the logger instance
func GetLogger() *log.Logger {
	return logger
}
