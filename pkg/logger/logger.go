// Package logger builds the zap logger of the command line tool.
package logger

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing colored console output to stderr. Stdout
// is reserved for the entries.
func New(debug bool) *zap.Logger {
	return NewWithWriter(debug, zapcore.Lock(os.Stderr))
}

// NewWithWriter is like New, but writes to w. Every logger carries a
// run_id field, so the lines of one run can be told apart.
func NewWithWriter(debug bool, w zapcore.WriteSyncer) *zap.Logger {
	// Warnings and errors are always written. Info and debug messages
	// only when asked for.
	warningsAndErrors := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.WarnLevel
	})
	minLevel := zapcore.InfoLevel
	if debug {
		minLevel = zapcore.DebugLevel
	}
	verbose := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= minLevel && lvl < zapcore.WarnLevel
	})

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, w, warningsAndErrors),
		zapcore.NewCore(encoder, w, verbose),
	)
	return zap.New(core).With(zap.String("run_id", uuid.NewString()))
}

// Sync flushes the logger. Syncing a terminal fails on some systems, this
// error is ignored.
func Sync(log *zap.Logger) error {
	err := log.Sync()
	if err != nil && (strings.Contains(err.Error(), "invalid argument") ||
		strings.Contains(err.Error(), "inappropriate ioctl for device")) {
		return nil
	}
	return err
}
