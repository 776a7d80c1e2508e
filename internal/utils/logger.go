package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger that prints bare messages.
// Debug and info messages go to stdout; warnings and errors go to stderr.
func NewApplicationLogger() (*zap.Logger, error) {
	return newMessageLogger(zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr), zapcore.InfoLevel), nil
}

func newMessageLogger(standardOutput zapcore.WriteSyncer, standardError zapcore.WriteSyncer, minimumLevel zapcore.Level) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
		LineEnding: zapcore.DefaultLineEnding,
	})
	regularLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= minimumLevel && level < zapcore.WarnLevel
	})
	problemLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= minimumLevel && level >= zapcore.WarnLevel
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, standardOutput, regularLevels),
		zapcore.NewCore(encoder, standardError, problemLevels),
	)
	return zap.New(core)
}
