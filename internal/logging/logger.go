// Package logging builds the zap logger used across EcoLoop.
package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config options used in creating the logger.
type Config struct {
	FilePath string // log file path, opened for append; stderr when empty
	Level    string // debug, info, warn or error
	Env      string // development or production
}

// NewLogger returns a zap logger for cfg. Development uses a console
// encoder, production emits JSON. The returned cleanup flushes the logger and
// closes the log file; call it once the logger is no longer used.
func NewLogger(cfg Config) (*zap.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var encoder zapcore.Encoder
	switch cfg.Env {
	case "production":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoder(func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
		})
		ec.TimeKey = "@timestamp"
		ec.MessageKey = "message"
		encoder = zapcore.NewJSONEncoder(ec)
	default:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(ec)
	}

	sink := "stderr"
	if cfg.FilePath != "" {
		sink = cfg.FilePath
	}
	out, closeOut, err := zap.Open(sink)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}

	core := zapcore.NewCore(encoder, out, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	cleanup := func() {
		_ = logger.Sync()
		closeOut()
	}
	return logger, cleanup, nil
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "warn", "":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown logging level: %q", name)
	}
}
