package telemetry

import (
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = mustDefault()
)

// Init replaces the process logger. json selects the encoding, debug lowers
// the level to debug.
func Init(json bool, debug bool) error {
	logger, err := build(json, debug)
	if err != nil {
		return err
	}
	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	current().Info(msg, toZapFields(fields)...)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	current().Warn(msg, toZapFields(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	current().Error(msg, toZapFields(fields)...)
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func build(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "ts",
			EncodeTime: zapcore.RFC3339TimeEncoder,
		},
	}
	return cfg.Build()
}

func mustDefault() *zap.Logger {
	logger, err := build(true, false)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// toZapFields flattens the map in key order so log lines stay stable.
func toZapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
