package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newLogger(level).Sugar()
)

func newLogger(lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Init sets the global level (debug, info, warn, error, fatal; case-insensitive).
// Anything else means info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// SetLogger swaps the underlying logger; tests use it with zaptest/observer.
// It returns a func that restores the previous logger.
func SetLogger(l *zap.Logger) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := sugar
	sugar = l.Sugar()
	return func() {
		mu.Lock()
		defer mu.Unlock()
		sugar = prev
	}
}

// L returns the structured logger for callers that want fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar.Desugar()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func enabled(l zapcore.Level) bool {
	return level.Enabled(l)
}

func Debugf(format string, v ...interface{}) {
	if enabled(zapcore.DebugLevel) {
		get().Debugf(format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(zapcore.InfoLevel) {
		get().Infof(format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(zapcore.WarnLevel) {
		get().Warnf(format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(zapcore.ErrorLevel) {
		get().Errorf(format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	get().Fatalf(format, v...)
}

func Sync() {
	_ = get().Sync()
}

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}
