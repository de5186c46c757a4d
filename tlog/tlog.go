// Package tlog is this module's structured logger, grounded on the
// teacher's logging.go ("single text writer behind a mutex" shape) but
// built on go.uber.org/zap instead of a hand-rolled slog.Handler — zap
// already gives a mutex-guarded, concurrency-safe core over an io.Writer,
// so there is nothing left for a custom handler to add.
package tlog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Init installs the module-wide logger, writing leveled, timestamped lines
// to w (os.Stderr in cmd/tbctl/main.go). Safe to call more than once; the
// last call wins, matching the teacher's single global logger pattern.
func Init(w *os.File, level zapcore.Level) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)

	mu.Lock()
	logger = zap.New(core)
	mu.Unlock()
}

// L returns the current module-wide logger. Before Init is called it is a
// no-op logger, so components that log during early startup never panic.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Sync flushes any buffered log entries, deferred from cmd/tbctl/main.go.
func Sync() error {
	return L().Sync()
}
