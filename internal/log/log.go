package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
)

// Init configures the global logger. When development is true a
// human-readable console encoder at debug level is used; otherwise the
// production JSON encoder writing to stderr.
//
// Init may be called at most once; later calls are ignored. Packages that
// log before Init ran get the production configuration.
func Init(development bool) {
	loggerOnce.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if development {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			// zap.NewProduction only fails on sink setup; fall back to a
			// no-op core rather than refusing to start.
			l = zap.New(zapcore.NewNopCore())
		}
		logger = l.Sugar()
	})
}

func get() *zap.SugaredLogger {
	Init(false)
	return logger
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func Debug(msg string, kv ...any) {
	get().Debugw(msg, kv...)
}

func Info(msg string, kv ...any) {
	get().Infow(msg, kv...)
}

func Warn(msg string, kv ...any) {
	get().Warnw(msg, kv...)
}

// Error logs msg with the error prepended into the key-value list.
func Error(msg string, err error, kv ...any) {
	extended := append([]any{"err", err}, kv...)
	get().Errorw(msg, extended...)
}
