package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// InitializeLogger builds the global logger. Production mode is selected via
// the ENV environment variable; anything else gets the development encoder.
func InitializeLogger() {
	once.Do(func() {
		var logger *zap.Logger
		var err error
		if os.Getenv("ENV") == "production" {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		sugar = logger.Sugar()
	})
}

// Close flushes buffered log entries.
func Close() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		InitializeLogger()
	}
	return sugar
}

// Key-value logging helpers so call sites avoid the logger.Logger repetition.

func Debug(msg string, keysAndValues ...interface{}) {
	get().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	get().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	get().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	get().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	get().Fatalw(msg, keysAndValues...)
}
