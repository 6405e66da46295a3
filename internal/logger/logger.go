package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	//nolint:gochecknoglobals // Global logger is shared across the application by design.
	globalLogger *zap.SugaredLogger

	//nolint:gochecknoglobals // Global level is adjusted at runtime from configuration.
	globalLevel zap.AtomicLevel

	//nolint:gochecknoglobals // Guards replacement of the global logger.
	globalMutex sync.RWMutex
)

//nolint:gochecknoinits // The logger must be usable before configuration is loaded.
func init() {
	globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	globalLogger = New(globalLevel)
}

// New creates a new zap.SugaredLogger writing to stderr with the given level.
// A nil level enabler defaults to the info level.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core, options...).Sugar()
}

// ParseLogLevel converts a textual log level into a zapcore.Level.
// The second return value reports whether the input was recognized;
// unrecognized input yields the info level.
func ParseLogLevel(level string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "dpanic":
		return zapcore.DPanicLevel, true
	case "panic":
		return zapcore.PanicLevel, true
	case "fatal":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Logger returns the current global logger.
func Logger() *zap.SugaredLogger {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	return globalLogger
}

// SetLogger replaces the global logger.
func SetLogger(logger *zap.SugaredLogger) {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	globalLogger = logger
}

// Level returns the current global log level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// SetLevel changes the global log level.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug logging is currently enabled.
func IsDebugLevel() bool {
	return globalLevel.Enabled(zapcore.DebugLevel)
}

// Debug logs a message at the debug level.
func Debug(ctx context.Context, args ...interface{}) {
	fromContext(ctx).Debug(args...)
}

// Debugf logs a formatted message at the debug level.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Debugf(format, args...)
}

// DebugKV logs a message with key-value pairs at the debug level.
func DebugKV(ctx context.Context, message string, kvs ...interface{}) {
	fromContext(ctx).Debugw(message, kvs...)
}

// Info logs a message at the info level.
func Info(ctx context.Context, args ...interface{}) {
	fromContext(ctx).Info(args...)
}

// Infof logs a formatted message at the info level.
func Infof(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Infof(format, args...)
}

// InfoKV logs a message with key-value pairs at the info level.
func InfoKV(ctx context.Context, message string, kvs ...interface{}) {
	fromContext(ctx).Infow(message, kvs...)
}

// Warn logs a message at the warn level.
func Warn(ctx context.Context, args ...interface{}) {
	fromContext(ctx).Warn(args...)
}

// Warnf logs a formatted message at the warn level.
func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Warnf(format, args...)
}

// WarnKV logs a message with key-value pairs at the warn level.
func WarnKV(ctx context.Context, message string, kvs ...interface{}) {
	fromContext(ctx).Warnw(message, kvs...)
}

// Error logs a message at the error level.
func Error(ctx context.Context, args ...interface{}) {
	fromContext(ctx).Error(args...)
}

// Errorf logs a formatted message at the error level.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Errorf(format, args...)
}

// ErrorKV logs a message with key-value pairs at the error level.
func ErrorKV(ctx context.Context, message string, kvs ...interface{}) {
	fromContext(ctx).Errorw(message, kvs...)
}

// Fatal logs a message at the fatal level and exits the process.
func Fatal(ctx context.Context, args ...interface{}) {
	fromContext(ctx).Fatal(args...)
}

// Fatalf logs a formatted message at the fatal level and exits the process.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Fatalf(format, args...)
}

// FatalKV logs a message with key-value pairs at the fatal level and exits the process.
func FatalKV(ctx context.Context, message string, kvs ...interface{}) {
	fromContext(ctx).Fatalw(message, kvs...)
}

type loggerContextKey struct{}

// ToContext stores a logger in the context for request-scoped logging.
func ToContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// fromContext returns the context-scoped logger if one was stored,
// falling back to the global logger.
func fromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey{}).(*zap.SugaredLogger); ok {
			return logger
		}
	}

	return Logger()
}
