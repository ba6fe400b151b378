// Package logger sets up the zap logger shared across the service.
package logger

import (
	"os"

	"github.com/samvad-hq/samvad-summarizer/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// S is the package-level logger to be used across packages after Init.
	S *zap.SugaredLogger
	// objLog backs the *Obj helpers and skips their frame when reporting the caller.
	objLog *zap.Logger
)

// Logger is the structured logging surface components depend on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Init initializes a zap SugaredLogger using settings from config.
func Init(cfg *config.Config) (Logger, error) {
	var level zapcore.Level
	switch cfg.LogLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	base := newZap(cfg, zapcore.Lock(os.Stdout), level)
	S = base.Sugar()
	objLog = base.WithOptions(zap.AddCallerSkip(1))
	return NewZapLogger(base), nil
}

func newZap(cfg *config.Config, out zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(out),
		level,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.AppName), zap.String("env", cfg.Env))
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// ZapLogger satisfies Logger on top of a zap.Logger. Callers are reported as
// the code that called the method, not this package.
type ZapLogger struct {
	z *zap.Logger
}

// NewZapLogger wraps z.
func NewZapLogger(z *zap.Logger) ZapLogger {
	return ZapLogger{z: z.WithOptions(zap.AddCallerSkip(1))}
}

func (l ZapLogger) InfoObj(msg, key string, obj interface{}) {
	if l.z != nil {
		l.z.Info(msg, zap.Any(key, obj))
	}
}

func (l ZapLogger) DebugObj(msg, key string, obj interface{}) {
	if l.z != nil {
		l.z.Debug(msg, zap.Any(key, obj))
	}
}

func (l ZapLogger) WarnObj(msg, key string, obj interface{}) {
	if l.z != nil {
		l.z.Warn(msg, zap.Any(key, obj))
	}
}

func (l ZapLogger) ErrorObj(msg, key string, obj interface{}) {
	if l.z != nil {
		l.z.Error(msg, zap.Any(key, obj))
	}
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// Ensure returns log, or a NopLogger when log is nil.
func Ensure(log Logger) Logger {
	if log == nil {
		return NopLogger{}
	}
	return log
}

// Minimal object logging helpers -------------------------------------------------
// These are tiny wrappers that log the given object as a structured field named
// `key` and do not attempt to parse arbitrary kv arrays.
func InfoObj(msg, key string, obj interface{}) {
	if objLog == nil {
		return
	}
	objLog.Info(msg, zap.Any(key, obj))
}

func DebugObj(msg, key string, obj interface{}) {
	if objLog == nil {
		return
	}
	objLog.Debug(msg, zap.Any(key, obj))
}

func WarnObj(msg, key string, obj interface{}) {
	if objLog == nil {
		return
	}
	objLog.Warn(msg, zap.Any(key, obj))
}

func ErrorObj(msg, key string, obj interface{}) {
	if objLog == nil {
		return
	}
	objLog.Error(msg, zap.Any(key, obj))
}
