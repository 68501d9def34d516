package logger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const requestIDKey ctxKey = iota

var (
	globalLogger *logger
	initOnce     sync.Once
)

// logger wraps zap and pulls request scoped fields out of the context.
type logger struct {
	zapLogger *zap.Logger
}

// Init builds the global logger. Repeated calls are ignored.
func Init(level string, asJSON bool) error {
	var initErr error

	initOnce.Do(func() {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			initErr = fmt.Errorf("logger.Init: parse level %q: %w", level, err)
			return
		}

		encoderCfg := zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}

		var encoder zapcore.Encoder
		if asJSON {
			encoder = zapcore.NewJSONEncoder(encoderCfg)
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoder = zapcore.NewConsoleEncoder(encoderCfg)
		}

		core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), lvl)
		globalLogger = &logger{
			zapLogger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		}
	})

	return initErr
}

// SetNopLogger replaces the global logger with one that drops everything.
func SetNopLogger() {
	globalLogger = &logger{zapLogger: zap.NewNop()}
}

func L() *logger {
	if globalLogger == nil {
		SetNopLogger()
	}
	return globalLogger
}

func Sync() error {
	if globalLogger != nil {
		return globalLogger.zapLogger.Sync()
	}
	return nil
}

// With returns a child of the global logger carrying fields.
func With(fields ...zap.Field) *logger {
	return L().With(fields...)
}

// WithRequestID stores the request id so every log call made with ctx carries it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	L().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	L().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	L().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	L().Error(ctx, msg, fields...)
}

func (l *logger) With(fields ...zap.Field) *logger {
	return &logger{zapLogger: l.zapLogger.With(fields...)}
}

func (l *logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, l.withContext(ctx, fields)...)
}

func (l *logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, l.withContext(ctx, fields)...)
}

func (l *logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, l.withContext(ctx, fields)...)
}

func (l *logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, l.withContext(ctx, fields)...)
}

func (l *logger) withContext(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		return append(fields, zap.String("request_id", requestID))
	}
	return fields
}

// NoopLogger satisfies the small logger interfaces of the platform packages.
type NoopLogger struct{}

func (NoopLogger) Info(context.Context, string, ...zap.Field)  {}
func (NoopLogger) Error(context.Context, string, ...zap.Field) {}
