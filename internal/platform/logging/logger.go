// Package logging is a thin slog-style facade over zap: callers pass
// alternating key/value pairs and the Context variants add trace ids.
package logging

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

type Logger struct {
	base *zap.Logger
	flush *sync.Once
}

// Options configures New. Empty service fields are omitted from entries.
type Options struct {
	Level          Level
	Output         io.Writer
	ServiceName    string
	ServiceVersion string
	Environment    string
}

var fallback atomic.Pointer[Logger]

func init() {
	fallback.Store(NewNop())
}

func NewJSON(level Level) *Logger {
	return New(Options{Level: level})
}

func New(opts Options) *Logger {
	encoding := zap.NewProductionEncoderConfig()
	encoding.TimeKey = "time"
	encoding.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoding.EncodeLevel = zapcore.CapitalLevelEncoder
	encoding.EncodeDuration = zapcore.StringDurationEncoder

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoding), zapcore.Lock(zapcore.AddSync(out)), opts.Level)

	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))
	for key, value := range map[string]string{
		"service": opts.ServiceName,
		"version": opts.ServiceVersion,
		"env":     opts.Environment,
	} {
		if value != "" {
			base = base.With(zap.String(key, value))
		}
	}
	return wrap(base)
}

func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(base *zap.Logger) *Logger {
	return &Logger{base: base, flush: &sync.Once{}}
}

// Default returns the process-wide logger, a no-op until SetDefault is called.
func Default() *Logger {
	return fallback.Load()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	fallback.Store(logger)
}

func (l *Logger) or() *Logger {
	if l == nil || l.base == nil {
		return Default()
	}
	return l
}

// Zap exposes the underlying logger for libraries that take one directly.
func (l *Logger) Zap() *zap.Logger {
	return l.or().base.WithOptions(zap.AddCallerSkip(-2))
}

// Sync flushes buffered entries once; later calls are no-ops.
func (l *Logger) Sync() error {
	var err error
	l.or().flush.Do(func() { err = l.or().base.Sync() })
	return err
}

func (l *Logger) With(args ...any) *Logger {
	return wrap(l.or().base.With(fields(context.Background(), args)...))
}

func (l *Logger) Named(name string) *Logger {
	return wrap(l.or().base.Named(name))
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(context.Background(), LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelError, msg, args)
}

func (l *Logger) emit(ctx context.Context, level Level, msg string, args []any) {
	entry := l.or().base.Check(level, msg)
	if entry == nil {
		return
	}
	entry.Write(fields(ctx, args)...)
}

// fields turns key/value pairs into zap fields. Non-string keys become "arg"
// and a trailing key without a value is logged as null.
func fields(ctx context.Context, args []any) []zap.Field {
	out := make([]zap.Field, 0, len(args)/2+2)
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = "arg"
		}
		var value any
		if len(args) > 1 {
			value = args[1]
			args = args[2:]
		} else {
			args = nil
		}
		if err, isErr := value.(error); isErr {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, value))
	}

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		out = append(out,
			zap.String("trace_id", span.TraceID().String()),
			zap.String("span_id", span.SpanID().String()),
		)
	}
	return out
}
