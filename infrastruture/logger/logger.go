// Package logger provides prefix named, colored console loggers backed by zap.
package logger

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const colorReset = "\033[0m"

var ErrNilWriter = errors.New("logger output writer is nil")

// Logger writes leveled console lines tagged with a colored prefix.
type Logger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
}

// New creates a Logger writing to out. Every line carries prefix wrapped in
// color, which may be empty for plain output.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, ErrNilWriter
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeCaller = nil
	encCfg.CallerKey = ""
	encCfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		if color == "" {
			enc.AppendString("[" + name + "]")
			return
		}
		enc.AppendString(color + "[" + name + "]" + colorReset)
	}

	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), level)

	return &Logger{
		zl:    zap.New(core).Named(prefix),
		level: level,
	}, nil
}

// SetDebug toggles debug lines on and off.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(zapcore.InfoLevel)
}

func (l *Logger) Info(msg string)    { l.zl.Info(msg) }
func (l *Logger) Warning(msg string) { l.zl.Warn(msg) }
func (l *Logger) Error(msg string)   { l.zl.Error(msg) }
func (l *Logger) Debug(msg string)   { l.zl.Debug(msg) }

// With returns a child logger that adds fields to every line.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zl: l.zl.With(fields...), level: l.level}
}

// Sync flushes buffered lines.
func (l *Logger) Sync() error { return l.zl.Sync() }
