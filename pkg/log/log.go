// Package log declares the logging contract the codec's outer
// wrappers (Encoder, Decoder, Runner) depend on. The codec core
// itself never imports this package — Serialize/Deserialize stay pure.
package log

import "go.uber.org/zap"

// Logger is a small, leveled, structured logging interface. A nil
// Logger cannot be called; Nop() returns one that discards every call,
// and the Encoder and Decoder fall back to it when their Logger is nil.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	// With returns a Logger that always includes the given fields.
	With(fields ...zap.Field) Logger

	Sync() error
}

type zapLogger struct {
	z *zap.Logger
}

// New wraps a zap.Logger as a Logger.
func New(z *zap.Logger) Logger {
	return &zapLogger{z: z}
}

// NewProduction constructs a default JSON-structured production Logger.
func NewProduction() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(z), nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return New(zap.NewNop())
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{z: l.z.With(fields...)}
}

func (l *zapLogger) Sync() error { return l.z.Sync() }
