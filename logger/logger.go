// Package logger holds the process-wide zap logger used by every pipeline
// stage.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zlog *zap.Logger

// InitLogger builds the shared logger at the given level. Must be called
// once before any other function of this package.
func InitLogger(level zapcore.Level) error {

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	// Stacktraces drown the per-file progress lines
	encoderConfig.StacktraceKey = ""
	config.EncoderConfig = encoderConfig

	built, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	zlog = built
	return nil
}

func Debug(message string, fields ...zap.Field) {
	zlog.Debug(message, fields...)
}

func Info(message string, fields ...zap.Field) {
	zlog.Info(message, fields...)
}

func Warn(message string, fields ...zap.Field) {
	zlog.Warn(message, fields...)
}

func Error(message string, fields ...zap.Field) {
	zlog.Error(message, fields...)
}

func Fatal(message string, fields ...zap.Field) {
	zlog.Fatal(message, fields...)
}

// Sync flushes any buffered entries, called on shutdown
func Sync() error {
	return zlog.Sync()
}
