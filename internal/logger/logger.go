package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name onto a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func encoderConfig(env string) zapcore.EncoderConfig {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// NewWithSink builds the storefront logger writing to ws. Production uses
// JSON, every other environment a coloured console encoder.
func NewWithSink(env, level string, ws zapcore.WriteSyncer) *zap.Logger {
	var encoder zapcore.Encoder
	if env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig(env))
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig(env))
	}

	core := zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(ParseLevel(level)))

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	}
	if env != "production" {
		opts = append(opts, zap.Development())
	}

	return zap.New(core, opts...).With(zap.String("service", "storefront"))
}

// New creates the structured logger on stdout for container compatibility
func New(env, level string) (*zap.Logger, error) {
	return NewWithSink(env, level, zapcore.Lock(os.Stdout)), nil
}
