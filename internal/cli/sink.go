package cli

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// logs go to stderr so command output stays pipeable
var zapErrorSink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
