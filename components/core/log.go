package core

import (
	"log"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// LogInf logs informational events.
	LogInf = log.New(levelWriter{level: zapcore.InfoLevel}, "", 0)
	// LogWrn logs warning events.
	LogWrn = log.New(levelWriter{level: zapcore.WarnLevel}, "", 0)
	// LogErr logs error events.
	LogErr = log.New(levelWriter{level: zapcore.ErrorLevel}, "", 0)
	// LogDbg logs debug events, disabled unless the logger is set up in debug mode.
	LogDbg = log.New(levelWriter{level: zapcore.DebugLevel}, "", 0)
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(newLogger(zapcore.Lock(os.Stderr), false, false))
}

// Logger returns the zap logger all the Log* loggers write to.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetupLogger replaces the process logger.
//
// Parameters:
//   - path - log file path, if empty, logs are written to stderr in console format,
//     otherwise they are appended to the file in JSON format.
//   - debug - enable debug level.
func SetupLogger(path string, debug bool) error {
	if path == "" {
		replaceLogger(newLogger(zapcore.Lock(os.Stderr), false, debug))

		return nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	replaceLogger(newLogger(zapcore.AddSync(file), true, debug))

	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = Logger().Sync()
}

func replaceLogger(l *zap.Logger) {
	if prev := logger.Swap(l); prev != nil {
		_ = prev.Sync()
	}
}

func newLogger(ws zapcore.WriteSyncer, json bool, debug bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(encoder, ws, level))
}

type levelWriter struct {
	level zapcore.Level
}

func (w levelWriter) Write(p []byte) (int, error) {
	if ce := Logger().Check(w.level, strings.TrimSuffix(string(p), "\n")); ce != nil {
		ce.Write()
	}

	return len(p), nil
}
