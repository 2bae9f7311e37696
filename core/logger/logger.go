package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.Must(zap.NewProduction()).Sugar()

// Init replaces the default logger with one configured at the given level.
// Levels: debug, info, warn, error.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	sugar = log.Sugar()
	return nil
}

// normalize tolerates the common call shape logger.Error("Repo:Op", err)
// alongside regular key/value pairs.
func normalize(keysAndValues []any) []any {
	if len(keysAndValues) == 1 {
		if err, ok := keysAndValues[0].(error); ok {
			return []any{"error", err}
		}
	}
	if len(keysAndValues)%2 != 0 {
		return append(keysAndValues, "(missing)")
	}
	return keysAndValues
}

func Debug(msg string, keysAndValues ...any) {
	sugar.Debugw(msg, normalize(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	sugar.Infow(msg, normalize(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	sugar.Warnw(msg, normalize(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	sugar.Errorw(msg, normalize(keysAndValues)...)
}

func Fatal(msg string, keysAndValues ...any) {
	sugar.Fatalw(msg, normalize(keysAndValues)...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = sugar.Sync()
}
