package logger

import (
	"fmt"
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// Info logs the provided message at [InfoLevel].
func Info(msg string) {
	logger.Info(msg)
}

// Infof logs a formatted message at [InfoLevel].
func Infof(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

// Debug logs the provided message at [DebugLevel].
func Debug(msg string) {
	logger.Debug(msg)
}

// Error logs the provided message at [ErrorLevel].
func Error(msg string) {
	logger.Error(msg)
}

// Errorf logs a formatted message at [ErrorLevel].
func Errorf(format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
}
