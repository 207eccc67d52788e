package config

import (
	"log/slog"
	"os"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LogLevel reads LOG_LEVEL ("debug", "info", "warn" or "error"). Without it
// development builds log at debug and everything else at info.
func LogLevel() slog.Level {
	var level slog.Level
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && level.UnmarshalText([]byte(v)) == nil {
		return level
	}
	if Development() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
