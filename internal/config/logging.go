package config

import (
	"strings"

	"github.com/rs/zerolog"
)

// GetLogLevel maps the LOG_LEVEL environment variable to a zerolog level.
// Unset or unrecognised values default to warn so SDK chatter stays out of
// normal CLI output.
func GetLogLevel() zerolog.Level {
	switch strings.ToUpper(GetEnvOrDefault("LOG_LEVEL", "WARN")) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
