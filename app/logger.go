package app

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLogger applies the configured log level. An unrecognized level falls
// back to info with a warning instead of failing startup.
func InitLogger() {
	logLevel := strings.ToLower(strings.TrimSpace(Config.Logger.Level))

	switch logLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "", "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
		log.Warn("[LOGGER] Unknown log level ", logLevel, ", defaulting to info")
	}

	log.Info("[LOGGER] Logger initialized with level: ", log.GetLevel())
}
