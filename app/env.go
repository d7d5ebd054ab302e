package app

import (
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) {
	log.Debug("[ENV] Reading config from env")
	loadEnvFile(envFile)

	// mongodb
	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	if os.Getenv("MONGODB_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("MONGODB_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MONGODB_TIMEOUT_MS: ", err.Error())
		} else {
			Config.MongoDB.TimeoutMillis = timeoutMillis
		}
	}

	// logger
	if os.Getenv("LOGGER_LEVEL") != "" {
		Config.Logger.Level = os.Getenv("LOGGER_LEVEL")
	}

	// vault
	if os.Getenv("VAULT_ADDRESS") != "" {
		Config.Vault.Address = os.Getenv("VAULT_ADDRESS")
	}
	if os.Getenv("VAULT_SIGNERS") != "" {
		Config.Vault.Signers = strings.Split(os.Getenv("VAULT_SIGNERS"), ",")
	}
	if os.Getenv("VAULT_THRESHOLD") != "" {
		threshold, err := strconv.ParseInt(os.Getenv("VAULT_THRESHOLD"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing VAULT_THRESHOLD: ", err.Error())
		} else {
			Config.Vault.Threshold = threshold
		}
	}
	if os.Getenv("VAULT_ASSET_SYMBOL") != "" {
		Config.Vault.AssetSymbol = os.Getenv("VAULT_ASSET_SYMBOL")
	}

	// reaper
	if os.Getenv("REAPER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("REAPER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing REAPER_ENABLED: ", err.Error())
		} else {
			Config.Reaper.Enabled = enabled
		}
	}
	if os.Getenv("REAPER_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("REAPER_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing REAPER_INTERVAL_MS: ", err.Error())
		} else {
			Config.Reaper.IntervalMillis = intervalMillis
		}
	}

	// health check
	if os.Getenv("HEALTH_CHECK_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("HEALTH_CHECK_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_INTERVAL_MS: ", err.Error())
		} else {
			Config.HealthCheck.IntervalMillis = intervalMillis
		}
	}

	log.Debug("[ENV] Config read from env")
}
