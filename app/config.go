package app

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	common "github.com/payrolldao/vault-core/common"
	"github.com/payrolldao/vault-core/models"
	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	validateConfig()
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}
	log.Debug("[CONFIG] Reading config file: ", configFile)
	var yamlFile, err = os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}
	return true
}

func loadEnvFile(envFile string) {
	if envFile == "" {
		return
	}
	err := godotenv.Load(envFile)
	if err != nil {
		log.Warn("[CONFIG] Error loading env file: ", err.Error())
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.MongoDB.TimeoutMillis == 0 {
		log.Fatal("[CONFIG] MongoDB.TimeoutMillis is required")
	}
	if Config.Vault.Address == "" {
		log.Fatal("[CONFIG] Vault.Address is required")
	}
	vaultAddress, err := common.ParseAddress(Config.Vault.Address)
	if err != nil {
		log.Fatal("[CONFIG] Vault.Address is invalid: ", err)
	}
	if common.IsZeroAddress(vaultAddress) {
		log.Fatal("[CONFIG] Vault.Address must not be ", common.ZeroAddress)
	}
	if len(Config.Vault.Signers) == 0 {
		log.Fatal("[CONFIG] Vault.Signers is required")
	}
	signers, err := common.ParseAddresses(Config.Vault.Signers)
	if err != nil {
		log.Fatal("[CONFIG] Vault.Signers is invalid: ", err)
	}
	for _, signer := range signers {
		if common.IsZeroAddress(signer) {
			log.Fatal("[CONFIG] Vault.Signers must not contain ", common.ZeroAddress)
		}
	}
	if Config.Vault.Threshold < 1 || Config.Vault.Threshold > int64(len(Config.Vault.Signers)) {
		log.Fatal("[CONFIG] Vault.Threshold must be between 1 and the number of signers")
	}
	if Config.Vault.AssetSymbol == "" {
		log.Fatal("[CONFIG] Vault.AssetSymbol is required")
	}
	if Config.Reaper.Enabled && Config.Reaper.IntervalMillis == 0 {
		log.Fatal("[CONFIG] Reaper.IntervalMillis is required")
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		log.Fatal("[CONFIG] HealthCheck.IntervalMillis is required")
	}
	log.Debug("[CONFIG] Config validated")
}
