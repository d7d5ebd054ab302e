package models

type Config struct {
	HealthCheck HealthCheckConfig `yaml:"health_check" json:"health_check"`
	Logger      LoggerConfig      `yaml:"logger" json:"logger"`
	MongoDB     MongoConfig       `yaml:"mongodb" json:"mongo_db"`
	Vault       VaultConfig       `yaml:"vault" json:"vault"`
	Reaper      ServiceConfig     `yaml:"reaper" json:"reaper"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type VaultConfig struct {
	Address     string   `yaml:"address" json:"address"`
	Signers     []string `yaml:"signers" json:"signers"`
	Threshold   int64    `yaml:"threshold" json:"threshold"`
	AssetSymbol string   `yaml:"asset_symbol" json:"asset_symbol"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
