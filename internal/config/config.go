package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig resolves in order: DSN as-is, CloudConnString parsed into a
// postgres URL, SQLitePath as the last-resort local store.
type DatabaseConfig struct {
	DSN             string
	CloudConnString string
	SQLitePath      string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

// StorageConfig selects the blob sink: cloud when Endpoint and Bucket are
// both set, otherwise the local uploads directory.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	LocalDir  string
}

type SecurityConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
}

type AppConfig struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Security    SecurityConfig
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PHOTOFEED")
	// Nested keys map to underscored env names (database.dsn →
	// PHOTOFEED_DATABASE_DSN).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "30s")
	v.SetDefault("http.idletimeout", "60s")

	// Keys with no meaningful default still need one registered, or
	// Unmarshal never consults the environment for them.
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.cloudconnstring", "")
	v.SetDefault("database.sqlitepath", "data/photofeed.db")
	v.SetDefault("database.maxopen", 20)
	v.SetDefault("database.maxidle", 5)
	v.SetDefault("database.connmaxlifetime", "30m")

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.usessl", true)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.localdir", "static/uploads")

	v.SetDefault("security.sessionsecret", "dev-only-secret")
	v.SetDefault("security.sessionttl", "168h")
}
