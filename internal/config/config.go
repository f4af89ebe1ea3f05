package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Draft    DraftConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// UpstreamConfig points at the catalog backend that owns all product data.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// DraftConfig selects where staged draft records live between wizard steps.
type DraftConfig struct {
	Store      string // "redis", "postgres" or "memory"
	TTLMinutes int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("API_BASE_URL", "http://localhost:7000")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("DRAFT_STORE", "redis")
	viper.SetDefault("DRAFT_TTL_MINUTES", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        viper.GetString("API_BASE_URL"),
			TimeoutSeconds: viper.GetInt("API_TIMEOUT_SECONDS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Draft: DraftConfig{
			Store:      viper.GetString("DRAFT_STORE"),
			TTLMinutes: viper.GetInt("DRAFT_TTL_MINUTES"),
		},
	}
}
