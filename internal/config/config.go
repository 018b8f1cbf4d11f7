// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"gold-ledger/pkg/db"
)

// Backend selection values.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort       string
	Backend          string
	GoldPricePerGram decimal.Decimal
	DB               db.Config
}

// LoadConfig loads configuration from environment variables with sensible
// defaults for local development. Keys use dots in config files and
// underscores in the environment (server.port -> SERVER_PORT).
func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("backend", BackendPostgres)
	v.SetDefault("gold.price_per_gram", "10000000")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "user")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "goldledgerdb")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 5*time.Minute)

	backend := v.GetString("backend")
	if backend != BackendPostgres && backend != BackendMemory {
		return nil, fmt.Errorf("invalid BACKEND %q: must be %q or %q", backend, BackendPostgres, BackendMemory)
	}

	price, err := decimal.NewFromString(v.GetString("gold.price_per_gram"))
	if err != nil {
		return nil, fmt.Errorf("invalid GOLD_PRICE_PER_GRAM: %w", err)
	}

	return &AppConfig{
		ServerPort:       v.GetString("server.port"),
		Backend:          backend,
		GoldPricePerGram: price,
		DB: db.Config{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			DBName:          v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
	}, nil
}
