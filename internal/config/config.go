package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "farehub/libs/config"
)

// Config defines fare service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"FARE_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string `yaml:"dsn" env:"FARE_POSTGRES_DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"FARE_POSTGRES_MAX_CONNS"`
	} `yaml:"database"`
	Redis struct {
		Addr          string        `yaml:"addr" env:"FARE_REDIS_ADDR"`
		Password      string        `yaml:"password" env:"FARE_REDIS_PASSWORD"`
		DB            int           `yaml:"db" env:"FARE_REDIS_DB"`
		TravellingTTL time.Duration `yaml:"travelling_ttl" env:"FARE_REDIS_TRAVELLING_TTL"`
	} `yaml:"redis"`
	Payments struct {
		BaseURL string `yaml:"base_url" env:"FARE_PAYMENTS_URL"`
	} `yaml:"payments"`
	Auth struct {
		Secret               string        `yaml:"secret" env:"FARE_AUTH_SECRET"`
		TokenTTL             time.Duration `yaml:"token_ttl" env:"FARE_AUTH_TOKEN_TTL"`
		OperatorUsername     string        `yaml:"operator_username" env:"FARE_AUTH_OPERATOR"`
		OperatorPasswordHash string        `yaml:"operator_password_hash" env:"FARE_AUTH_OPERATOR_HASH"`
	} `yaml:"auth"`
	Billing struct {
		Timezone     string        `yaml:"timezone" env:"FARE_BILLING_TIMEZONE"`
		Interval     time.Duration `yaml:"interval" env:"FARE_BILLING_INTERVAL"`
		PeakLong     string        `yaml:"peak_long" env:"FARE_PRICE_PEAK_LONG"`
		PeakShort    string        `yaml:"peak_short" env:"FARE_PRICE_PEAK_SHORT"`
		OffPeakLong  string        `yaml:"off_peak_long" env:"FARE_PRICE_OFF_PEAK_LONG"`
		OffPeakShort string        `yaml:"off_peak_short" env:"FARE_PRICE_OFF_PEAK_SHORT"`
		PeakCap      string        `yaml:"peak_cap" env:"FARE_CAP_PEAK"`
		OffPeakCap   string        `yaml:"off_peak_cap" env:"FARE_CAP_OFF_PEAK"`
	} `yaml:"billing"`
	Readers struct {
		PingInterval time.Duration `yaml:"ping_interval" env:"FARE_READERS_PING_INTERVAL"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"FARE_READERS_WRITE_TIMEOUT"`
	} `yaml:"readers"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8085"
	cfg.Billing.Timezone = "Europe/London"
	cfg.Redis.TravellingTTL = 24 * time.Hour
	cfg.Auth.TokenTTL = time.Hour
	cfg.Readers.PingInterval = 30 * time.Second
	cfg.Readers.WriteTimeout = 10 * time.Second

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("config: auth secret required")
	}
	if strings.TrimSpace(cfg.Auth.OperatorUsername) == "" || strings.TrimSpace(cfg.Auth.OperatorPasswordHash) == "" {
		return nil, errors.New("config: operator credentials required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// Location resolves the billing timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Billing.Timezone)
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: timezone: %w", err)
	}
	return loc, nil
}
