package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"keyword-match-service/internal/domain"
)

// defaultKeywordsHost is the hosted keywords API, used when only an auth
// token is configured.
const defaultKeywordsHost = "api.kokocares.org/keywords"

type Config struct {
	Server   ServerConfig
	Keywords KeywordsConfig
	Database DatabaseConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type KeywordsConfig struct {
	URL        string
	Auth       string
	File       string
	Timeout    time.Duration
	DefaultTTL time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Audit           bool
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("KOKO_KEYWORDS_TIMEOUT", "30s")
	v.SetDefault("KOKO_KEYWORDS_TTL", "3600s")
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_NAME", "keywords")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DATABASE_AUDIT", false)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Keywords: KeywordsConfig{
			URL:        v.GetString("KOKO_KEYWORDS_URL"),
			Auth:       v.GetString("KOKO_KEYWORDS_AUTH"),
			File:       v.GetString("KOKO_KEYWORDS_FILE"),
			Timeout:    durationOr(v, "KOKO_KEYWORDS_TIMEOUT", 30*time.Second),
			DefaultTTL: durationOr(v, "KOKO_KEYWORDS_TTL", time.Hour),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durationOr(v, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			Audit:           v.GetBool("DATABASE_AUDIT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

// ResolveURL applies the upstream resolution rule: exactly one of URL or
// Auth must be set. A bare auth token addresses the hosted API.
func (k KeywordsConfig) ResolveURL() (string, error) {
	switch {
	case k.URL != "" && k.Auth != "":
		return "", domain.ErrAuthOrURLMissing
	case k.URL != "":
		return k.URL, nil
	case k.Auth != "":
		return fmt.Sprintf("https://%s@%s", k.Auth, defaultKeywordsHost), nil
	default:
		return "", domain.ErrAuthOrURLMissing
	}
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
