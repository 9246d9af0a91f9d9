package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	UserID       string
	ClientID     string
	ClientSecret string
	APIBaseURL   string
	Port         string
	AllowOrigin  string
	HTTPTimeout  time.Duration
	LogLevel     slog.Level
}

func FromEnv() Config {
	// .env is a local-dev convenience; absence is not an error
	_ = godotenv.Load()

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		UserID:       os.Getenv("AVITO_USER_ID"),
		ClientID:     os.Getenv("AVITO_CLIENT_ID"),
		ClientSecret: os.Getenv("AVITO_CLIENT_SECRET"),
		APIBaseURL:   envOr("AVITO_API_URL", "https://api.avito.ru"),
		Port:         envOr("PORT", "10000"),
		AllowOrigin:  envOr("ALLOW_ORIGIN", "https://dash.avitodash.ru"),
		HTTPTimeout:  to,
		LogLevel:     lvl,
	}
}

func (c Config) Validate() error {
	if c.UserID == "" {
		return errors.New("AVITO_USER_ID is required")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("AVITO_CLIENT_ID and AVITO_CLIENT_SECRET are required")
	}
	return nil
}

func (c Config) TokenURL() string { return c.APIBaseURL + "/token" }
func (c Config) ItemStatsURL() string {
	return c.APIBaseURL + "/stats/v1/accounts/" + c.UserID + "/items"
}
func (c Config) CallStatsURL() string {
	return c.APIBaseURL + "/core/v1/accounts/" + c.UserID + "/calls/stats/"
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
