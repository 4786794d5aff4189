// Package config loads service configuration from the environment, with an
// optional config.yaml for local development.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string `mapstructure:"PORT"`
	Env                string `mapstructure:"ENV"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	JWTSecret          string `mapstructure:"JWT_HMAC_SECRET"`
	StaticTokens       string `mapstructure:"STATIC_TOKENS"`
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleSecret       string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	DefaultTimezone    string `mapstructure:"DEFAULT_TIMEZONE"`
	MaxRequestsPerMin  int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	BookingHorizonDays int    `mapstructure:"BOOKING_HORIZON_DAYS"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads config from env vars and, when present, config.yaml.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 365)

	// Viper only exposes env vars it has seen; bind the required ones
	// explicitly since they have no defaults.
	for _, key := range []string{
		"DATABASE_URL", "JWT_HMAC_SECRET", "STATIC_TOKENS",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL",
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL required")
	}
	return &cfg, nil
}
