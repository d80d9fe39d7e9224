// Package config loads server configuration from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures everything cmd/server needs to start.
type Config struct {
	Port       int
	DBPath     string
	StaticPath string

	LogLevel  string
	LogFormat string

	ProviderURL     string
	BatchSize       int
	ProviderRetries uint64
	ProviderBackoff time.Duration
	ProviderTimeout time.Duration

	HistoryLimit int

	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
}

// Load reads configuration. Values come from, in increasing priority:
// defaults, the config file (if path is non-empty or swiper.yaml exists in
// the working directory), then SWIPER_* environment variables. The bare
// names PORT, DB_PATH, STATIC_PATH and LOG_LEVEL are honored as well.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "./data/swiper.db")
	v.SetDefault("static_path", "../frontend/static")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("provider.url", "https://randomuser.me")
	v.SetDefault("provider.batch_size", 20)
	v.SetDefault("provider.retries", 2)
	v.SetDefault("provider.backoff", 200*time.Millisecond)
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("history_limit", 50)
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetEnvPrefix("SWIPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"port", "db_path", "static_path", "log_level"} {
		if err := v.BindEnv(key, "SWIPER_"+strings.ToUpper(key), strings.ToUpper(key)); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("swiper")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		Port:            v.GetInt("port"),
		DBPath:          v.GetString("db_path"),
		StaticPath:      v.GetString("static_path"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		ProviderURL:     v.GetString("provider.url"),
		BatchSize:       v.GetInt("provider.batch_size"),
		ProviderRetries: v.GetUint64("provider.retries"),
		ProviderBackoff: v.GetDuration("provider.backoff"),
		ProviderTimeout: v.GetDuration("provider.timeout"),
		HistoryLimit:    v.GetInt("history_limit"),

		SessionIdleTimeout:   v.GetDuration("session.idle_timeout"),
		SessionSweepInterval: v.GetDuration("session.sweep_interval"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("invalid provider.batch_size %d", c.BatchSize)
	}
	if c.SessionIdleTimeout < 0 {
		return fmt.Errorf("invalid session.idle_timeout %s", c.SessionIdleTimeout)
	}
	if c.SessionIdleTimeout > 0 && c.SessionSweepInterval <= 0 {
		return fmt.Errorf("invalid session.sweep_interval %s", c.SessionSweepInterval)
	}
	if c.DBPath == "" {
		return errors.New("db_path required")
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
