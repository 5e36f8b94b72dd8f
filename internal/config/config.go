package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ストアの種類
const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
)

// Config アプリケーション設定
type Config struct {
	SupabaseURL     string
	SupabaseKey     string
	Port            string
	GinMode         string
	Store           string
	DatabaseURL     string
	ShutdownTimeout time.Duration
	Logger          LoggerConfig
}

// LoggerConfig ロガー設定
type LoggerConfig struct {
	Level  string
	Format string
}

// Load 環境変数から設定を読み込む
func Load() (*Config, error) {
	shutdownTimeout, err := GetEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SupabaseURL:     strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:     os.Getenv("SUPABASE_KEY"),
		Port:            GetEnv("PORT", "5000"),
		GinMode:         GetEnv("GIN_MODE", "debug"),
		Store:           GetEnv("TEAMS_STORE", StoreSupabase),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ShutdownTimeout: shutdownTimeout,
		Logger: LoggerConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "console"),
		},
	}

	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is not set")
	}
	if cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_KEY is not set")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 設定値の検証
func (c *Config) Validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	switch c.Store {
	case StoreSupabase:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when TEAMS_STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("invalid TEAMS_STORE: %s (must be: %s, %s)", c.Store, StoreSupabase, StorePostgres)
	}

	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be: console, json)", c.Logger.Format)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be greater than 0")
	}
	return nil
}

// Addr サーバーのリッスンアドレス
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// GetEnv 環境変数を取得し、未設定ならデフォルト値を返す
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration 環境変数をtime.Durationとして取得。未設定ならデフォルト値
func GetEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q (%w)", key, value, err)
	}
	return d, nil
}
