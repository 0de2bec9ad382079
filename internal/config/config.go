package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Parse modes accepted for parse_mode.
const (
	ParseModeStrict  = "strict"
	ParseModeLenient = "lenient"
)

// Config holds the client configuration loaded from files and environment variables.
type Config struct {
	AppName        string        `mapstructure:"app_name"`
	Env            string        `mapstructure:"app_env"`
	LogLevel       string        `mapstructure:"log_level"`
	APIBase        string        `mapstructure:"api_base"`
	ParseMode      string        `mapstructure:"parse_mode"`
	TimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout time.Duration `mapstructure:"-"`

	SessionStore string `mapstructure:"session_store"`
	SessionPath  string `mapstructure:"session_path"`
	RedisAddr    string `mapstructure:"redis_addr"`
	RedisDB      int    `mapstructure:"redis_db"`
	RedisPrefix  string `mapstructure:"redis_prefix"`

	PublishersFile string `mapstructure:"publishers_file"`
	BootstrapLimit int    `mapstructure:"bootstrap_limit"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "salaryhelper-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base", "http://localhost:8000/api/v1")
	v.SetDefault("parse_mode", ParseModeStrict)
	v.SetDefault("request_timeout_seconds", 0) // no timeout
	v.SetDefault("session_store", "bbolt")
	v.SetDefault("session_path", "./data/session.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "salaryhelper:")
	v.SetDefault("publishers_file", "")
	v.SetDefault("bootstrap_limit", 5)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIBase = strings.TrimRight(strings.TrimSpace(c.APIBase), "/")

	c.ParseMode = strings.ToLower(strings.TrimSpace(c.ParseMode))
	switch c.ParseMode {
	case "":
		c.ParseMode = ParseModeStrict
	case ParseModeStrict, ParseModeLenient:
	default:
		return fmt.Errorf("invalid parse_mode %q (expected strict or lenient)", c.ParseMode)
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be zero or positive)")
	}
	c.RequestTimeout = time.Duration(c.TimeoutSeconds) * time.Second

	if c.BootstrapLimit < 0 {
		return fmt.Errorf("invalid bootstrap_limit (must be zero or positive)")
	}
	return nil
}
