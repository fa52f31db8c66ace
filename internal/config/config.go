package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	// APIURL is the analysis backend base address. It may be empty; every
	// analysis call then fails with a configuration error.
	APIURL                string        `mapstructure:"aura_api_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	HTTPAddr       string   `mapstructure:"http_addr"`
	GinMode        string   `mapstructure:"gin_mode"`
	CORSOriginsRaw string   `mapstructure:"cors_origins"`
	CORSOrigins    []string `mapstructure:"-"`

	ReviewsFile     string `mapstructure:"reviews_file"`
	ReviewsSelector string `mapstructure:"reviews_selector"`
	SinksFile       string `mapstructure:"sinks_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "aura-review-console")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("aura_api_url", "")
	v.SetDefault("request_timeout_seconds", 0)
	v.SetDefault("http_addr", ":3000")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("reviews_file", "")
	v.SetDefault("reviews_selector", ".review-text")
	v.SetDefault("sinks_file", "./configs/sinks.yaml")

	v.AutomaticEnv()
	// The Next.js build used these names for the same value.
	if err := v.BindEnv("aura_api_url", "AURA_API_URL", "NEXT_PUBLIC_API_URL", "BACKEND_API_URL"); err != nil {
		return nil, fmt.Errorf("bind api url env: %w", err)
	}

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
	c.APIURL = strings.TrimSpace(c.APIURL)

	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	c.CORSOrigins = splitList(c.CORSOriginsRaw)
	if strings.TrimSpace(c.ReviewsSelector) == "" {
		c.ReviewsSelector = ".review-text"
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
