package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	HTTPAddr       string `mapstructure:"http_addr"`
	ModelsFile     string `mapstructure:"models_file"`
	PublishersFile string `mapstructure:"publishers_file"`

	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	FetchUserAgent      string        `mapstructure:"fetch_user_agent"`
	FetchMaxBodyBytes   int           `mapstructure:"fetch_max_body_bytes"`

	TranslateMaxChars int `mapstructure:"translate_max_chars"`
	SummarizeMaxChars int `mapstructure:"summarize_max_chars"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-summarizer")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":5000")
	v.SetDefault("models_file", "./configs/models.yaml")
	v.SetDefault("publishers_file", "")
	v.SetDefault("fetch_timeout_seconds", 15)
	v.SetDefault("fetch_user_agent", "Mozilla/5.0 (compatible; samvad-summarizer/1.0)")
	v.SetDefault("fetch_max_body_bytes", 4<<20)
	v.SetDefault("translate_max_chars", 3000)
	v.SetDefault("summarize_max_chars", 3000)
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/announced.db")
	v.SetDefault("storage_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))

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
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	c.FetchTimeout = time.Duration(c.FetchTimeoutSeconds) * time.Second

	if c.FetchMaxBodyBytes <= 0 {
		return fmt.Errorf("invalid fetch_max_body_bytes (must be positive)")
	}
	if c.TranslateMaxChars <= 0 {
		return fmt.Errorf("invalid translate_max_chars (must be positive)")
	}
	if c.SummarizeMaxChars <= 0 {
		return fmt.Errorf("invalid summarize_max_chars (must be positive)")
	}

	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second

	return nil
}
