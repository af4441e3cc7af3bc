package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment
// variables. It is constructed once at startup and passed explicitly; no other
// component reads process environment directly.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	TargetZip      string `mapstructure:"target_zip"`
	SearchDistance int    `mapstructure:"search_distance"`
	ModelCode      string `mapstructure:"model_code"`
	Condition      string `mapstructure:"vehicle_condition"`
	InventoryLink  string `mapstructure:"inventory_link"`

	SourcesFile    string `mapstructure:"sources_file"`
	PublishersFile string `mapstructure:"publishers_file"`

	StorageType string `mapstructure:"storage_type"`
	SeenFile    string `mapstructure:"seen_file"`
	BBoltPath   string `mapstructure:"bbolt_path"`

	SMTPServer string `mapstructure:"smtp_server"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	SMTPUser   string `mapstructure:"smtp_user"`
	SMTPPass   string `mapstructure:"smtp_pass"`
	EmailTo    string `mapstructure:"email_to"`
	EmailFrom  string `mapstructure:"email_from"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
// Missing notifier credentials are a valid degraded configuration, not an
// error; the notifier falls back to diagnostic output.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "lotwatch")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("target_zip", "95054")
	v.SetDefault("search_distance", 50) // miles
	v.SetDefault("model_code", "MY")
	v.SetDefault("vehicle_condition", "new")
	v.SetDefault("inventory_link", "https://www.tesla.com/inventory/new/m")
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "file")
	v.SetDefault("seen_file", "./data/seen_ids.txt")
	v.SetDefault("bbolt_path", "./data/seen.db")
	v.SetDefault("smtp_server", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("email_to", "")
	v.SetDefault("email_from", "")
	v.SetDefault("http_timeout_seconds", 15)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.TargetZip) == "" {
		return nil, fmt.Errorf("target_zip must not be empty")
	}
	if cfg.SearchDistance <= 0 {
		return nil, fmt.Errorf("invalid search_distance (must be positive miles)")
	}
	if strings.TrimSpace(cfg.ModelCode) == "" {
		return nil, fmt.Errorf("model_code must not be empty")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}

	return &cfg, nil
}

// NotifierConfigured reports whether enough SMTP settings are present to
// attempt real delivery. Anything less degrades to the console notifier.
func (c *Config) NotifierConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.EmailTo != ""
}
