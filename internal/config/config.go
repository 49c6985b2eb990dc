// Package config loads the plugin configuration from a YAML file.
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"elapse/internal/scheduler"
)

const (
	defaultEnv         = "dev"
	defaultLogLevel    = "info"
	defaultDBPath      = "data/elapse.db"
	defaultLocale      = "en"
	defaultSettingsKey = "elapse.settings"
	defaultAppID       = "app.elapse"
	defaultVersion     = "dev"
	defaultInterval    = "30s"
	defaultCurrency    = "EUR"
)

// Load reads and validates the configuration file at path. A missing
// path yields the defaults so the binary runs without any config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.App.Env) == "" {
		c.App.Env = defaultEnv
	}
	if strings.TrimSpace(c.App.LogLevel) == "" {
		c.App.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(c.Host.DBPath) == "" {
		c.Host.DBPath = defaultDBPath
	}
	if strings.TrimSpace(c.Host.Locale) == "" {
		c.Host.Locale = defaultLocale
	}
	if strings.TrimSpace(c.Host.SettingsKey) == "" {
		c.Host.SettingsKey = defaultSettingsKey
	}
	if strings.TrimSpace(c.Host.AppID) == "" {
		c.Host.AppID = defaultAppID
	}
	if strings.TrimSpace(c.Host.Version) == "" {
		c.Host.Version = defaultVersion
	}
	if strings.TrimSpace(c.Refresh.Interval) == "" {
		c.Refresh.Interval = defaultInterval
	}
	if strings.TrimSpace(c.Currency.DefaultCode) == "" {
		c.Currency.DefaultCode = defaultCurrency
	}
}

func validate(c *Config) error {
	switch strings.ToLower(strings.TrimSpace(c.App.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug/info/warn/error, got %q", c.App.LogLevel)
	}
	if c.Refresh.Enabled {
		if _, ok := scheduler.ParseIntervalDuration(c.Refresh.Interval); !ok {
			return fmt.Errorf("refresh.interval is not a valid interval: %q", c.Refresh.Interval)
		}
	}
	if len(c.Currency.DefaultCode) != 3 {
		return fmt.Errorf("currency.default_code must be a 3-letter ISO code, got %q", c.Currency.DefaultCode)
	}
	return nil
}
