package config

// Config is the top-level configuration carrier.
type Config struct {
	App      AppConfig      `toml:"app"`
	Host     HostConfig     `toml:"host"`
	Tokens   TokensConfig   `toml:"tokens"`
	Refresh  RefreshConfig  `toml:"refresh"`
	Currency CurrencyConfig `toml:"currency"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// HostConfig describes the standalone host backing store and locale.
type HostConfig struct {
	DBPath      string `toml:"db_path"`
	Locale      string `toml:"locale"`
	LocalesDir  string `toml:"locales_dir"`
	SettingsKey string `toml:"settings_key"`
	AppID       string `toml:"app_id"`
	Version     string `toml:"version"`
}

type TokensConfig struct {
	// ResetOnSync reproduces the legacy behavior of blanking every
	// tracked token's value on each variables update.
	ResetOnSync bool `toml:"reset_on_sync"`
}

type RefreshConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

type CurrencyConfig struct {
	DefaultCode string `toml:"default_code"`
}
