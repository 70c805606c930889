package config

import "time"

// Config holds runtime settings for the suimirror CLI.
//
// Units: RequestTimeout and RefreshInterval are time.Duration values. A zero
// RefreshInterval disables background refresh.
type Config struct {
	ServerURL       string
	Username        string
	Token           string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
	StatePath       string
	LogLevel        string
	LogFormat       string
	Language        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:2095/app"
	c.RequestTimeout = 15 * time.Second
	c.RefreshInterval = 0
	c.StatePath = "suimirror.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Language = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
