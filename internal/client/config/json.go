package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/suimirror/internal/flagx"
	"github.com/dmitrijs2005/suimirror/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "15s" or as integer nanoseconds. Fields left out of the file
// keep the value they had before parseJson ran.
type JsonConfig struct {
	ServerURL       *string         `json:"server_url"`
	Username        *string         `json:"username"`
	Token           *string         `json:"token"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	RefreshInterval *timex.Duration `json:"refresh_interval"`
	StatePath       *string         `json:"state_path"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
	Language        *string         `json:"language"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.Username, jc.Username)
	setString(&cfg.Token, jc.Token)
	setString(&cfg.StatePath, jc.StatePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Language, jc.Language)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshInterval != nil {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
