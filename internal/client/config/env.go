package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/suimirror/internal/flagx"
)

const envPrefix = "SUI_"

// parseEnv overlays Config with SUI_* variables.
//
// Variables are read from a dotenv file first and from the process
// environment second, so an exported variable beats the file. The dotenv path
// comes from -e/-env; without it ./.env is used when it exists. An explicit
// file that cannot be read, or a malformed duration, panics.
func parseEnv(cfg *Config) {
	vars := map[string]string{}

	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		vars = fileVars
	case explicit || !errors.Is(err, fs.ErrNotExist):
		panic(err)
	}

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, envPrefix) {
			vars[k] = v
		}
	}

	applyEnv(cfg, vars)
}

func applyEnv(cfg *Config, vars map[string]string) {
	str := func(name string, dst *string) {
		if v, ok := vars[envPrefix+name]; ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := vars[envPrefix+name]; ok && v != "" {
			d, err := parseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("SERVER_URL", &cfg.ServerURL)
	str("USERNAME", &cfg.Username)
	str("TOKEN", &cfg.Token)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	dur("REFRESH_INTERVAL", &cfg.RefreshInterval)
	str("STATE_PATH", &cfg.StatePath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("LANG", &cfg.Language)
}

// parseDuration accepts a Go duration ("1m30s") or a whole number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
