package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     panel base URL
//	-u string     user name offered at login
//	-t int        request timeout in seconds
//	-i int        background refresh interval in seconds, 0 disables it
//	-s string     path of the local state database
//	-l string     log level
//	-lang string  notification language
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-t", "-i", "-s", "-l", "-lang"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "panel base url")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "user name")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refresh := fs.Int("i", int(cfg.RefreshInterval.Seconds()), "refresh interval (in seconds, 0 = manual)")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "local state database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "notification language")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.RefreshInterval = time.Duration(*refresh) * time.Second
}
