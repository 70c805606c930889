// Package config loads runtime configuration for the suimirror CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. SUI_* environment variables, read from a dotenv file (-e/-env, or
//     ./.env when present) and then from the process environment.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     panel base URL
//	-u string     user name
//	-t int        request timeout (seconds)
//	-i int        background refresh interval (seconds, 0 = manual)
//	-s string     local state database path
//	-l string     log level
//	-lang string  notification language (en, zh)
//
// Environment
//
//	SUI_SERVER_URL, SUI_USERNAME, SUI_TOKEN, SUI_REQUEST_TIMEOUT,
//	SUI_REFRESH_INTERVAL, SUI_STATE_PATH, SUI_LOG_LEVEL, SUI_LOG_FORMAT,
//	SUI_LANG
//
// Durations in the environment are Go durations ("30s") or whole seconds.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:2095/app",
//	  "username": "admin",
//	  "request_timeout": "15s",
//	  "refresh_interval": "30s",
//	  "state_path": "suimirror.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "language": "en"
//	}
package config
