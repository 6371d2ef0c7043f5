// Package config loads runtime configuration for the grievance desk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-d string   data directory
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds. Keys missing from the file keep their defaults:
//
//	{
//	  "server_url": "https://grievdesk.example",
//	  "data_dir": "/var/lib/grievdesk",
//	  "request_timeout": "20s",
//	  "log_level": "debug",
//	  "encrypt_storage": true,
//	  "static_address": "12 Main st, Springfield"
//	}
//
// The same keys are used in YAML.
package config
