// Package config loads runtime configuration for the authkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in .toml
//     are decoded as TOML, anything else as JSON.
//  3. Environment: a .env file in the working directory (if present) is
//     loaded first, then AUTHKEEPER_* variables are applied.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   data directory for users.txt and the JSON state files
//	-b string   storage backend: file or sqlite
//	-s string   SQLite database file (relative paths live in the data directory)
//	-a string   hash algorithm for new passwords: bcrypt or argon2id
//	-k int      bcrypt cost
//	-m string   minimum password strength: weak, medium or strong
//	-x int      session max age in minutes (0 keeps sessions forever)
//	-l string   log level: debug, info, warn or error
//
// # File schema
//
// Durations are timex.Duration values, so they can be strings like "24h" or
// integer nanoseconds (JSON only):
//
//	{
//	  "data_dir": "/var/lib/authkeeper",
//	  "backend": "sqlite",
//	  "database_file": "authkeeper.db",
//	  "hash_algorithm": "argon2id",
//	  "min_password_strength": "medium",
//	  "session_max_age": "24h",
//	  "log_level": "info"
//	}
//
// The TOML form uses the same keys.
//
// # Environment
//
//	AUTHKEEPER_DATA_DIR, AUTHKEEPER_BACKEND, AUTHKEEPER_DATABASE_FILE,
//	AUTHKEEPER_HASH_ALGORITHM, AUTHKEEPER_BCRYPT_COST,
//	AUTHKEEPER_MIN_PASSWORD_STRENGTH, AUTHKEEPER_SESSION_MAX_AGE,
//	AUTHKEEPER_LOG_LEVEL
package config
