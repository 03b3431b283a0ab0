package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/dmitrijs2005/authkeeper/internal/timex"
	"github.com/joho/godotenv"
)

const envPrefix = "AUTHKEEPER_"

// loadDotEnv loads path into the process environment. Variables that are
// already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// parseEnv overlays cfg with AUTHKEEPER_* variables obtained through lookup.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DATA_DIR":              &cfg.DataDir,
		"BACKEND":               &cfg.Backend,
		"DATABASE_FILE":         &cfg.DatabaseFile,
		"HASH_ALGORITHM":        &cfg.HashAlgorithm,
		"MIN_PASSWORD_STRENGTH": &cfg.MinPasswordStrength,
		"LOG_LEVEL":             &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBCRYPT_COST: %w", envPrefix, err)
		}
		cfg.BcryptCost = n
	}

	if v, ok := lookup(envPrefix + "SESSION_MAX_AGE"); ok {
		var d timex.Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sSESSION_MAX_AGE: %w", envPrefix, err)
		}
		cfg.SessionMaxAge = d.Duration
	}

	return nil
}
