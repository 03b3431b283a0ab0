package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// fileConfig is a DTO used only for decoding config files. Absent keys stay
// nil and leave the corresponding Config field alone.
type fileConfig struct {
	DataDir             *string         `json:"data_dir" toml:"data_dir"`
	Backend             *string         `json:"backend" toml:"backend"`
	DatabaseFile        *string         `json:"database_file" toml:"database_file"`
	HashAlgorithm       *string         `json:"hash_algorithm" toml:"hash_algorithm"`
	BcryptCost          *int            `json:"bcrypt_cost" toml:"bcrypt_cost"`
	MinPasswordStrength *string         `json:"min_password_strength" toml:"min_password_strength"`
	SessionMaxAge       *timex.Duration `json:"session_max_age" toml:"session_max_age"`
	LogLevel            *string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fmt.Errorf("decode config %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.Backend, fc.Backend)
	setString(&cfg.DatabaseFile, fc.DatabaseFile)
	setString(&cfg.HashAlgorithm, fc.HashAlgorithm)
	setString(&cfg.MinPasswordStrength, fc.MinPasswordStrength)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.BcryptCost != nil {
		cfg.BcryptCost = *fc.BcryptCost
	}
	if fc.SessionMaxAge != nil {
		cfg.SessionMaxAge = fc.SessionMaxAge.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
