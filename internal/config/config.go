package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds runtime settings for the authkeeper CLI.
//
// MinPasswordStrength is empty when no minimum is enforced. SessionMaxAge of
// zero disables the start-up purge of old sessions.
type Config struct {
	DataDir             string        `validate:"required"`
	Backend             string        `validate:"oneof=file sqlite"`
	DatabaseFile        string        `validate:"required"`
	HashAlgorithm       string        `validate:"oneof=bcrypt argon2id"`
	BcryptCost          int           `validate:"omitempty,min=4,max=31"`
	MinPasswordStrength string        `validate:"omitempty,oneof=weak medium strong"`
	SessionMaxAge       time.Duration `validate:"min=0"`
	LogLevel            string        `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "."
	c.Backend = BackendFile
	c.DatabaseFile = "authkeeper.db"
	c.HashAlgorithm = "bcrypt"
	c.BcryptCost = 12
	c.MinPasswordStrength = ""
	c.SessionMaxAge = 0
	c.LogLevel = "warn"
}

// Validate normalises enum-like fields to lower case and checks every field.
// The returned error wraps common.ErrValidation.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.HashAlgorithm = strings.ToLower(strings.TrimSpace(c.HashAlgorithm))
	c.MinPasswordStrength = strings.ToLower(strings.TrimSpace(c.MinPasswordStrength))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: config field %s: invalid value %v", common.ErrValidation, fe.Field(), fe.Value())
		}
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the config file, the environment
// and os.Args, in that order, and validates the result.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
