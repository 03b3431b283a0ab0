package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

var knownFlags = []string{"-d", "-b", "-s", "-a", "-k", "-m", "-x", "-l"}

// parseFlags populates Config fields from command-line flags. args are
// filtered with flagx.FilterArgs first, so -c and unrelated flags are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("authkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (file|sqlite)")
	fs.StringVar(&cfg.DatabaseFile, "s", cfg.DatabaseFile, "SQLite database file")
	fs.StringVar(&cfg.HashAlgorithm, "a", cfg.HashAlgorithm, "hash algorithm (bcrypt|argon2id)")
	fs.IntVar(&cfg.BcryptCost, "k", cfg.BcryptCost, "bcrypt cost")
	fs.StringVar(&cfg.MinPasswordStrength, "m", cfg.MinPasswordStrength, "minimum password strength")
	maxAge := fs.Int("x", int(cfg.SessionMaxAge/time.Minute), "session max age (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			cfg.SessionMaxAge = time.Duration(*maxAge) * time.Minute
		}
	})
	return nil
}
