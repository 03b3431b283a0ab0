package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/services"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// App holds the services behind the shell and the current session.
type App struct {
	config *config.Config
	log    logging.Logger
	repos  repomanager.RepositoryManager
	auth   *services.AuthService

	in  *bufio.Scanner
	out io.Writer

	token    string
	userName string
	role     models.Role
}

// NewApp opens the configured storage and builds the services. Sessions
// older than cfg.SessionMaxAge are purged when it is set.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	return newApp(ctx, cfg, log, timex.SystemClock{}, in, out)
}

func newApp(ctx context.Context, cfg *config.Config, log logging.Logger, clock timex.Clock, in io.Reader, out io.Writer) (*App, error) {
	hasher, err := cryptox.NewHasher(cfg.HashAlgorithm, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error opening storage: %w", err)
	}

	creds := services.NewCredentialStore(repos.Users(), hasher, log)
	tracker := services.NewLockoutTracker(repos.Lockouts(), clock, log)
	registry := services.NewSessionRegistry(repos.Sessions(), clock, log)

	auth, err := services.NewAuthService(creds, tracker, registry, log, cfg.MinPasswordStrength)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	if cfg.SessionMaxAge > 0 {
		if _, err := registry.PurgeIssuedBefore(ctx, clock.Now().Add(-cfg.SessionMaxAge)); err != nil {
			_ = repos.Close()
			return nil, fmt.Errorf("error purging sessions: %w", err)
		}
	}

	return &App{
		config: cfg,
		log:    log,
		repos:  repos,
		auth:   auth,
		in:     bufio.NewScanner(in),
		out:    out,
	}, nil
}

// Run prints the banner and runs the shell until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to the Secure Authentication System! (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.in)
}

// Close releases the storage.
func (a *App) Close() error {
	return a.repos.Close()
}

func (a *App) status() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.userName)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
