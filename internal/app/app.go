// Package app wires configuration, logging, the API client and the local
// stores into the services every command uses.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"nathanbeddoewebdev/opsdeck/internal/api"
	"nathanbeddoewebdev/opsdeck/internal/auditlog"
	"nathanbeddoewebdev/opsdeck/internal/config"
	"nathanbeddoewebdev/opsdeck/internal/dashboard"
	dnssvc "nathanbeddoewebdev/opsdeck/internal/dns/services"
	emailsvc "nathanbeddoewebdev/opsdeck/internal/email/services"
	"nathanbeddoewebdev/opsdeck/internal/logging"
	reposvc "nathanbeddoewebdev/opsdeck/internal/repo/services"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	serversvc "nathanbeddoewebdev/opsdeck/internal/server/services"
	storagesvc "nathanbeddoewebdev/opsdeck/internal/storage/services"
	"nathanbeddoewebdev/opsdeck/internal/viewprefs"

	"github.com/rs/zerolog"
)

const logFileName = "opsdeck.log"

// Version is reported in the User-Agent header.
var Version = "dev"

// Options are the per-invocation overrides taken from root flags.
type Options struct {
	APIURL   string
	LogLevel string

	// TUI is set for commands that take over the terminal. Logs then go to
	// a file instead of stderr.
	TUI bool
}

// App holds everything a command needs. Fields are exported so tests can
// assemble one from fakes.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Origin string

	Servers      *serversvc.Service
	Domains      *dnssvc.Service
	Emails       *emailsvc.Service
	Repositories *reposvc.Service
	Storage      *storagesvc.Service

	Audit *auditlog.SQLiteRepository
	Prefs *viewprefs.Service

	closers []func() error
}

// Open loads the config and builds an App for one command run. The audit
// log and saved views are best effort: when their database cannot be
// opened the App works without them.
func Open(opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Origin: cfg.ResolveAPIURL(opts.APIURL)}

	level := opts.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	logFile := cfg.LogFile
	if logFile == "" && opts.TUI {
		if dir, err := config.Dir(); err == nil {
			logFile = filepath.Join(dir, logFileName)
		}
	}
	logger, closeLog, err := logging.New(logging.Options{Level: level, File: logFile})
	if err != nil {
		return nil, err
	}
	a.Logger = logger.With().Str("origin", auditlog.RedactURL(a.Origin)).Logger()
	a.closers = append(a.closers, closeLog)

	var svcOpts []resource.Option
	svcOpts = append(svcOpts, resource.WithLogger(a.Logger))
	if cfg.AuditEnabled() {
		if repo, err := auditlog.Open(); err != nil {
			a.Logger.Warn().Err(err).Msg("audit log unavailable")
		} else {
			a.Audit = repo
			a.closers = append(a.closers, repo.Close)
			svcOpts = append(svcOpts, resource.WithAudit(repo))
		}
	}

	if repo, err := viewprefs.Open(); err != nil {
		a.Logger.Warn().Err(err).Msg("saved views unavailable")
		a.Prefs = viewprefs.NewService(nil, a.Origin, a.Logger)
	} else {
		a.Prefs = viewprefs.NewService(repo, a.Origin, a.Logger)
		a.closers = append(a.closers, a.Prefs.Close)
	}

	client := api.New(a.Origin,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(a.Logger),
		api.WithUserAgent("opsdeck/"+Version),
	)
	a.Bind(api.NewInventory(client), svcOpts...)
	return a, nil
}

// Bind builds the services over inv.
func (a *App) Bind(inv *api.Inventory, opts ...resource.Option) {
	a.Servers = serversvc.New(inv.Servers, opts...)
	a.Domains = dnssvc.New(inv.Domains, opts...)
	a.Emails = emailsvc.New(inv.Emails, opts...)
	a.Repositories = reposvc.New(inv.Repositories, opts...)
	a.Storage = storagesvc.New(inv.Storage, opts...)
}

// Dashboard returns the services the dashboard reads.
func (a *App) Dashboard() dashboard.Sources {
	return dashboard.Sources{
		Servers:      a.Servers,
		Domains:      a.Domains,
		Emails:       a.Emails,
		Repositories: a.Repositories,
		Storage:      a.Storage,
	}
}

// Close releases the log file and databases.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

type appKey struct{}

// NewContext returns a context carrying a.
func NewContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// FromContext returns the App stored by NewContext.
func FromContext(ctx context.Context) (*App, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*App); ok && a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("app: not initialised")
}
