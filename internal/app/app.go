// Package app wires configuration to the adapters shared by the CLI and the MCP server.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"docdrift/internal/adapters/connect"
	"docdrift/internal/adapters/keyring"
	"docdrift/internal/adapters/render"
	"docdrift/internal/adapters/sqlite"
	"docdrift/internal/application/commands"
	"docdrift/internal/config"
	"docdrift/internal/diff"
	"docdrift/internal/ports"
)

// App holds the long-lived collaborators of one process
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Registry  ports.ConnectionRegistry
	Connector ports.Connector
}

// New opens the connection registry described by cfg
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	var creds ports.CredentialStore
	if cfg.Credentials.Keyring {
		creds = keyring.NewStore(cfg.Credentials.Service)
	}

	registry, err := sqlite.Open(cfg.Registry.Path, creds)
	if err != nil {
		return nil, err
	}
	log.Debug("opened connection registry",
		zap.String("path", cfg.Registry.Path),
		zap.Bool("keyring", cfg.Credentials.Keyring))

	return &App{
		Config:    cfg,
		Logger:    log,
		Registry:  registry,
		Connector: connect.Connector{},
	}, nil
}

// Close releases the registry
func (a *App) Close() error {
	return a.Registry.Close()
}

// Pair is an open reference and compared database
type Pair struct {
	Reference ports.Database
	Compared  ports.Database
}

// Close closes both databases
func (p *Pair) Close(ctx context.Context) {
	if p.Reference != nil {
		_ = p.Reference.Close(ctx)
	}
	if p.Compared != nil {
		_ = p.Compared.Close(ctx)
	}
}

// OpenPair opens the two named connections
func (a *App) OpenPair(ctx context.Context, reference, compared string) (*Pair, error) {
	ref, err := commands.OpenConnection(ctx, a.Registry, a.Connector, reference)
	if err != nil {
		return nil, err
	}
	cmp, err := commands.OpenConnection(ctx, a.Registry, a.Connector, compared)
	if err != nil {
		_ = ref.Close(ctx)
		return nil, err
	}
	return &Pair{Reference: ref, Compared: cmp}, nil
}

// NewCompare builds the comparison pipeline for an open pair. Verbose keeps
// complete documents on records for detailed reports.
func (a *App) NewCompare(p *Pair, progress ports.ProgressReporter, verbose bool) *commands.CompareCommand {
	differ := diff.NewEngine(diff.Options{Verbose: verbose})
	return commands.NewCompareCommand(p.Reference, p.Compared, differ, progress, a.Logger)
}

// Renderer returns the configured migration renderer. Non-empty arguments
// override the configured renderer and template.
func (a *App) Renderer(kind, template string) (ports.Renderer, error) {
	if kind == "" {
		kind = a.Config.Migration.Renderer
	}
	if template == "" {
		template = a.Config.Migration.Template
	}
	r, err := render.New(kind, template)
	if err != nil {
		return nil, fmt.Errorf("failed to select renderer: %w", err)
	}
	return r, nil
}
