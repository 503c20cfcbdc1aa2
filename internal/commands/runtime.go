package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cleared-dev/stmtimport/internal/catalog"
	"github.com/cleared-dev/stmtimport/internal/config"
	"github.com/cleared-dev/stmtimport/internal/ledger"
	"github.com/cleared-dev/stmtimport/internal/logging"
)

// runtime is what every ledger-facing command needs.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	ledger *ledger.Client
}

func loadRuntime(opts *globalOptions, stderr io.Writer) (*runtime, error) {
	envFile := filepath.Join(filepath.Dir(opts.configPath), ".env")
	cfg, err := config.LoadOrEnv(opts.configPath, envFile)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	logger := logging.New(cfg.Logging, stderr)
	logger.Debug("loaded config", "path", opts.configPath, "ledger", cfg.Ledger.BaseURL)

	return &runtime{
		cfg:    cfg,
		logger: logger,
		ledger: ledger.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Timeout, cfg.Ledger.CategoryTTL),
	}, nil
}

// loadCatalog picks the category catalog: a CSV file if given, the built-in
// catalog when offline, otherwise the ledger's. An unreachable ledger falls
// back to the built-in catalog.
func (rt *runtime) loadCatalog(ctx context.Context, path string, offline bool) (*catalog.Service, error) {
	if path != "" {
		svc, err := catalog.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		return svc, nil
	}
	if offline {
		return catalog.NewService(catalog.DefaultCatalog()), nil
	}

	cats, err := rt.ledger.ListCategories(ctx)
	if err != nil {
		rt.logger.Warn("using built-in categories", "error", err)
		return catalog.NewService(catalog.DefaultCatalog()), nil
	}
	if len(cats) == 0 {
		rt.logger.Warn("ledger has no categories, using built-in categories")
		return catalog.NewService(catalog.DefaultCatalog()), nil
	}
	return catalog.NewService(cats), nil
}
