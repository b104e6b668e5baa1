package commands

import (
	"fmt"
	"path/filepath"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/config"
	"github.com/cleared-dev/txnapi/internal/logging"
	"github.com/cleared-dev/txnapi/internal/store"
)

// app bundles what a command needs once the config is loaded. Relative paths
// in the config resolve against the config file's directory.
type app struct {
	root  string
	cfg   *config.Config
	store *store.Store
	log   *log.Logger
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfgPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(cfgPath)

	envFile := opts.envFile
	if envFile == "" {
		envFile = filepath.Join(root, ".env")
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return nil, err
	}

	logger, err := logging.New("txnapi", cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	a := &app{root: root, cfg: cfg, log: logger}
	st, err := store.Open(a.path(cfg.Database.Path))
	if err != nil {
		return nil, err
	}
	a.store = st
	return a, nil
}

func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.root, p)
}

func (a *app) Close() error {
	return a.store.Close()
}
