package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/config"
	"github.com/misterclayt0n/weekplan/internal/logging"
	"github.com/misterclayt0n/weekplan/internal/planner"
	"github.com/misterclayt0n/weekplan/internal/service"
	"github.com/misterclayt0n/weekplan/internal/storage"
)

var (
	dsnFlag    string
	personFlag string
)

var rootCmd = &cobra.Command{
	Use:          "weekplan",
	Short:        "Weekly strength training planner",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// app bundles what every command needs: config, store and service.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	loc   *time.Location
	store *storage.Store
	svc   *service.Service
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}
	if dsnFlag != "" {
		cfg.Storage.DSN = dsnFlag
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	backend, err := storage.Open(cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("Failed to open storage: %w", err)
	}
	store := storage.New(backend,
		storage.WithLocation(loc),
		storage.WithLogger(log),
	)

	return &app{
		cfg:   cfg,
		log:   log,
		loc:   loc,
		store: store,
		svc:   service.New(store, planner.SystemClock{}, loc, log),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close storage", "error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Storage DSN (overrides config and env)")
	rootCmd.PersistentFlags().StringVarP(&personFlag, "person", "P", "", "Person name or id (default: active person)")
}
