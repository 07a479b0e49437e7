package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashpect/cachemgr/pkg/cache"
	"github.com/ashpect/cachemgr/pkg/config"
	"github.com/ashpect/cachemgr/pkg/logging"
	"github.com/ashpect/cachemgr/pkg/settings"
)

var (
	ConfigPath string
	Verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cachemgr",
	Short: "settings cache for the billing application",
	Long: `cachemgr runs the in-process TTL cache used by the billing application
and serves its settings, statistics and Prometheus metrics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&ConfigPath, "config", "c", os.Getenv("CACHEMGR_CONFIG"), "location of config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", os.Getenv("VERBOSE") != "", "log at debug level")
}

// app is everything a command needs, built once from config.
type app struct {
	cfg      *config.SystemCfg
	logger   *logging.Logger
	cache    *cache.TTLCache[map[string]any]
	settings *settings.Store
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(ConfigPath)
	if err != nil {
		return nil, err
	}
	if Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	type V = map[string]any
	c := cache.New[V](
		cache.WithDefaultTTL[V](cfg.Cache.DefaultTTL),
		cache.WithCleanupInterval[V](cfg.Cache.CleanupInterval),
		cache.WithCleanupStart[V](cfg.Cache.CleanupStart),
		cache.WithLogger[V](logger.Named("cache")),
	)

	store := settings.New(cfg.Settings.Path, c,
		settings.WithTTL(cfg.Settings.TTL),
		settings.WithLogger(logger.Named("settings")),
	)

	return &app{cfg: cfg, logger: logger, cache: c, settings: store}, nil
}

func (a *app) close() {
	a.cache.Close()
	_ = a.logger.Sync()
}
