package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func defaultSystemCfg() *SystemCfg {
	return &SystemCfg{
		ListenAddr: ":8000",
		Cache: cacheCfg{
			DefaultTTL:      5 * time.Minute,
			CleanupInterval: 1 * time.Minute,
			CleanupStart:    true,
		},
		Log: LogCfg{
			Level: "info",
		},
		Metrics: metricsCfg{
			Enabled:   true,
			Namespace: "billing",
		},
		Settings: settingsCfg{
			Path: "settings.json",
			TTL:  5 * time.Minute,
		},
	}
}

// Default returns the built-in configuration.
func Default() *SystemCfg {
	return defaultSystemCfg()
}

// LoadConfig decodes the TOML file at path over the defaults.
// An empty path returns the defaults. Unknown keys are rejected.
func LoadConfig(path string) (*SystemCfg, error) {
	config := defaultSystemCfg()
	if path == "" {
		return config, nil
	}

	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the values the cache and server cannot run without.
func (c *SystemCfg) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listenaddr must not be empty"))
	}
	if c.Cache.DefaultTTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.defaultTTL must be > 0, got %s", c.Cache.DefaultTTL))
	}
	if c.Cache.CleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("cache.cleanupInterval must be > 0, got %s", c.Cache.CleanupInterval))
	}
	if c.Settings.TTL < 0 {
		errs = append(errs, fmt.Errorf("settings.ttl must be >= 0, got %s", c.Settings.TTL))
	}
	return errors.Join(errs...)
}
