package config

import "time"

type cacheCfg struct {
	DefaultTTL      time.Duration `toml:"defaultTTL"`
	CleanupInterval time.Duration `toml:"cleanupInterval"`
	CleanupStart    bool          `toml:"cleanupStart"`
}

type LogCfg struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type metricsCfg struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

type settingsCfg struct {
	Path string        `toml:"path"`
	TTL  time.Duration `toml:"ttl"`
}

type SystemCfg struct {
	ListenAddr string      `toml:"listenaddr"`
	Cache      cacheCfg    `toml:"cache"`
	Log        LogCfg      `toml:"log"`
	Metrics    metricsCfg  `toml:"metrics"`
	Settings   settingsCfg `toml:"settings"`
}
