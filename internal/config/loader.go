package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RAIDSYNC_CONFIG is set
//  3. env (prefix RAIDSYNC_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RAIDSYNC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: RAIDSYNC_ADDR, RAIDSYNC_REDIS_ADDR, ...
	// Keys keep their underscores to match the koanf tags on Config.
	envProvider := env.Provider("RAIDSYNC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "raidsync_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("redis_addr must not be empty")
	}
	if cfg.DefaultLockTTL <= 0 {
		return nil, errors.New("default_lock_ttl must be positive")
	}
	if cfg.SweepInterval <= 0 {
		return nil, errors.New("sweep_interval must be positive")
	}
	if cfg.DiscordEnabled && cfg.DiscordToken == "" {
		return nil, errors.New("discord_token is required when discord_enabled is set")
	}
	return &cfg, nil
}
