// Package config defines service configuration and its loading.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RedisAddr is the Redis host:port.
	RedisAddr string `koanf:"redis_addr"`

	// RedisPassword is the Redis auth password, empty for none.
	RedisPassword string `koanf:"redis_password"`

	// RedisDB selects the Redis logical database.
	RedisDB int `koanf:"redis_db"`

	// DefaultLockTTL is how long a draft lock lives without renewal.
	DefaultLockTTL time.Duration `koanf:"default_lock_ttl"`

	// SweepInterval is how often expired locks are swept.
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// FeedBufferSize bounds each change feed subscriber's buffer.
	FeedBufferSize int `koanf:"feed_buffer_size"`

	// DiscordEnabled toggles the Discord slash-command handler.
	DiscordEnabled bool `koanf:"discord_enabled"`

	// DiscordToken is the bot token.
	DiscordToken string `koanf:"discord_token"`

	// DiscordApplicationID is the bot's application ID.
	DiscordApplicationID string `koanf:"discord_application_id"`

	// DiscordGuildID, if set, registers commands for one guild only
	// (faster propagation during development).
	DiscordGuildID string `koanf:"discord_guild_id"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8080",
		RedisAddr:      "localhost:6379",
		RedisDB:        0,
		DefaultLockTTL: 15 * time.Minute,
		SweepInterval:  time.Minute,
		FeedBufferSize: 64,
	}
}
