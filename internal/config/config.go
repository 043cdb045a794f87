// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Game    GameConfig    `mapstructure:"game"`
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Port       string `mapstructure:"port"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig selects and tunes the directory backend. Backend is chosen
// here, once, at startup; business logic never inspects the environment.
type StorageConfig struct {
	Backend         string        `mapstructure:"backend"` // "memory" or "redis"
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	TTL             time.Duration `mapstructure:"ttl"`
	RoomMaxAge      time.Duration `mapstructure:"room_max_age"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// GameConfig holds room rule configuration.
type GameConfig struct {
	MaxPlayers int `mapstructure:"max_players"`
	MinPlayers int `mapstructure:"min_players"`
}

// Load reads configuration from an optional config.yaml plus environment
// variable overrides (SERVER_PORT, STORAGE_BACKEND, GAME_MAX_PLAYERS, ...).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - env vars and defaults cover everything
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5175")
	v.SetDefault("server.cors_origin", "http://localhost:5173")

	v.SetDefault("log.level", "info")

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.ttl", "24h")
	v.SetDefault("storage.room_max_age", "1h")
	v.SetDefault("storage.cleanup_interval", "10m")

	v.SetDefault("game.max_players", 4)
	v.SetDefault("game.min_players", 1)
}
