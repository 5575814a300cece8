package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Levels   LevelsConfig   `yaml:"levels"`
	Sessions SessionsConfig `yaml:"sessions"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Ngrok    NgrokConfig    `yaml:"ngrok"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LevelsConfig points at the puzzle library
type LevelsConfig struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"` // puzzle used when a session names none
}

// SessionsConfig controls where sessions are kept and when they expire
type SessionsConfig struct {
	Backend         string        `yaml:"backend"` // file, redis, postgres or memory
	Dir             string        `yaml:"dir"`
	MaxAge          time.Duration `yaml:"max_age"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// PostgresConfig holds the connection string and session table
type PostgresConfig struct {
	URL   string `yaml:"url"`
	Table string `yaml:"table"`
}

// NgrokConfig holds tunnel settings. The auth token is only read from the
// environment.
type NgrokConfig struct {
	Enabled bool   `yaml:"enabled"`
	Domain  string `yaml:"domain"`
}

// Session backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Levels.Dir == "" {
		cfg.Levels.Dir = "levels"
	}
	if cfg.Sessions.Backend == "" {
		cfg.Sessions.Backend = BackendFile
	}
	if cfg.Sessions.Dir == "" {
		cfg.Sessions.Dir = "sessions"
	}
	if cfg.Sessions.MaxAge == 0 {
		cfg.Sessions.MaxAge = 24 * time.Hour
	}
	if cfg.Sessions.CleanupInterval == 0 {
		cfg.Sessions.CleanupInterval = time.Hour
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
}

// Validate rejects settings the server cannot start with.
func (cfg *Config) Validate() error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	switch cfg.Sessions.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	case BackendPostgres:
		if cfg.Postgres.URL == "" {
			return fmt.Errorf("postgres backend needs postgres.url")
		}
	default:
		return fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
	if cfg.Sessions.MaxAge < 0 || cfg.Sessions.CleanupInterval < 0 || cfg.Redis.TTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
