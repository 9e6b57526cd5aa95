// Package config loads rclayout's user configuration.
//
// Settings come from three layers, later ones winning: built-in defaults,
// a TOML file (by default $XDG_CONFIG_HOME/rclayout/config.toml) and
// RCLAYOUT_* environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "rclayout"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the full user configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

type StoreConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxBodyKB caps request bodies.
	MaxBodyKB int `toml:"max_body_kb"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// File, when set, receives a copy of every log record.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Cache:  CacheConfig{Backend: CacheFile, RedisAddr: "localhost:6379"},
		Store:  StoreConfig{Backend: StoreMemory, Database: "rclayout"},
		Server: ServerConfig{Addr: ":8080", MaxBodyKB: 1024},
		Log:    LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3},
	}
}

// Env var names used as overrides.
const (
	EnvCacheBackend  = "RCLAYOUT_CACHE_BACKEND"
	EnvCacheDir      = "RCLAYOUT_CACHE_DIR"
	EnvRedisAddr     = "RCLAYOUT_REDIS_ADDR"
	EnvRedisPassword = "RCLAYOUT_REDIS_PASSWORD"
	EnvRedisDB       = "RCLAYOUT_REDIS_DB"
	EnvStoreBackend  = "RCLAYOUT_STORE_BACKEND"
	EnvMongoURI      = "RCLAYOUT_MONGO_URI"
	EnvMongoDatabase = "RCLAYOUT_MONGO_DATABASE"
	EnvServerAddr    = "RCLAYOUT_SERVER_ADDR"
	EnvLogLevel      = "RCLAYOUT_LOG_LEVEL"
	EnvLogFile       = "RCLAYOUT_LOG_FILE"
)

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path, or the default path when path is
// empty, and applies environment overrides. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			applyEnv(&cfg)
			return cfg, cfg.Validate()
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		if und := md.Undecoded(); len(und) > 0 {
			keys := make([]string, len(und))
			for i, k := range und {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	str(EnvCacheBackend, &cfg.Cache.Backend)
	str(EnvCacheDir, &cfg.Cache.Dir)
	str(EnvRedisAddr, &cfg.Cache.RedisAddr)
	str(EnvRedisPassword, &cfg.Cache.RedisPassword)
	if v := strings.TrimSpace(os.Getenv(EnvRedisDB)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = n
		}
	}
	str(EnvStoreBackend, &cfg.Store.Backend)
	str(EnvMongoURI, &cfg.Store.MongoURI)
	str(EnvMongoDatabase, &cfg.Store.Database)
	str(EnvServerAddr, &cfg.Server.Addr)
	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFile, &cfg.Log.File)

	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store.mongo_uri is required for the mongo store")
		}
	default:
		return fmt.Errorf("store.backend: %q (must be one of: memory, mongo)", c.Store.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: %q (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

// CacheDir returns the file cache directory: the configured one, or the XDG
// cache location (~/.cache/rclayout/).
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
