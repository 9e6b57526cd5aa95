package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "rclayout"), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "[server]\naddr = \":9999\"\n"
	if err := os.WriteFile(filepath.Join(dir, "rclayout", "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2

[store]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[log]
level = "DEBUG"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != StoreMongo || cfg.Store.Database != "rclayout" {
		t.Errorf("store = %+v (database should keep its default)", cfg.Store)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[cache]\nbackend = \"redis\"\n")
	t.Setenv(EnvCacheBackend, "none")
	t.Setenv(EnvRedisDB, "5")
	t.Setenv(EnvServerAddr, "127.0.0.1:7000")
	t.Setenv(EnvLogFile, "/tmp/rclayout.log")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("backend = %q, env should win", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisDB != 5 {
		t.Errorf("redis db = %d, want 5", cfg.Cache.RedisDB)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" || cfg.Log.File != "/tmp/rclayout.log" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"UnknownKey", "[cache]\nbackendd = \"file\"\n", "unknown keys"},
		{"BadBackend", "[cache]\nbackend = \"memcached\"\n", "cache.backend"},
		{"MongoWithoutURI", "[store]\nbackend = \"mongo\"\n", "mongo_uri"},
		{"BadLevel", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"Syntax", "[cache\n", "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	t.Run("MissingExplicit", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("missing explicit file should fail")
		}
	})
}

func TestCacheDir(t *testing.T) {
	if got, _ := (CacheConfig{Dir: "/x"}).CacheDir(); got != "/x" {
		t.Errorf("CacheDir = %q, want /x", got)
	}
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got, _ := (CacheConfig{}).CacheDir(); got != filepath.Join("/tmp/xdg", "rclayout") {
		t.Errorf("CacheDir = %q", got)
	}
}
