package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/bpjson/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bpjson.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
registry = "project.yaml"
max_depth = 4
semantic_tags = true

[cache]
backend = "redis"
ttl = "1h30m"
redis_addr = "cache:6379"

[server]
addr = ":9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry != "project.yaml" || cfg.MaxDepth != 4 || !cfg.SemanticTags {
		t.Errorf("top level = %+v", cfg)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL != 90*time.Minute || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Metadata {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BPJSON_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.MaxDepth != def.MaxDepth || cfg.Cache.Backend != def.Cache.Backend || cfg.Path != "" {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, `max_depth = 3`)
	t.Setenv("BPJSON_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.MaxDepth)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `max_depth = `, errors.ErrCodeInvalidConfig},
		{"wrong type", `max_depth = "deep"`, errors.ErrCodeInvalidConfig},
		{"zero depth", `max_depth = 0`, errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BPJSON_REGISTRY":    "env.yaml",
		"BPJSON_MAX_DEPTH":   " 12 ",
		"BPJSON_CACHE":       "NONE",
		"BPJSON_CACHE_TTL":   "5m",
		"BPJSON_REDIS_ADDR":  "redis:6379",
		"BPJSON_SERVER_ADDR": "127.0.0.1:8081",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Registry != "env.yaml" || cfg.MaxDepth != 12 || cfg.Cache.Backend != CacheNone ||
		cfg.Cache.TTL != 5*time.Minute || cfg.Cache.RedisAddr != "redis:6379" || cfg.Server.Addr != "127.0.0.1:8081" {
		t.Errorf("ApplyEnv = %+v", cfg)
	}

	for _, key := range []string{"BPJSON_MAX_DEPTH", "BPJSON_CACHE_TTL"} {
		bad := func(k string) (string, bool) {
			if k == key {
				return "nope", true
			}
			return "", false
		}
		if err := Default().ApplyEnv(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s=nope err = %v", key, err)
		}
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "max_depth = 3\n[cache]\nbackend = \"redis\"")
	t.Setenv("BPJSON_MAX_DEPTH", "6")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 6 || cfg.Cache.Backend != CacheRedis {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("BPJSON_TEST_FROM_DOTENV=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BPJSON_TEST_FROM_DOTENV", "")
	os.Unsetenv("BPJSON_TEST_FROM_DOTENV")

	if err := LoadEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("BPJSON_TEST_FROM_DOTENV"); got != "yes" {
		t.Errorf("BPJSON_TEST_FROM_DOTENV = %q, want yes", got)
	}
}

func TestTOML(t *testing.T) {
	out, err := Default().TOML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"max_depth = 8", "[cache]", `backend = "file"`, "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("TOML() missing %q:\n%s", want, out)
		}
	}
}
