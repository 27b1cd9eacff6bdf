// Package config loads bpjson settings from a TOML file, a .env file and
// BPJSON_* environment variables, in increasing order of precedence.
//
// A minimal bpjson.toml:
//
//	registry = "registry/project.yaml"
//	semantic_tags = true
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// FileName is the config file looked up in the working directory.
const FileName = "bpjson.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds every setting the CLI and server read.
type Config struct {
	// Registry is a YAML registry layered over the built-in one.
	Registry     string `toml:"registry"`
	MaxDepth     int    `toml:"max_depth"`
	Indent       string `toml:"indent"`
	SemanticTags bool   `toml:"semantic_tags"`
	Metadata     bool   `toml:"metadata"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// CacheConfig selects and tunes the export cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	TTL       time.Duration `toml:"ttl"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisURL  string        `toml:"redis_url"`
}

// ServerConfig configures `bpjson serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxDepth: 8,
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the config at path. An empty path falls back to
// $BPJSON_CONFIG and then ./bpjson.toml; when neither exists the defaults
// are used. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("BPJSON_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		cfg.Path = path
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads .env files into the process environment without replacing
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load env files")
	}
	return nil
}

// ApplyEnv overrides fields from BPJSON_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("BPJSON_REGISTRY"); ok {
		c.Registry = v
	}
	if v, ok := lookup("BPJSON_MAX_DEPTH"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "BPJSON_MAX_DEPTH")
		}
		c.MaxDepth = n
	}
	if v, ok := lookup("BPJSON_CACHE"); ok {
		c.Cache.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("BPJSON_CACHE_TTL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "BPJSON_CACHE_TTL")
		}
		c.Cache.TTL = d
	}
	if v, ok := lookup("BPJSON_REDIS_ADDR"); ok {
		c.Cache.RedisAddr = v
	}
	if v, ok := lookup("BPJSON_REDIS_URL"); ok {
		c.Cache.RedisURL = v
	}
	if v, ok := lookup("BPJSON_SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_depth must be at least 1, got %d", c.MaxDepth)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// TOML renders the effective config.
func (c *Config) TOML() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return b.String(), nil
}
