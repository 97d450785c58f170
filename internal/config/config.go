package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// Config is the content of digits.yaml (or digits.json).
type Config struct {
	LogLevel    string       `yaml:"log_level" json:"log_level"`
	MaxOperands int          `yaml:"max_operands" json:"max_operands"`
	Cache       CacheConfig  `yaml:"cache" json:"cache"`
	Server      ServerConfig `yaml:"server" json:"server"`
	MCP         MCPConfig    `yaml:"mcp" json:"mcp"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string      `yaml:"backend" json:"backend"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
	File    FileConfig  `yaml:"file" json:"file"`
}

// FileConfig configures the on-disk result cache.
type FileConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// RedisConfig configures the Redis result cache.
type RedisConfig struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	Prefix   string   `yaml:"prefix" json:"prefix"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port string `yaml:"port" json:"port"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

// Duration accepts Go duration strings ("10m") in YAML and JSON.
type Duration time.Duration

func (d *Duration) set(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.set(value.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.set(s)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:    "info",
		MaxOperands: 8,
		Cache: CacheConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "digits:result:",
			},
			File: FileConfig{Dir: filepath.Join(".digits", "cache")},
		},
		Server: ServerConfig{Port: "8080"},
		MCP:    MCPConfig{Transport: "stdio", Port: 8080},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendMemory, BackendRedis, BackendFile:
	default:
		return fmt.Errorf("invalid cache backend %q (want none, memory, redis or file)", c.Cache.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	if c.MaxOperands < 0 {
		return fmt.Errorf("max_operands must not be negative, got %d", c.MaxOperands)
	}
	return nil
}
