// Package config resolves the user-adjustable settings for axquery.
//
// Precedence, lowest first: built-in defaults, a YAML or TOML config file,
// AXQUERY_* environment variables, command-line flags. Flags are applied by
// the cmd package after Load returns.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AXQUERY_"

// Config is the resolved configuration.
type Config struct {
	App    string      `yaml:"app"    toml:"app"`
	PID    int         `yaml:"pid"    toml:"pid"`
	Tree   string      `yaml:"tree"   toml:"tree"`
	Format string      `yaml:"format" toml:"format"`
	Log    LogConfig   `yaml:"log"    toml:"log"`
	Store  StoreConfig `yaml:"store"  toml:"store"`
	Serve  ServeConfig `yaml:"serve"  toml:"serve"`
	Wait   WaitConfig  `yaml:"wait"   toml:"wait"`

	// Source is where the configuration came from: a file path or "<defaults>".
	Source string `yaml:"-" toml:"-"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"  toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// StoreConfig locates the snapshot database.
type StoreConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// ServeConfig configures the MCP server.
type ServeConfig struct {
	Transport string `yaml:"transport" toml:"transport"`
	Port      int    `yaml:"port"      toml:"port"`
}

// WaitConfig holds the polling defaults for wait and observe.
type WaitConfig struct {
	Timeout  Duration `yaml:"timeout"  toml:"timeout"`
	Interval Duration `yaml:"interval" toml:"interval"`
}

// Duration is a time.Duration that reads "500ms"-style strings from both
// YAML and TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Format: "yaml",
		Log:    LogConfig{Level: "warn", Format: "text"},
		Store:  StoreConfig{Path: defaultStorePath()},
		Serve:  ServeConfig{Transport: "stdio", Port: 8080},
		Wait: WaitConfig{
			Timeout:  Duration(10 * time.Second),
			Interval: Duration(500 * time.Millisecond),
		},
		Source: "<defaults>",
	}
}

func defaultStorePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "axquery.db"
	}
	return filepath.Join(dir, "axquery", "snapshots.db")
}

// Load reads the config file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("config file %q not found", path)
			}
			return cfg, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %q: %w", path, err)
		}
		cfg.Source = path
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode parses data into cfg, choosing the codec by file extension. Keys
// missing from data keep their current values.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unsupported config format %q", ext)
}

// ApplyEnv overrides cfg from AXQUERY_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	str("APP", &c.App)
	str("TREE", &c.Tree)
	str("FORMAT", &c.Format)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("STORE_PATH", &c.Store.Path)
	str("SERVE_TRANSPORT", &c.Serve.Transport)

	for key, dst := range map[string]*int{"PID": &c.PID, "SERVE_PORT": &c.Serve.Port} {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: invalid integer %q", EnvPrefix, key, v)
			}
			*dst = n
		}
	}
	for key, dst := range map[string]*Duration{"WAIT_TIMEOUT": &c.Wait.Timeout, "WAIT_INTERVAL": &c.Wait.Interval} {
		if v, ok := lookup(EnvPrefix + key); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
		}
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch c.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("format must be yaml or json, got %q", c.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unsupported level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported format %q", c.Log.Format)
	}
	switch c.Serve.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("serve.transport must be stdio or http, got %q", c.Serve.Transport)
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.PID < 0 {
		return fmt.Errorf("pid must not be negative: %d", c.PID)
	}
	if c.Wait.Timeout <= 0 || c.Wait.Interval <= 0 {
		return errors.New("wait.timeout and wait.interval must be positive")
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path must not be empty")
	}
	return nil
}
