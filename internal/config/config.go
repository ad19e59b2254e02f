// Package config reads kinview.toml.
//
// Every setting has a default, so a missing file is not an error. Command
// line flags override what the file says.
//
//	[data]
//	dir = "data"                 # dataset directory or mongodb:// URI
//	database = "kinview"
//
//	[layout]
//	style = "standard"
//	generations = 3
//	zoom = 0
//	fonts = "go"                 # "go" or "approx"
//
//	[cache]
//	backend = "file"             # "file", "redis" or "none"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kinview/kinview/pkg/cache"
	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/layout"
)

// FileName is the configuration file looked up by Find.
const FileName = "kinview.toml"

// EnvPath names an explicit configuration file.
const EnvPath = "KINVIEW_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Text measurers.
const (
	FontsGo     = "go"
	FontsApprox = "approx"
)

// Config is the parsed configuration file.
type Config struct {
	Data   Data   `toml:"data"`
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Data locates the kinship dataset.
type Data struct {
	// Dir is a dataset directory or a MongoDB URI.
	Dir      string `toml:"dir"`
	Database string `toml:"database"`
	// MongoURI is where "db push" writes.
	MongoURI string `toml:"mongo_uri"`
}

// Layout holds the default layout options.
type Layout struct {
	Style       string `toml:"style"`
	Generations int    `toml:"generations"`
	Zoom        int    `toml:"zoom"`
	Compact     bool   `toml:"compact"`
	Fonts       string `toml:"fonts"`
}

// Cache selects the artifact cache.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"` // file backend; empty means the user cache dir
	RedisURL string `toml:"redis_url"`
}

// Server configures "kinview serve".
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	LinkPrefix   string        `toml:"link_prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data:   Data{Dir: "data", Database: "kinview"},
		Layout: Layout{Style: "standard", Generations: layout.DefaultGenerations, Fonts: FontsGo},
		Cache:  Cache{Backend: BackendFile, RedisURL: "redis://localhost:6379/0"},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			LinkPrefix:   "?focus=",
		},
	}
}

// Find returns the configuration file to read: $KINVIEW_CONFIG, then
// ./kinview.toml, then kinview/kinview.toml under the user config dir. It
// returns "" when none exists.
func Find() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "kinview", FileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidFormat,
			"%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	if _, err := layout.ParseStyle(c.Layout.Style); err != nil {
		return err
	}
	if c.Layout.Generations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.generations must not be negative")
	}
	switch c.Layout.Fonts {
	case FontsGo, FontsApprox:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "layout.fonts must be %q or %q, got %q", FontsGo, FontsApprox, c.Layout.Fonts)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	return errors.ValidateDataDir(c.Data.Dir)
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Measurer returns the text measurer named by layout.fonts.
func (c Config) Measurer() (layout.Measurer, error) {
	if c.Layout.Fonts == FontsApprox {
		return layout.ApproxMeasurer{}, nil
	}
	m, err := layout.NewGoFontMeasurer()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// OpenCache opens the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Cache.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}
