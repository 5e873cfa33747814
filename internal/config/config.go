// Package config loads server and processing settings from an optional TOML
// file with environment variable overrides. All fields have working defaults,
// so a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/errors"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "vizboard.toml"

// Config holds every tunable of the server and CLI.
type Config struct {
	Server ServerConfig `toml:"server"`
	Canvas CanvasConfig `toml:"canvas"`
	Cache  CacheConfig  `toml:"cache"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CanvasConfig overrides the default canvas geometry.
type CanvasConfig struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Padding     float64 `toml:"padding"`
	ZoneSpacing float64 `toml:"zone_spacing"`
}

// CacheConfig selects the result cache backend. When RedisAddr is set the
// Redis backend is used; otherwise results cache on disk under Dir.
type CacheConfig struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// MongoConfig configures optional persistent storage. An empty URI means
// visualizations are kept in memory only.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Dir: defaultCacheDir()},
		Mongo:  MongoConfig{Database: "vizboard"},
	}
}

// Load reads configuration from path (or DefaultFileName when path is empty),
// then applies environment overrides. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; run on defaults.
	default:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg.applyEnv()
	return cfg, cfg.validate()
}

// ToCanvas builds the canvas from config overrides, leaving unset fields at
// their defaults.
func (c Config) ToCanvas() canvas.Canvas {
	out := canvas.Default()
	if c.Canvas.Width > 0 {
		out.Width = c.Canvas.Width
	}
	if c.Canvas.Height > 0 {
		out.Height = c.Canvas.Height
	}
	if c.Canvas.Padding > 0 {
		out.Padding = c.Canvas.Padding
	}
	if c.Canvas.ZoneSpacing > 0 {
		out.ZoneSpacing = c.Canvas.ZoneSpacing
	}
	return out
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VIZBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("VIZBOARD_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("VIZBOARD_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("VIZBOARD_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("VIZBOARD_MONGO_DB"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("VIZBOARD_CANVAS_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Canvas.Width = f
		}
	}
	if v := os.Getenv("VIZBOARD_CANVAS_HEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Canvas.Height = f
		}
	}
}

func (c Config) validate() error {
	if err := c.ToCanvas().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas geometry")
	}
	if c.Mongo.URI != "" && c.Mongo.Database == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mongo.database required when mongo.uri is set")
	}
	return nil
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "vizboard")
	}
	return filepath.Join(base, "vizboard")
}
