// Package config loads the updatecenter configuration file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/generator"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/integrations/maven"
	"github.com/matzehuels/updatecenter/pkg/plugin"
	"github.com/matzehuels/updatecenter/pkg/wiki"
)

// DefaultFile is read when no --config flag is given and the file exists.
const DefaultFile = "updatecenter.toml"

// DefaultParent is the wiki page whose children are the plugin pages.
const DefaultParent = "Plugins"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment overrides.
const (
	EnvWikiUser     = "UPDATECENTER_WIKI_USER"
	EnvWikiPassword = "UPDATECENTER_WIKI_PASSWORD"
	EnvRedisAddr    = "UPDATECENTER_REDIS_ADDR"
)

// Config is the full configuration.
type Config struct {
	Plugins []string `toml:"plugins"`
	Workers int      `toml:"workers"`

	Wiki  Wiki  `toml:"wiki"`
	Cache Cache `toml:"cache"`
	Maven Maven `toml:"maven"`
	HTTP  HTTP  `toml:"http"`
}

// Wiki configures page resolution.
type Wiki struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	Space       string `toml:"space"`
	Parent      string `toml:"parent"`
	User        string `toml:"user"`
	Password    string `toml:"password"`
	LabelPrefix string `toml:"label_prefix"`
	Overrides   string `toml:"overrides"` // properties file, empty for the bundled table
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// Maven configures the artifact repository.
type Maven struct {
	Repository string `toml:"repository"`
}

// HTTP configures outgoing requests.
type HTTP struct {
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
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

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers: generator.DefaultWorkers,
		Wiki: Wiki{
			Enabled:     true,
			URL:         wiki.DefaultBaseURL,
			Space:       wiki.DefaultSpace,
			Parent:      DefaultParent,
			LabelPrefix: plugin.DefaultLabelPrefix,
		},
		Cache: Cache{Backend: BackendFile},
		Maven: Maven{Repository: maven.DefaultRepository},
		HTTP:  HTTP{Timeout: Duration(integrations.DefaultTimeout)},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path reads [DefaultFile] if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(string(data)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read %s", path)
		}
	case !explicit && os.IsNotExist(err):
	default:
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read %s", path)
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults without consulting the
// environment.
func Parse(doc string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(doc string) error {
	md, err := toml.Decode(doc, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeConfiguration, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvWikiUser); v != "" {
		c.Wiki.User = v
	}
	if v := getenv(EnvWikiPassword); v != "" {
		c.Wiki.Password = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
}

// Validate checks value ranges and normalizes URLs to end in '/'.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New(errors.ErrCodeConfiguration, "workers must be at least 1, got %d", c.Workers)
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New(errors.ErrCodeConfiguration, "http.timeout must be positive")
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeConfiguration, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeConfiguration, "unknown cache backend %q", c.Cache.Backend)
	}

	if err := errors.ValidateURL(c.Maven.Repository); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "maven.repository")
	}
	c.Maven.Repository = withSlash(c.Maven.Repository)

	if c.Wiki.Enabled {
		if err := errors.ValidateURL(c.Wiki.URL); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "wiki.url")
		}
		if c.Wiki.Space == "" {
			return errors.New(errors.ErrCodeConfiguration, "wiki.space must not be empty")
		}
	}
	c.Wiki.URL = withSlash(c.Wiki.URL)

	for _, p := range c.Plugins {
		if _, _, err := errors.ValidateCoordinate(p); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "plugins")
		}
	}
	return nil
}

func withSlash(u string) string {
	if u == "" || strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
