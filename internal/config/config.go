package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sources   SourcesConfig   `yaml:"sources"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Cache     CacheConfig     `yaml:"cache"`
	Aggregate AggregateConfig `yaml:"aggregate"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`
}

// SourcesConfig holds configuration for the built-in site adapters.
type SourcesConfig struct {
	ERR          SourceConfig    `yaml:"err"`
	Postimees    SourceConfig    `yaml:"postimees"`
	Piletilevi   SourceConfig    `yaml:"piletilevi"`
	Kultuurikava SourceConfig    `yaml:"kultuurikava"`
	Culture      SourceConfig    `yaml:"culture"`
	Wikipedia    WikipediaConfig `yaml:"wikipedia"`
}

// SourceConfig toggles one adapter. URL replaces the site origin and a
// positive Limit caps how many items the adapter may return.
type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Limit   int    `yaml:"limit"`
}

// WikipediaConfig for the encyclopedia adapter.
type WikipediaConfig struct {
	SourceConfig `yaml:",inline"`
	Topics       []string `yaml:"topics"`
}

// FeedsConfig lists extra RSS/Atom news feeds.
type FeedsConfig struct {
	Enabled bool       `yaml:"enabled"`
	Feeds   []FeedItem `yaml:"feeds"`
}

// FeedItem is a single feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FetchConfig configures outbound requests.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// ParseTimeout returns the request timeout as time.Duration.
func (f FetchConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(f.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// CacheConfig configures the optional SQLite response cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TTL     string `yaml:"ttl"`
}

// ParseTTL returns the cache TTL as time.Duration.
func (c CacheConfig) ParseTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// AggregateConfig holds the per-category caps.
type AggregateConfig struct {
	NewsLimit        int `yaml:"news_limit"`
	NewsDisplay      int `yaml:"news_display"`
	EventsLimit      int `yaml:"events_limit"`
	GalleryLimit     int `yaml:"gallery_limit"`
	GalleryMinImages int `yaml:"gallery_min_images"`
	SearchLimit      int `yaml:"search_limit"`
	SearchMax        int `yaml:"search_max"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 5000},
		Sources: SourcesConfig{
			ERR:          SourceConfig{Enabled: true},
			Postimees:    SourceConfig{Enabled: false},
			Piletilevi:   SourceConfig{Enabled: true},
			Kultuurikava: SourceConfig{Enabled: true},
			Culture:      SourceConfig{Enabled: false},
			Wikipedia:    WikipediaConfig{SourceConfig: SourceConfig{Enabled: true}},
		},
		Feeds: FeedsConfig{
			Enabled: false,
			Feeds: []FeedItem{
				{Name: "ERR Kultuur", URL: "https://kultuur.err.ee/rss"},
			},
		},
		Fetch: FetchConfig{Timeout: "10s"},
		Cache: CacheConfig{
			Enabled: false,
			Path:    "./elaulik-cache.db",
			TTL:     "1h",
		},
		Aggregate: AggregateConfig{
			NewsLimit:        10,
			NewsDisplay:      10,
			EventsLimit:      5,
			GalleryLimit:     12,
			GalleryMinImages: 3,
			SearchLimit:      20,
			SearchMax:        20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Server.Port = port
	}
	for _, key := range []string{"DEBUG", "FLASK_DEBUG"} {
		if v := os.Getenv(key); v != "" {
			cfg.Server.Debug = truthy(v)
		}
	}
	if v := os.Getenv("ELAULIK_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
		cfg.Cache.Enabled = true
	}
	if v := os.Getenv("ELAULIK_CACHE_TTL"); v != "" {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid ELAULIK_CACHE_TTL %q: %w", v, err)
		}
		cfg.Cache.TTL = v
	}
	if v := os.Getenv("ELAULIK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
