package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent marquee configuration stored as
// config.toml in the .marquee/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Catalog   CatalogConfig   `toml:"catalog"`
	API       APIConfig       `toml:"api"`
	Client    ClientConfig    `toml:"client"`
	Recommend RecommendConfig `toml:"recommend"`
	Log       LogConfig       `toml:"log"`
}

// CatalogConfig selects where the movie catalog is loaded from.
type CatalogConfig struct {
	// Provider is one of csv, sqlite, postgres.
	Provider string `toml:"provider,omitempty"`

	// Path is the CSV file read by the csv provider.
	Path string `toml:"path,omitempty"`

	// DSN is the database path or connection string for SQL providers.
	DSN string `toml:"dsn,omitempty"`

	// Table is the SQL table holding the catalog.
	Table string `toml:"table,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that talk to a running
// marquee server. Values are full URLs (scheme + host + port).
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// RecommendConfig holds query defaults.
type RecommendConfig struct {
	TopN uint `toml:"top_n,omitempty"`

	// Seed fixes the "surprise me" pick sequence. Zero seeds from the clock.
	Seed uint64 `toml:"seed,omitempty"`

	// Lazy defers the similarity index build to the first query instead of
	// server startup.
	Lazy bool `toml:"lazy,omitempty"`
}

// LogConfig holds logging settings for long-running commands.
type LogConfig struct {
	JSON bool   `toml:"json,omitempty"`
	File string `toml:"file,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func parseBool(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return b, nil
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"catalog.provider": {
		get: func(c *Config) string { return c.Catalog.Provider },
		set: func(c *Config, v string) error {
			if !isValidProvider(v) {
				return fmt.Errorf("invalid value for catalog.provider: %q (available: %s)", v, providerList())
			}
			c.Catalog.Provider = v
			return nil
		},
	},
	"catalog.path": {
		get: func(c *Config) string { return c.Catalog.Path },
		set: func(c *Config, v string) error { c.Catalog.Path = v; return nil },
	},
	"catalog.dsn": {
		get: func(c *Config) string { return c.Catalog.DSN },
		set: func(c *Config, v string) error { c.Catalog.DSN = v; return nil },
	},
	"catalog.table": {
		get: func(c *Config) string { return c.Catalog.Table },
		set: func(c *Config, v string) error { c.Catalog.Table = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"recommend.top_n": {
		get: func(c *Config) string {
			if c.Recommend.TopN == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Recommend.TopN), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for recommend.top_n: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("invalid value for recommend.top_n: must be positive")
			}
			c.Recommend.TopN = uint(n)
			return nil
		},
	},
	"recommend.seed": {
		get: func(c *Config) string {
			if c.Recommend.Seed == 0 {
				return ""
			}
			return strconv.FormatUint(c.Recommend.Seed, 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for recommend.seed: %w", err)
			}
			c.Recommend.Seed = n
			return nil
		},
	},
	"recommend.lazy": {
		get: func(c *Config) string { return strconv.FormatBool(c.Recommend.Lazy) },
		set: func(c *Config, v string) error {
			b, err := parseBool("recommend.lazy", v)
			if err != nil {
				return err
			}
			c.Recommend.Lazy = b
			return nil
		},
	},
	"log.json": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.JSON) },
		set: func(c *Config, v string) error {
			b, err := parseBool("log.json", v)
			if err != nil {
				return err
			}
			c.Log.JSON = b
			return nil
		},
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
}
