package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	AutoMigrate bool
	// Cache configuration
	CacheTTL        time.Duration
	CacheMaxEntries int
	// Logging
	LogDir      string
	LogMaxFiles int
}

// fileConfig is the optional YAML overlay pointed to by CONFIG_FILE.
// Environment variables always win over values from the file.
type fileConfig struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	CORSOrigins string `yaml:"cors_origins"`
	TablePrefix string `yaml:"table_prefix"`
	AutoMigrate *bool  `yaml:"auto_migrate"`
	Cache       struct {
		TTL        string `yaml:"ttl"`
		MaxEntries int    `yaml:"max_entries"`
	} `yaml:"cache"`
	Log struct {
		Dir      string `yaml:"dir"`
		MaxFiles int    `yaml:"max_files"`
	} `yaml:"log"`
}

func Load() *Config {
	defaults := map[string]string{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		overlay, err := loadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: ignoring config file %s: %v\n", path, err)
		} else {
			defaults = overlay
		}
	}
	get := func(key, fallback string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		if value, ok := defaults[key]; ok && value != "" {
			return value
		}
		return fallback
	}

	env := get("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:            get("PORT", "8080"),
		Environment:     env,
		DatabaseURL:     get("DATABASE_URL", ""),
		CORSOrigins:     get("CORS_ORIGINS", "http://localhost:5173"),
		TablePrefix:     getTablePrefix(env, get("TABLE_PREFIX", "")),
		AutoMigrate:     get("AUTO_MIGRATE", getDefaultAutoMigrate(env)) == "true",
		CacheTTL:        parseDuration(get("CACHE_TTL", ""), DefaultCacheTTL),
		CacheMaxEntries: parseInt(get("CACHE_MAX_ENTRIES", ""), DefaultCacheMaxEntries),
		LogDir:          get("LOG_DIR", ""),
		LogMaxFiles:     parseInt(get("LOG_MAX_FILES", ""), 10),
	}

	if err := cfg.validateCache(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid cache settings, using defaults: %v\n", err)
		cfg.CacheTTL = DefaultCacheTTL
		cfg.CacheMaxEntries = DefaultCacheMaxEntries
	}

	return cfg
}

// Validate checks everything a process talking to Postgres needs
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DatabaseURL, validation.Required.Error("DATABASE_URL is required")),
	); err != nil {
		return err
	}
	return c.validateCache()
}

// validateCache checks the numeric settings that have no sensible zero value
func (c *Config) validateCache() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CacheTTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.CacheMaxEntries, validation.Required, validation.Min(1)),
	)
}

// loadFile reads the YAML overlay and flattens it to env-style keys
func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	values := map[string]string{
		"PORT":         fc.Port,
		"ENVIRONMENT":  fc.Environment,
		"DATABASE_URL": fc.DatabaseURL,
		"CORS_ORIGINS": fc.CORSOrigins,
		"TABLE_PREFIX": fc.TablePrefix,
		"CACHE_TTL":    fc.Cache.TTL,
		"LOG_DIR":      fc.Log.Dir,
	}
	if fc.AutoMigrate != nil {
		values["AUTO_MIGRATE"] = strconv.FormatBool(*fc.AutoMigrate)
	}
	if fc.Cache.MaxEntries != 0 {
		values["CACHE_MAX_ENTRIES"] = strconv.Itoa(fc.Cache.MaxEntries)
	}
	if fc.Log.MaxFiles != 0 {
		values["LOG_MAX_FILES"] = strconv.Itoa(fc.Log.MaxFiles)
	}
	return values, nil
}

// getDefaultAutoMigrate returns the default schema bootstrap setting based on environment
func getDefaultAutoMigrate(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env, override string) string {
	if override != "" {
		return override
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
