package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source drivers.
const (
	DriverSample     = "sample"
	DriverElastic    = "elastic"
	DriverRediSearch = "redisearch"
)

// Config holds the mapvista server configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Source  SourceConfig  `yaml:"source"`
	Elastic ElasticConfig `yaml:"elastic"`
	Redis   RedisConfig   `yaml:"redis"`
	Catalog CatalogConfig `yaml:"catalog"`
	Session SessionConfig `yaml:"session"`
	Map     MapConfig     `yaml:"map"`
	CORS    CORSConfig    `yaml:"cors"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SourceConfig selects the data backend.
type SourceConfig struct {
	Driver string `yaml:"driver"` // sample, elastic, redisearch (default: sample)
}

// ElasticConfig holds the search API client settings.
type ElasticConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
	Size       int    `yaml:"size"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
}

// RedisConfig holds RediSearch / Valkey connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	MaxRecords       int      `yaml:"max_records"`
	MetaPrefix       string   `yaml:"meta_prefix"`
	NumericFields    []string `yaml:"numeric_fields"`
	SortBy           string   `yaml:"sort_by"`
	SortDesc         bool     `yaml:"sort_desc"`
	ClientName       string   `yaml:"client_name"`
	SeedSample       bool     `yaml:"seed_sample"` // copy the sample catalog in on start
}

// CatalogConfig holds catalog cache settings.
type CatalogConfig struct {
	CacheTTLSec int `yaml:"cache_ttl_sec"` // 0 disables caching
}

// SessionConfig holds dashboard session settings.
type SessionConfig struct {
	Capacity   int    `yaml:"capacity"`
	IdleTTLMin int    `yaml:"idle_ttl_min"`
	MaxClauses int    `yaml:"max_clauses"`
	CookieName string `yaml:"cookie_name"`
}

// MapConfig holds point mapping and tile settings.
type MapConfig struct {
	LatField    string   `yaml:"lat_field"`
	LngField    string   `yaml:"lng_field"`
	LabelFields []string `yaml:"label_fields"`
	TileURL     string   `yaml:"tile_url"`
	TilesDir    string   `yaml:"tiles_dir"` // served at /tiles/ when set
}

// CORSConfig holds CORS settings for the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AuthConfig holds API key settings for the JSON API.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"` // empty disables auth
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then applies
// defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Source.Driver == "" {
		c.Source.Driver = DriverSample
	}
	if c.Elastic.TimeoutSec <= 0 {
		c.Elastic.TimeoutSec = 10
	}
	if c.Elastic.Size <= 0 {
		c.Elastic.Size = 100
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Redis.MaxRecords <= 0 {
		c.Redis.MaxRecords = 100
	}
	if c.Redis.MetaPrefix == "" {
		c.Redis.MetaPrefix = "mapvista:meta:"
	}
	if c.Catalog.CacheTTLSec < 0 {
		c.Catalog.CacheTTLSec = 0
	}
	if c.Session.Capacity <= 0 {
		c.Session.Capacity = 1024
	}
	if c.Session.IdleTTLMin <= 0 {
		c.Session.IdleTTLMin = 30
	}
	if c.Session.MaxClauses <= 0 {
		c.Session.MaxClauses = 32
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "mapvista_session"
	}
	if c.Map.LatField == "" {
		c.Map.LatField = "latitude"
	}
	if c.Map.LngField == "" {
		c.Map.LngField = "longitude"
	}
	if len(c.Map.LabelFields) == 0 {
		c.Map.LabelFields = []string{"name", "storeName", "trackingId"}
	}
	if c.Map.TileURL == "" {
		c.Map.TileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Source.Driver {
	case DriverSample:
	case DriverElastic:
		u, err := url.Parse(c.Elastic.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("elastic.base_url must be an http(s) URL, got %q", c.Elastic.BaseURL)
		}
	case DriverRediSearch:
		if len(c.Redis.Addrs) == 0 {
			return fmt.Errorf("redis.addrs is required for the redisearch driver")
		}
	default:
		return fmt.Errorf(
			"source.driver must be %q, %q or %q, got %q",
			DriverSample, DriverElastic, DriverRediSearch, c.Source.Driver,
		)
	}
	if c.Map.LatField == c.Map.LngField {
		return fmt.Errorf("map.lat_field and map.lng_field must differ, both are %q", c.Map.LatField)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
