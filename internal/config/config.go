// Package config loads the normpack CLI configuration from YAML.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/stream"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendS3     = "s3"
	BackendMinio  = "minio"
)

// Config is the top-level configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Stream  StreamConfig  `yaml:"stream"`
	Decode  DecodeConfig  `yaml:"decode"`
	Archive ArchiveConfig `yaml:"archive"`
}

// StoreConfig selects and configures the blob store backend.
type StoreConfig struct {
	Backend      string `yaml:"backend"`
	Path         string `yaml:"path"`
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UseSSL       bool   `yaml:"use_ssl"`
	CacheEntries int    `yaml:"cache_entries"`
}

// StreamConfig holds stream encoding settings.
type StreamConfig struct {
	Compression string `yaml:"compression"`
}

// DecodeConfig holds decoding settings.
type DecodeConfig struct {
	Policy string `yaml:"policy"`
}

// ArchiveConfig holds archive settings.
type ArchiveConfig struct {
	// IOLimit caps archive throughput in bytes per second. 0 is unlimited.
	IOLimit int64 `yaml:"io_limit"`
	// MaxConcurrent caps store operations in flight. 0 is unlimited.
	MaxConcurrent int64 `yaml:"max_concurrent"`
}

// CompressionValue returns the parsed stream compression.
func (s StreamConfig) CompressionValue() (stream.Compression, error) {
	return stream.ParseCompression(s.Compression)
}

// PolicyValue returns the parsed decode policy.
func (d DecodeConfig) PolicyValue() (normal.DecodePolicy, error) {
	return normal.ParseDecodePolicy(d.Policy)
}

// envVarPattern matches ${VAR} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} placeholders with environment variable values.
// Returns an error if any referenced variable is not set.
func expandEnvVars(data []byte) ([]byte, error) {
	var missing []string

	result := envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		val, ok := os.LookupEnv(string(varName))
		if !ok {
			missing = append(missing, string(varName))
			return match
		}
		return []byte(val)
	})

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return result, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses config from raw YAML bytes, expanding env vars and validating.
func Parse(data []byte) (*Config, error) {
	expanded, err := expandEnvVars(data)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendMemory
	}
	if cfg.Store.Backend == BackendLocal && cfg.Store.Path == "" {
		cfg.Store.Path = "normpack-data"
	}
	if cfg.Stream.Compression == "" {
		cfg.Stream.Compression = stream.CompressionNone.String()
	}
	if cfg.Decode.Policy == "" {
		cfg.Decode.Policy = normal.PolicyClamp.String()
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendMemory, BackendLocal:
	case BackendS3, BackendMinio:
		if cfg.Store.Bucket == "" {
			return fmt.Errorf("store backend %s requires a bucket", cfg.Store.Backend)
		}
		if cfg.Store.Backend == BackendMinio && cfg.Store.Endpoint == "" {
			return fmt.Errorf("store backend minio requires an endpoint")
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Store.CacheEntries < 0 {
		return fmt.Errorf("cache_entries must not be negative, got %d", cfg.Store.CacheEntries)
	}
	if cfg.Archive.IOLimit < 0 {
		return fmt.Errorf("io_limit must not be negative, got %d", cfg.Archive.IOLimit)
	}
	if cfg.Archive.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent must not be negative, got %d", cfg.Archive.MaxConcurrent)
	}

	if _, err := cfg.Stream.CompressionValue(); err != nil {
		return err
	}
	if _, err := cfg.Decode.PolicyValue(); err != nil {
		return err
	}

	return nil
}
