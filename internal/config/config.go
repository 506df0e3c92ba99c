// Package config loads wardrobe settings from an optional YAML or TOML file,
// a .env file and WARDROBE_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/HendryAvila/wardrobe/internal/imagedata"
	"github.com/HendryAvila/wardrobe/internal/slot"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMaxBytes mirrors the usual per-origin cap of browser local storage.
const DefaultMaxBytes = 5 * 1024 * 1024

// Config is the complete wardrobe configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Images  ImageConfig   `yaml:"images" toml:"images"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// StorageConfig selects where the catalog document lives.
type StorageConfig struct {
	Backend     string `yaml:"backend" toml:"backend"`
	DataDir     string `yaml:"data_dir" toml:"data_dir"`
	Slot        string `yaml:"slot" toml:"slot"`
	DatabaseURL string `yaml:"database_url" toml:"database_url"`
	// MaxBytes caps the serialized document; 0 disables the cap.
	MaxBytes int `yaml:"max_bytes" toml:"max_bytes"`
}

// ImageConfig controls how image files are turned into data URLs.
type ImageConfig struct {
	MaxDimension int `yaml:"max_dimension" toml:"max_dimension"`
	Quality      int `yaml:"quality" toml:"quality"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console | json
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Storage: StorageConfig{
			Backend:  slot.BackendFile,
			DataDir:  filepath.Join(home, ".wardrobe"),
			Slot:     "wardrobe",
			MaxBytes: DefaultMaxBytes,
		},
		Images: ImageConfig{
			MaxDimension: 512,
			Quality:      75,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment apply. Values in the file may reference
// environment variables as ${VAR_NAME}.
//
// The result is not validated: callers apply their own overrides (command
// line flags) first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		expanded := expandEnvVars(string(data))

		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		case ".toml":
			if _, err := toml.Decode(expanded, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		default:
			return nil, fmt.Errorf("unsupported config format %q: use .yaml, .yml or .toml", ext)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// envVarPattern matches ${VAR_NAME}.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value, or with an
// empty string when it is unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

// applyEnv overlays WARDROBE_* variables. DATABASE_URL is honored as a
// fallback for the postgres backend.
func applyEnv(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"WARDROBE_BACKEND", &cfg.Storage.Backend},
		{"WARDROBE_DATA_DIR", &cfg.Storage.DataDir},
		{"WARDROBE_SLOT", &cfg.Storage.Slot},
		{"WARDROBE_DATABASE_URL", &cfg.Storage.DatabaseURL},
		{"WARDROBE_LOG_LEVEL", &cfg.Logging.Level},
		{"WARDROBE_LOG_FORMAT", &cfg.Logging.Format},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(s.key); ok && v != "" {
			*s.dst = v
		}
	}
	if cfg.Storage.DatabaseURL == "" {
		cfg.Storage.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"WARDROBE_MAX_BYTES", &cfg.Storage.MaxBytes},
		{"WARDROBE_IMAGE_MAX_DIMENSION", &cfg.Images.MaxDimension},
		{"WARDROBE_IMAGE_QUALITY", &cfg.Images.Quality},
	}
	for _, i := range ints {
		v, ok := os.LookupEnv(i.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", i.key, v)
		}
		*i.dst = n
	}
	return nil
}

// Validate returns the first problem found.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case slot.BackendFile, slot.BackendSQLite:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir is required for the %s backend", c.Storage.Backend)
		}
	case slot.BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url (or DATABASE_URL) is required for the postgres backend")
		}
	case slot.BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q: must be one of: file, sqlite, postgres, memory", c.Storage.Backend)
	}

	if strings.TrimSpace(c.Storage.Slot) == "" {
		return fmt.Errorf("storage.slot is required")
	}
	if c.Storage.MaxBytes < 0 {
		return fmt.Errorf("storage.max_bytes must not be negative")
	}
	if c.Images.MaxDimension <= 0 {
		return fmt.Errorf("images.max_dimension must be positive")
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return fmt.Errorf("images.quality must be between 1 and 100")
	}
	return nil
}

// SlotOptions converts the storage section for slot.Open.
func (c *Config) SlotOptions() slot.Options {
	return slot.Options{
		Backend:     c.Storage.Backend,
		Dir:         c.Storage.DataDir,
		Name:        c.Storage.Slot,
		DatabaseURL: c.Storage.DatabaseURL,
		MaxBytes:    c.Storage.MaxBytes,
	}
}

// ImageOptions converts the images section for the imagedata package.
func (c *Config) ImageOptions() imagedata.Options {
	return imagedata.Options{
		MaxDimension: c.Images.MaxDimension,
		Quality:      c.Images.Quality,
	}
}
