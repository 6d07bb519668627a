package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rpggio/fleetview/internal/listview"
	"gopkg.in/yaml.v3"
)

// Record source kinds.
const (
	SourceSQLite = "sqlite"
	SourceRemote = "remote"
)

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// ErrInvalidConfig indicates a configuration value failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Source SourceConfig `yaml:"source"`
	List   ListConfig   `yaml:"list"`
	Seed   SeedConfig   `yaml:"seed"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig selects where list records come from.
type SourceConfig struct {
	Kind    string        `yaml:"kind"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ListConfig holds list view defaults applied when a request omits them.
type ListConfig struct {
	PageSize int    `yaml:"page_size"`
	Mode     string `yaml:"mode"`
}

// SeedConfig points at YAML fixtures loaded into an empty store.
type SeedConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Transport: TransportHTTP,
		},
		DB: DBConfig{
			Path: "fleetview.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Source: SourceConfig{
			Kind:    SourceSQLite,
			Timeout: 10 * time.Second,
		},
		List: ListConfig{
			PageSize: 10,
			Mode:     string(listview.ModeClientSide),
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("FLEETVIEW_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("FLEETVIEW_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FLEETVIEW_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FLEETVIEW_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if transport := os.Getenv("FLEETVIEW_TRANSPORT_MODE"); transport != "" {
		cfg.Server.Transport = transport
	}
	if dbPath := os.Getenv("FLEETVIEW_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FLEETVIEW_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if kind := os.Getenv("FLEETVIEW_SOURCE_KIND"); kind != "" {
		cfg.Source.Kind = kind
	}
	if baseURL := os.Getenv("FLEETVIEW_SOURCE_BASE_URL"); baseURL != "" {
		cfg.Source.BaseURL = baseURL
	}
	if timeoutStr := os.Getenv("FLEETVIEW_SOURCE_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FLEETVIEW_SOURCE_TIMEOUT: %w", err)
		}
		cfg.Source.Timeout = timeout
	}
	if sizeStr := os.Getenv("FLEETVIEW_LIST_PAGE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FLEETVIEW_LIST_PAGE_SIZE: %w", err)
		}
		cfg.List.PageSize = size
	}
	if mode := os.Getenv("FLEETVIEW_LIST_MODE"); mode != "" {
		cfg.List.Mode = mode
	}
	if seedPath := os.Getenv("FLEETVIEW_SEED_PATH"); seedPath != "" {
		cfg.Seed.Path = seedPath
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Server.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Server.Transport)
	}
	switch c.Source.Kind {
	case SourceSQLite:
	case SourceRemote:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("%w: remote source requires a base URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown source kind %q", ErrInvalidConfig, c.Source.Kind)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("%w: source timeout must be positive", ErrInvalidConfig)
	}
	if c.List.PageSize <= 0 {
		return fmt.Errorf("%w: list page size must be positive, got %d", ErrInvalidConfig, c.List.PageSize)
	}
	if _, err := listview.ParseMode(c.List.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ListMode returns the parsed default pagination mode.
func (c Config) ListMode() listview.Mode {
	mode, err := listview.ParseMode(c.List.Mode)
	if err != nil {
		return listview.ModeClientSide
	}
	return mode
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
