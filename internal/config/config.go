// Package config loads pkx settings from ~/.config/pkxcore/config.yaml and
// PKX_* environment variables. Command line flags are applied on top by the
// commands themselves.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/pkxcore/internal/fileio"
	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/pkg/convert"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// maxPersonalFile caps the size of a personal data table.
const maxPersonalFile = 64 << 20

// Config represents the pkx configuration file. Pointer fields distinguish
// "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// PersonalPath points at a JSON personal table layered over the builtin
	// rows.
	PersonalPath string `yaml:"personal_path"`

	// Conversion defaults
	Version  *uint8 `yaml:"version"`
	Language *uint8 `yaml:"language"`
	Japanese *bool  `yaml:"japanese"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

// envConfig mirrors Config for environment overrides. Empty values leave the
// file setting alone.
type envConfig struct {
	LogLevel      string `env:"PKX_LOG_LEVEL"`
	LogFormat     string `env:"PKX_LOG_FORMAT"`
	PersonalPath  string `env:"PKX_PERSONAL_PATH"`
	Version       string `env:"PKX_VERSION"`
	Language      string `env:"PKX_LANGUAGE"`
	Japanese      string `env:"PKX_JAPANESE"`
	ServerAddress string `env:"PKX_SERVER_ADDRESS"`
}

// Path returns the default config file location, or "" when the platform has
// no user config directory.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pkxcore", "config.yaml")
}

// Load reads the config file at path. A missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the PKX_* variables in environ. A nil environ
// reads the process environment.
func ApplyEnv(cfg Config, environ map[string]string) (Config, error) {
	var e envConfig
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.LogFormat = e.LogFormat
	}
	if e.PersonalPath != "" {
		cfg.PersonalPath = e.PersonalPath
	}
	if e.ServerAddress != "" {
		cfg.ServerAddress = e.ServerAddress
	}
	if e.Version != "" {
		v, err := parseUint8("PKX_VERSION", e.Version)
		if err != nil {
			return cfg, err
		}
		cfg.Version = &v
	}
	if e.Language != "" {
		v, err := parseUint8("PKX_LANGUAGE", e.Language)
		if err != nil {
			return cfg, err
		}
		cfg.Language = &v
	}
	if e.Japanese != "" {
		switch strings.ToLower(e.Japanese) {
		case "1", "true", "yes":
			cfg.Japanese = ptr(true)
		case "0", "false", "no":
			cfg.Japanese = ptr(false)
		default:
			return cfg, fmt.Errorf("PKX_JAPANESE: invalid boolean %q", e.Japanese)
		}
	}
	return cfg, nil
}

// LoadDefault reads the default config file and applies the process
// environment.
func LoadDefault() (Config, error) {
	cfg, err := Load(Path())
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(cfg, nil)
}

// Personal returns the species data provider. A configured table takes
// precedence over the builtin rows for the species it covers.
func (c Config) Personal() (personal.Provider, error) {
	if c.PersonalPath == "" {
		return personal.Builtin(), nil
	}
	data, err := fileio.ReadFile(c.PersonalPath, maxPersonalFile)
	if err != nil {
		return nil, err
	}
	t, err := personal.LoadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("personal table %s: %w", c.PersonalPath, err)
	}
	return personal.Chain{t, personal.Builtin()}, nil
}

// Converter builds the conversion settings from the configured defaults.
func (c Config) Converter(p personal.Provider, log logger.Logger) *convert.Config {
	cc := &convert.Config{Personal: p, Logger: log}
	if c.Version != nil {
		cc.Version = *c.Version
	}
	if c.Language != nil {
		cc.Language = pkx.Language(*c.Language)
	}
	return cc
}

// RecordOptions returns the record construction options.
func (c Config) RecordOptions(p personal.Provider) pkx.Options {
	return pkx.Options{Personal: p, Japanese: c.Japanese != nil && *c.Japanese}
}

func parseUint8(name, s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid value %q", name, s)
	}
	return uint8(v), nil
}

func ptr[T any](v T) *T { return &v }
