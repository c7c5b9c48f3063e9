package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/internal/config"
	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// settings is what every command needs after flags, environment and the
// config file have been merged.
type settings struct {
	cfg      config.Config
	personal personal.Provider
	log      logger.Logger
}

func (s *settings) recordOptions() pkx.Options {
	return s.cfg.RecordOptions(s.personal)
}

// loadSettings merges the config file, PKX_* variables and the flags set on
// the command line, in increasing priority.
func loadSettings(ctx context.Context, c *cli.Command) (context.Context, *settings, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return ctx, nil, err
	}
	cfg, err = config.ApplyEnv(cfg, nil)
	if err != nil {
		return ctx, nil, err
	}
	applyRootConfig(c, &cfg)

	log := logger.ForFormat(c.Root().ErrWriter, logFormat, logger.ParseLevel(logLevel))
	p, err := cfg.Personal()
	if err != nil {
		return ctx, nil, err
	}
	log.Debug("loaded settings", "config", configFile, "personal", cfg.PersonalPath,
		"japanese", cfg.Japanese != nil && *cfg.Japanese)
	return logger.WithContext(ctx, log), &settings{cfg: cfg, personal: p, log: log}, nil
}

// applyRootConfig applies config file defaults to the shared flag variables
// when the corresponding flag was not explicitly set, and flag values to the
// config when it was.
func applyRootConfig(c *cli.Command, cfg *config.Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	if debug {
		logLevel = "debug"
	}
	if c.IsSet("personal") {
		cfg.PersonalPath = personalPath
	}
	if c.IsSet("japanese") {
		cfg.Japanese = &japanese
	}
}

// applyConvertConfig lets the convert flags override the conversion defaults.
func applyConvertConfig(c *cli.Command, cfg *config.Config, version, language uint8) {
	if c.IsSet("origin-version") {
		cfg.Version = &version
	}
	if c.IsSet("language") {
		cfg.Language = &language
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg config.Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
