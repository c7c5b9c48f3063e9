package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/internal/config"
)

var (
	configFile   string
	logLevel     string
	logFormat    string
	debug        bool
	personalPath string
	japanese     bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       config.Path(),
			Sources:     cli.EnvVars("PKX_CONFIG"),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func recordFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "personal",
			Usage:       "JSON personal table layered over the builtin species data",
			Destination: &personalPath,
		},
		&cli.BoolFlag{
			Name:        "japanese",
			Aliases:     []string{"jp"},
			Usage:       "treat records and saves as Japanese cartridge data",
			Destination: &japanese,
		},
	}
}

func generationFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "generation",
		Aliases:     []string{"g"},
		Usage:       "record format (1, 3, 7); detected from the file size when empty",
		Destination: dst,
	}
}

func outFlag(dst *string, required bool) cli.Flag {
	return &cli.StringFlag{
		Name:        "out",
		Aliases:     []string{"o"},
		Usage:       "output path",
		Required:    required,
		Destination: dst,
	}
}

func forceFlag(dst *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "force",
		Aliases:     []string{"f"},
		Usage:       "overwrite an existing output file",
		Destination: dst,
	}
}
