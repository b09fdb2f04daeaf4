package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"TraceBoard/internal/config"
	"TraceBoard/internal/logging"
	"TraceBoard/internal/ui"
)

func main() {
	opt, err := parseCLIOpts(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, logger, err := setup(opt, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't start: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting TraceBoard", "mapping", cfg.Surface.Mapping, "export", cfg.Export.Format)

	if err := ui.RunApp(cfg, opt.reference); err != nil {
		logger.Error("TraceBoard stopped", "err", err)
		os.Exit(1)
	}
}

// setup installs a bootstrap logger on w so config warnings are visible,
// loads the config and then replaces the logger with the configured one.
func setup(opt CLIOpts, w io.Writer) (config.Config, *slog.Logger, error) {
	level := opt.logLevel
	if _, err := logging.ParseLevel(level); err != nil {
		level = "info"
	}
	bootstrap, err := logging.New(level, w)
	if err != nil {
		return config.Config{}, nil, err
	}
	logging.SetLogger(bootstrap)

	cfg, err := loadConfig(opt)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, w)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("set up logging: %w", err)
	}
	logging.SetLogger(logger)
	return cfg, logger, nil
}

// loadConfig reads the config file, creating it on first run, and applies
// the command line overrides.
func loadConfig(opt CLIOpts) (config.Config, error) {
	path := opt.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.LoadOrInit(path)
	if err != nil {
		return config.Config{}, err
	}

	if opt.logLevel != "" {
		cfg.Log.Level = opt.logLevel
	}
	if opt.exportFormat != "" {
		cfg.Export.Format = opt.exportFormat
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
