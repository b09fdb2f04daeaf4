package main

import (
	"flag"
)

type CLIOpts struct {
	configPath   string
	logLevel     string
	reference    string
	exportFormat string
}

func parseCLIOpts(args []string) (CLIOpts, error) {
	var opt CLIOpts
	fs := flag.NewFlagSet("traceboard", flag.ContinueOnError)
	fs.StringVar(&opt.configPath, "config", "", "Path to the TOML config file (default: user config dir)")
	fs.StringVar(&opt.logLevel, "log", "", "Log level: debug, info, warn or error (overrides the config)")
	fs.StringVar(&opt.reference, "reference", "", "Reference image to open on start")
	fs.StringVar(&opt.exportFormat, "export-format", "", "Snapshot format: png or pdf (overrides the config)")
	if err := fs.Parse(args); err != nil {
		return CLIOpts{}, err
	}
	return opt, nil
}
