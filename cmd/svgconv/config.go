package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/kpango/glg"
)

// Config is read from the SVGCONV_* environment variables,
// then overridden by the command line flags.
type Config struct {
	Backend  string  `envconfig:"BACKEND" default:"raster"`
	Output   string  `envconfig:"OUTPUT"`
	Optimize bool    `envconfig:"OPTIMIZE" default:"false"`
	Width    float64 `envconfig:"WIDTH"`
	Height   float64 `envconfig:"HEIGHT"`
	Strict   bool    `envconfig:"STRICT" default:"false"`
	LogLevel string  `envconfig:"LOG" default:"warn"`
}

func loadConfig(args []string) (Config, []string, error) {
	var cfg Config
	if err := envconfig.Process("svgconv", &cfg); err != nil {
		return cfg, nil, err
	}

	fs := flag.NewFlagSet("svgconv", flag.ContinueOnError)
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "output backend (raster, pdf, json, source)")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "output file path (defaults to the input name with the backend extension)")
	fs.BoolVar(&cfg.Optimize, "optimize", cfg.Optimize, "flatten groups and combine paths before rendering")
	fs.Float64Var(&cfg.Width, "width", cfg.Width, "output width (defaults to the document size)")
	fs.Float64Var(&cfg.Height, "height", cfg.Height, "output height (defaults to the document size)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "abort on the first invalid element")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "minimum log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	return cfg, fs.Args(), nil
}

var logLevels = [...]glg.LEVEL{glg.DEBG, glg.INFO, glg.WARN, glg.ERR}

// setupLogging disables the levels below `level`.
func setupLogging(level string) error {
	var min int
	switch strings.ToLower(level) {
	case "debug":
		min = 0
	case "info":
		min = 1
	case "warn", "warning":
		min = 2
	case "error":
		min = 3
	default:
		return fmt.Errorf("invalid log level %q", level)
	}
	for _, lv := range logLevels[:min] {
		glg.Get().SetLevelMode(lv, glg.NONE)
	}
	return nil
}
