// Package bootstrap assembles the katas module for CLI entrypoints:
// defaults, an optional YAML config file, KATAS_* environment variables, and
// command-line options, in increasing precedence.
package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	katas "github.com/goliatone/go-katas"
	"github.com/goliatone/go-katas/internal/di"
	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

const cliLoggerModule = "katas.cli"

// Options captures configuration for katas CLI bootstraps. Zero values defer
// to the config file, environment, and defaults.
type Options struct {
	ConfigFile     string
	ContentDir     string
	OutputDir      string
	BaseURL        string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the katas module and the services CLI entrypoints drive.
type Module struct {
	Module     *katas.Module
	Compiler   interfaces.Compiler
	Scaffolder interfaces.Scaffolder
	Logger     interfaces.Logger
}

// BuildModule constructs a katas module for CLI use.
func BuildModule(opts Options) (*Module, error) {
	// Optional; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := katas.DefaultConfig()

	path := strings.TrimSpace(opts.ConfigFile)
	if path == "" {
		path = strings.TrimSpace(os.Getenv("KATAS_CONFIG"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.ContentDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Output.Dir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Site.BaseURL = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := katas.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise katas module: %w", err)
	}

	return &Module{
		Module:     module,
		Compiler:   module.Compiler(),
		Scaffolder: module.Scaffolder(),
		Logger:     logging.ModuleLogger(module.Container().LoggerProvider(), cliLoggerModule),
	}, nil
}

// applyEnv copies KATAS_* environment overrides onto cfg.
func applyEnv(cfg *katas.Config) {
	setString := func(key string, target *string) {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			*target = value
		}
	}
	setString("KATAS_CONTENT_DIR", &cfg.ContentDir)
	setString("KATAS_DOCUMENT", &cfg.Document)
	setString("KATAS_INDEX", &cfg.Index)
	setString("KATAS_OUTPUT_DIR", &cfg.Output.Dir)
	setString("KATAS_SITE_BASE_URL", &cfg.Site.BaseURL)
	setString("KATAS_SITE_KATA_ROUTE", &cfg.Site.KataRoute)
	setString("KATAS_LOG_PROVIDER", &cfg.Logging.Provider)
	setString("KATAS_LOG_LEVEL", &cfg.Logging.Level)
	setString("KATAS_LOG_FORMAT", &cfg.Logging.Format)

	if value := strings.TrimSpace(os.Getenv("KATAS_MANIFEST")); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			cfg.Output.Manifest = parsed
		}
	}
}
