// Package di wires the compiler runtime: configuration, logging provider,
// corpus filesystem, artifact writer, link resolver, and the compiler and
// scaffold services. Hosts override any binding through options.
package di

import (
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-katas/internal/compiler"
	"github.com/goliatone/go-katas/internal/emit"
	"github.com/goliatone/go-katas/internal/kata"
	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/internal/logging/console"
	"github.com/goliatone/go-katas/internal/logging/gologger"
	"github.com/goliatone/go-katas/internal/render"
	"github.com/goliatone/go-katas/internal/runtimeconfig"
	"github.com/goliatone/go-katas/internal/scaffold"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	corpusFS       fs.FS
	writer         *emit.Writer
	links          *emit.LinkResolver
	compiler       interfaces.Compiler
	scaffolder     interfaces.Scaffolder
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithFilesystem overrides the corpus filesystem. The default reads
// Config.ContentDir from the host filesystem; tests inject fstest maps.
func WithFilesystem(fsys fs.FS) Option {
	return func(c *Container) {
		c.corpusFS = fsys
	}
}

// WithCompiler overrides the default compiler service binding.
func WithCompiler(svc interfaces.Compiler) Option {
	return func(c *Container) {
		c.compiler = svc
	}
}

// WithScaffolder overrides the default scaffolder service binding.
func WithScaffolder(svc interfaces.Scaffolder) Option {
	return func(c *Container) {
		c.scaffolder = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.corpusFS == nil {
		c.corpusFS = os.DirFS(cfg.ContentDir)
	}

	if c.compiler == nil {
		writer, err := emit.NewWriter(cfg.Output.Dir)
		if err != nil {
			return nil, err
		}
		links, err := emit.NewLinkResolver(emit.LinkOptions{
			BaseURL:   cfg.Site.BaseURL,
			KataRoute: cfg.Site.KataRoute,
			Routes:    cfg.Site.Routes,
		})
		if err != nil {
			return nil, err
		}

		svc, err := compiler.New(compiler.Config{
			Document: cfg.Document,
			Index:    cfg.Index,
			Layout: kata.Layout{
				Description:  cfg.Layout.Description,
				Placeholder:  cfg.Layout.Placeholder,
				Verification: cfg.Layout.Verification,
				Solution:     cfg.Layout.Solution,
			},
			Render: render.Options{
				Extensions: cfg.Render.Extensions,
				HardWraps:  cfg.Render.HardWraps,
				Unsafe:     cfg.Render.Unsafe,
			},
			HTMLArtifact:     cfg.Output.HTMLArtifact,
			MarkdownArtifact: cfg.Output.MarkdownArtifact,
			Manifest:         cfg.Output.Manifest,
		}, compiler.Dependencies{
			FS:     c.corpusFS,
			Writer: writer,
			Links:  links,
			Logger: logging.CompilerLogger(c.loggerProvider),
		})
		if err != nil {
			return nil, err
		}

		c.writer = writer
		c.links = links
		c.compiler = svc
	}

	if c.scaffolder == nil {
		svc, err := scaffold.New(scaffold.Config{
			ContentDir: cfg.ContentDir,
			Document:   cfg.Document,
			Index:      cfg.Index,
		}, scaffold.Dependencies{
			Logger: logging.ScaffoldLogger(c.loggerProvider),
		})
		if err != nil {
			return nil, err
		}
		c.scaffolder = svc
	}

	return c, nil
}

// LoggerProvider exposes the configured logging provider. Nil means logging
// is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	if c == nil {
		return nil
	}
	return c.loggerProvider
}

// Compiler returns the configured compiler service.
func (c *Container) Compiler() interfaces.Compiler {
	if c == nil {
		return nil
	}
	return c.compiler
}

// Scaffolder returns the configured scaffolder service.
func (c *Container) Scaffolder() interfaces.Scaffolder {
	if c == nil {
		return nil
	}
	return c.scaffolder
}

// Writer exposes the artifact writer; nil when the compiler was overridden.
func (c *Container) Writer() *emit.Writer {
	if c == nil {
		return nil
	}
	return c.writer
}

// buildLoggerProvider maps the logging config onto one of the bundled
// providers. The noop provider intentionally resolves to nil; module logger
// helpers treat a nil provider as logging disabled.
func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "noop":
		return nil, nil
	case "", "console":
		return console.NewProvider(console.Options{Min: console.ParseLevel(cfg.Level)}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, runtimeconfig.ErrLoggingProviderUnknown
	}
}

