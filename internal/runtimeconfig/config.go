package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrContentDirRequired indicates the corpus root was not configured.
var ErrContentDirRequired = errors.New("katas config: content directory is required")

// ErrDocumentNameRequired ensures every kata directory has a main document to parse.
var ErrDocumentNameRequired = errors.New("katas config: kata document name is required")

var ErrLayoutNameRequired = errors.New("katas config: exercise layout file name is required")
var ErrLayoutNameCollision = errors.New("katas config: exercise layout file names must be distinct")
var ErrOutputDirRequired = errors.New("katas config: output directory is required")
var ErrArtifactNameRequired = errors.New("katas config: artifact file name is required")
var ErrArtifactNamesCollide = errors.New("katas config: rendered and raw artifact file names must differ")
var ErrSiteRouteRequired = errors.New("katas config: site kata route is required when a base URL is set")
var ErrLoggingProviderRequired = errors.New("katas config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("katas config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("katas config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("katas config: logging format is invalid")

// Config aggregates the corpus layout and adapter bindings for the compiler.
// Fields intentionally use simple types so host applications can extend them
// later.
type Config struct {
	// ContentDir is the corpus root; every kata directory lives directly
	// under it and all source ids derive from paths relative to it.
	ContentDir string `yaml:"content_dir"`
	// Document is the main document file name inside each kata directory.
	Document string `yaml:"document"`
	// Index is the published-index file name at the corpus root. A corpus
	// without the file on disk compiles with every kata unpublished.
	Index   string        `yaml:"index"`
	Layout  LayoutConfig  `yaml:"layout"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Site    SiteConfig    `yaml:"site"`
	Logging LoggingConfig `yaml:"logging"`
}

// LayoutConfig names the fixed files expected under an exercise directory.
type LayoutConfig struct {
	Description  string `yaml:"description"`
	Placeholder  string `yaml:"placeholder"`
	Verification string `yaml:"verification"`
	Solution     string `yaml:"solution"`
}

// Names returns the layout file names in a stable order.
func (l LayoutConfig) Names() []string {
	return []string{l.Description, l.Placeholder, l.Verification, l.Solution}
}

// RenderConfig captures Markdown engine behaviour for the rendered pass.
type RenderConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	// Unsafe keeps raw markup (embedded diagrams) intact in rendered output.
	Unsafe bool `yaml:"unsafe"`
}

// OutputConfig captures where and under which names artifacts are written.
type OutputConfig struct {
	Dir              string `yaml:"dir"`
	HTMLArtifact     string `yaml:"html_artifact"`
	MarkdownArtifact string `yaml:"markdown_artifact"`
	// Manifest toggles the build manifest written alongside the artifacts.
	Manifest bool `yaml:"manifest"`
}

// SiteConfig drives the deep-link URLs recorded in the build manifest. An
// empty BaseURL disables link generation entirely.
type SiteConfig struct {
	BaseURL   string `yaml:"base_url"`
	KataRoute string `yaml:"kata_route"`
	// Routes overrides the generated go-urlkit configuration when hosts
	// need more than the single kata route group.
	Routes *urlkit.Config `yaml:"-"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns opinionated defaults matching the published corpus
// layout.
func DefaultConfig() Config {
	return Config{
		ContentDir: "katas",
		Document:   "index.md",
		Index:      "index.json",
		Layout: LayoutConfig{
			Description:  "index.md",
			Placeholder:  "Placeholder.qs",
			Verification: "Verification.qs",
			Solution:     "solution.md",
		},
		Render: RenderConfig{
			Extensions: []string{"gfm"},
			Unsafe:     true,
		},
		Output: OutputConfig{
			Dir:              "dist",
			HTMLArtifact:     "katas-content.html.json",
			MarkdownArtifact: "katas-content.md.json",
			Manifest:         true,
		},
		Site: SiteConfig{
			KataRoute: "/katas/:kata",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Document) == "" {
		return ErrDocumentNameRequired
	}

	seen := map[string]string{}
	for _, pair := range []struct {
		role string
		name string
	}{
		{"description", cfg.Layout.Description},
		{"placeholder", cfg.Layout.Placeholder},
		{"verification", cfg.Layout.Verification},
		{"solution", cfg.Layout.Solution},
	} {
		name := strings.TrimSpace(pair.name)
		if name == "" {
			return fmt.Errorf("%w: %s", ErrLayoutNameRequired, pair.role)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s and %s both use %s", ErrLayoutNameCollision, other, pair.role, name)
		}
		seen[name] = pair.role
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return ErrOutputDirRequired
	}
	html := strings.TrimSpace(cfg.Output.HTMLArtifact)
	markdown := strings.TrimSpace(cfg.Output.MarkdownArtifact)
	if html == "" {
		return fmt.Errorf("%w: html", ErrArtifactNameRequired)
	}
	if markdown == "" {
		return fmt.Errorf("%w: markdown", ErrArtifactNameRequired)
	}
	if html == markdown {
		return fmt.Errorf("%w: %s", ErrArtifactNamesCollide, html)
	}

	if strings.TrimSpace(cfg.Site.BaseURL) != "" && strings.TrimSpace(cfg.Site.KataRoute) == "" {
		return ErrSiteRouteRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
