package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-katas/pkg/interfaces"
)

const (
	rootModule      = "katas"
	compilerModule  = "katas.compiler"
	segmentModule   = "katas.segment"
	kataModule      = "katas.kata"
	sourcesModule   = "katas.sources"
	emitModule      = "katas.emit"
	discoveryModule = "katas.discovery"
	scaffoldModule  = "katas.scaffold"
)

const (
	fieldDocument = "document"
	fieldKata     = "kata"
	fieldMode     = "render_mode"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CompilerLogger returns the logger namespace reserved for the build
// pipeline orchestrator.
func CompilerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, compilerModule)
}

// SegmentLogger returns the logger namespace reserved for the segmenter.
func SegmentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, segmentModule)
}

// KataLogger returns the logger namespace reserved for the section tree
// builder.
func KataLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, kataModule)
}

// SourcesLogger returns the logger namespace reserved for the shared code
// table.
func SourcesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourcesModule)
}

// EmitLogger returns the logger namespace reserved for the content emitter.
func EmitLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, emitModule)
}

// DiscoveryLogger returns the logger namespace reserved for corpus discovery.
func DiscoveryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, discoveryModule)
}

// ScaffoldLogger returns the logger namespace reserved for kata scaffolding.
func ScaffoldLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scaffoldModule)
}

// WithBuildContext enriches the provided logger with common build fields such
// as the document under compilation, the owning kata, and the rendering mode.
// Empty values are ignored.
func WithBuildContext(logger interfaces.Logger, document, kata, mode string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(document); trimmed != "" {
		fields[fieldDocument] = trimmed
	}
	if trimmed := strings.TrimSpace(kata); trimmed != "" {
		fields[fieldKata] = trimmed
	}
	if trimmed := strings.TrimSpace(mode); trimmed != "" {
		fields[fieldMode] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
