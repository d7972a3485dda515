package buildcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-katas/internal/commands"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the compiler command handlers produced by
// RegisterCompilerCommands.
type HandlerSet struct {
	Build  *BuildCorpusHandler
	Verify *VerifyCorpusHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	buildHandlerOpts  []commands.HandlerOption[BuildCorpusCommand]
	verifyHandlerOpts []commands.HandlerOption[VerifyCorpusCommand]
}

// WithBuildHandlerOptions forwards options to the BuildCorpusHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildCorpusCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// WithVerifyHandlerOptions forwards options to the VerifyCorpusHandler constructor.
func WithVerifyHandlerOptions(opts ...commands.HandlerOption[VerifyCorpusCommand]) Option {
	return func(cfg *options) {
		cfg.verifyHandlerOpts = append(cfg.verifyHandlerOpts, opts...)
	}
}

// RegisterCompilerCommands builds the compiler command handlers and registers
// them with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations
// (dispatcher, cron) as needed.
func RegisterCompilerCommands(reg CommandRegistry, service interfaces.Compiler, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("compiler command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "compiler")

	buildHandler := NewBuildCorpusHandler(service, logger, cfg.buildHandlerOpts...)
	verifyHandler := NewVerifyCorpusHandler(service, logger, cfg.verifyHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(buildHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(verifyHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Build:  buildHandler,
		Verify: verifyHandler,
	}, nil
}

// RegisterRebuildCron wires the provided build handler into a cron registrar
// using the supplied command configuration and message payload. The handler is
// executed with a background context.
func RegisterRebuildCron(reg CronRegistrar, handler *BuildCorpusHandler, cfg command.HandlerConfig, msg BuildCorpusCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
