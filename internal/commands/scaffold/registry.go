package scaffoldcmd

import (
	"errors"

	"github.com/goliatone/go-katas/internal/commands"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the scaffold command handlers produced by
// RegisterScaffoldCommands.
type HandlerSet struct {
	Scaffold *ScaffoldKataHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	scaffoldHandlerOpts []commands.HandlerOption[ScaffoldKataCommand]
}

// WithScaffoldHandlerOptions forwards options to the ScaffoldKataHandler constructor.
func WithScaffoldHandlerOptions(opts ...commands.HandlerOption[ScaffoldKataCommand]) Option {
	return func(cfg *options) {
		cfg.scaffoldHandlerOpts = append(cfg.scaffoldHandlerOpts, opts...)
	}
}

// RegisterScaffoldCommands builds the scaffold command handlers and registers
// them with the provided registry.
func RegisterScaffoldCommands(reg CommandRegistry, service interfaces.Scaffolder, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("scaffold command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "scaffold")

	scaffoldHandler := NewScaffoldKataHandler(service, logger, cfg.scaffoldHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(scaffoldHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Scaffold: scaffoldHandler,
	}, nil
}
