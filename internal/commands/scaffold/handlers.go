package scaffoldcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-katas/internal/commands"
	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// ErrScaffolderUnavailable indicates the command was wired without a
// scaffolder service.
var ErrScaffolderUnavailable = errors.New("scaffold commands: scaffolder service unavailable")

// ScaffoldKataHandler creates kata skeletons through the shared command
// handler foundation.
type ScaffoldKataHandler struct {
	inner *commands.Handler[ScaffoldKataCommand]
}

// NewScaffoldKataHandler constructs a handler wired to the provided scaffolder.
func NewScaffoldKataHandler(service interfaces.Scaffolder, logger interfaces.Logger, opts ...commands.HandlerOption[ScaffoldKataCommand]) *ScaffoldKataHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ScaffoldKataCommand) error {
		if service == nil {
			return ErrScaffolderUnavailable
		}

		result, err := service.Scaffold(ctx, interfaces.ScaffoldRequest{
			Title:   msg.Title,
			ID:      msg.ID,
			Publish: msg.Publish,
		})
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ScaffoldKataCommand]{
		commands.WithLogger[ScaffoldKataCommand](baseLogger),
		commands.WithOperation[ScaffoldKataCommand]("scaffold.create"),
		commands.WithMessageFields(func(msg ScaffoldKataCommand) map[string]any {
			fields := map[string]any{}
			if msg.ID != "" {
				fields["kata_id"] = msg.ID
			}
			if msg.Publish {
				fields["publish"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ScaffoldKataCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ScaffoldKataHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ScaffoldKataCommand].
func (h *ScaffoldKataHandler) Execute(ctx context.Context, msg ScaffoldKataCommand) error {
	return h.inner.Execute(ctx, msg)
}
