package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-katas/internal/logging"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one command execution outcome. Fields holds the
// resolved log fields (command type, operation, message-derived values).
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
}

// Telemetry is an optional callback invoked after every command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry returns a callback that logs command outcomes. Cancelled
// runs log as warnings: in a batch tool an interrupted build is an operator
// action, not a fault.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", "duration_ms", info.Duration.Milliseconds())
		case TelemetryStatusContextError:
			entry.Warn("command.execute.canceled", "duration_ms", info.Duration.Milliseconds(), "error", info.Error)
		default:
			entry.Error("command.execute.failed", "duration_ms", info.Duration.Milliseconds(), "error", info.Error)
		}
	}
}
