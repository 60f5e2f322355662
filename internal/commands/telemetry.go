package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome provided to telemetry
// callbacks. Fields are derived from the message before execution; Outcome
// holds whatever the command reported through RecordOutcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Outcome   map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// ErrorFields returns the go-errors category and text code of info.Error, so a
// failed pass can be filtered by the compile error that stopped it.
func (info TelemetryInfo) ErrorFields() map[string]any {
	if info.Error == nil {
		return nil
	}
	fields := map[string]any{"error": info.Error}
	var typed *goerrors.Error
	if errors.As(info.Error, &typed) {
		fields["error_category"] = string(typed.Category)
		if typed.TextCode != "" {
			fields["error_code"] = typed.TextCode
		}
	}
	return fields
}

// Telemetry represents an optional callback invoked after command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes with the supplied logger, tagging
// entries with the reported outcome and, on failure, the error classification.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.Ensure(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logging.WithFields(logger, info.Fields), info.Outcome)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		for key, value := range info.ErrorFields() {
			args = append(args, key, value)
		}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			entry.Error("command.execute.context_error", args...)
		default:
			entry.Error("command.execute.failed", args...)
		}
	}
}
