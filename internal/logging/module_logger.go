package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

const (
	rootModule     = "amplitude"
	compilerModule = "amplitude.compiler"
	itemsModule    = "amplitude.items"
	watchModule    = "amplitude.watch"
)

const (
	fieldItemID   = "item_id"
	fieldItemPath = "item_path"
	fieldItemKind = "item_kind"
	fieldPassID   = "pass_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per component.
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

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CompilerLogger returns the logger namespace reserved for compilation passes.
func CompilerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, compilerModule)
}

// ItemsLogger returns the logger namespace reserved for the item resolver.
func ItemsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, itemsModule)
}

// WatchLogger returns the logger namespace reserved for the recompilation driver.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithItemContext enriches the logger with the item being resolved. Empty
// values are ignored.
func WithItemContext(logger interfaces.Logger, id, path, kind string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		fields[fieldItemID] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldItemPath] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldItemKind] = trimmed
	}
	return WithFields(logger, fields)
}

// WithPass tags every entry with the compilation pass identifier.
func WithPass(logger interfaces.Logger, passID string) interfaces.Logger {
	if strings.TrimSpace(passID) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldPassID: passID})
}

// NoOp returns a logger that drops every log entry.
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
