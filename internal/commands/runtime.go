package commands

import (
	"context"
	"maps"
	"sync"
	"time"
)

// DefaultCommandTimeout bounds a single command execution, including the time
// a compilation pass spends waiting for the pass ahead of it.
const DefaultCommandTimeout = 5 * time.Minute

// EnsureContext returns a non-nil context, falling back to context.Background when nil.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout applies the provided timeout unless it is zero or negative.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

type outcomeKey struct{}

// outcome collects the result fields a command reports while it runs.
type outcome struct {
	mu     sync.Mutex
	fields map[string]any
}

func withOutcome(ctx context.Context) (context.Context, *outcome) {
	o := &outcome{fields: map[string]any{}}
	return context.WithValue(ctx, outcomeKey{}, o), o
}

func (o *outcome) snapshot() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.fields) == 0 {
		return nil
	}
	return maps.Clone(o.fields)
}

// RecordOutcome attaches result fields (pass id, item counts, queue wait) to
// the command executing under ctx. They are handed to telemetry once the
// command returns. Outside a Handler it does nothing.
func RecordOutcome(ctx context.Context, fields map[string]any) {
	if ctx == nil || len(fields) == 0 {
		return
	}
	o, ok := ctx.Value(outcomeKey{}).(*outcome)
	if !ok {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for key, value := range fields {
		o.fields[key] = value
	}
}
