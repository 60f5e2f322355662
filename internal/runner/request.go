package runner

import (
	"context"
	"strings"

	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// NewRequest assembles the input for the external runner.
func NewRequest(lang Language, source, args string) interfaces.RunRequest {
	return interfaces.RunRequest{
		Language: lang.String(),
		Source:   source,
		Args:     strings.TrimSpace(args),
	}
}

// Func adapts a plain function to interfaces.Runner.
type Func func(ctx context.Context, req interfaces.RunRequest) (interfaces.RunOutput, error)

// Run implements interfaces.Runner.
func (f Func) Run(ctx context.Context, req interfaces.RunRequest) (interfaces.RunOutput, error) {
	return f(ctx, req)
}

var _ interfaces.Runner = Func(nil)
