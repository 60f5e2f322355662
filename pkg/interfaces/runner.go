package interfaces

import (
	"context"
	"time"
)

// RunRequest is the input handed to the sandboxed code runner. The compiler
// only assembles it; execution happens outside this module.
type RunRequest struct {
	Language string
	Source   string
	Args     string
}

// RunOutput captures the opaque result of a runner invocation. Failures of the
// external process are reported here and never parsed by the compiler.
type RunOutput struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Runtime  time.Duration `json:"runtime"`
}

// Runner executes exercise sources. Implementations typically shell out to a
// container runtime with networking disabled.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (RunOutput, error)
}
