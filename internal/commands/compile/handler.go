package compilecmd

import (
	"context"
	"sync"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-amplitude/internal/commands"
	"github.com/goliatone/go-amplitude/internal/compiler"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

const compileOperation = "compile.directory"

var _ command.Commander[CompileDirectoryCommand] = (*CompileDirectoryHandler)(nil)

// CompileDirectoryHandler runs a compilation pass and swaps its index into the
// store. Failed passes leave the published index and its files untouched.
// Passes are serialised: a pass waits for the one in flight to publish.
type CompileDirectoryHandler struct {
	inner *commands.Handler[CompileDirectoryCommand]
	mu    sync.Mutex
}

// NewCompileDirectoryHandler creates a handler bound to the supplied compiler and store.
func NewCompileDirectoryHandler(c *compiler.Compiler, store *index.Store, logger interfaces.Logger, opts ...commands.HandlerOption[CompileDirectoryCommand]) *CompileDirectoryHandler {
	baseLogger := logging.Ensure(logger)
	h := &CompileDirectoryHandler{}

	exec := func(ctx context.Context, msg CompileDirectoryCommand) error {
		queued := time.Now()
		h.mu.Lock()
		defer h.mu.Unlock()
		commands.RecordOutcome(ctx, map[string]any{"wait_ms": time.Since(queued).Milliseconds()})
		if err := ctx.Err(); err != nil {
			return err
		}

		passID := msg.PassID
		if passID == uuid.Nil {
			passID = uuid.New()
		}

		result, err := c.Compile(ctx, passID.String(), msg.Directory)
		if err != nil {
			return err
		}

		previous := store.Publish(result.Index)
		if previous != nil && previous.RenderDir() != result.Index.RenderDir() {
			if err := compiler.RemoveGeneration(previous); err != nil {
				baseLogger.Warn("compile.command.cleanup_failed", "dir", previous.RenderDir(), "error", err)
			}
		}

		commands.RecordOutcome(ctx, map[string]any{
			"pass_id":        result.PassID,
			"article_count":  len(result.Index.ArticleIDs()),
			"exercise_count": len(result.Index.ExerciseIDs()),
			"quiz_count":     result.Index.QuizCount(),
			"compile_ms":     result.Duration.Milliseconds(),
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[CompileDirectoryCommand]{
		commands.WithLogger[CompileDirectoryCommand](baseLogger),
		commands.WithOperation[CompileDirectoryCommand](compileOperation),
		commands.WithMessageFields(func(msg CompileDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.PassID != uuid.Nil {
				fields["pass_id"] = msg.PassID.String()
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CompileDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[CompileDirectoryCommand].
func (h *CompileDirectoryHandler) Execute(ctx context.Context, msg CompileDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
