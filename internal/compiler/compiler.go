// Package compiler runs one compilation pass: it resolves a content tree into
// a fresh generation directory and returns the resulting index, or removes the
// generation again when the pass fails.
package compiler

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/inject"
	"github.com/goliatone/go-amplitude/internal/items"
	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/internal/markdown"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// Options configures a Compiler.
type Options struct {
	// OutputDir holds one generation directory per pass.
	OutputDir string
	// SkipInvalidItems publishes passes with failing items excluded.
	SkipInvalidItems bool
	Render           interfaces.RenderOptions
	// Registry defaults to inject.DefaultRegistry.
	Registry *inject.Registry
	Logger   interfaces.Logger
	// ItemLogger receives per-item entries and defaults to Logger.
	ItemLogger interfaces.Logger
}

// Compiler compiles content trees. A Compiler is safe to reuse across passes
// but passes must not run concurrently against the same output directory.
type Compiler struct {
	outputDir string
	resolver  *items.Resolver
	logger    interfaces.Logger
}

// Result is the outcome of a successful pass.
type Result struct {
	PassID   string
	Index    *index.Index
	Items    []items.Item
	Duration time.Duration
}

// New constructs a compiler.
func New(opts Options) *Compiler {
	logger := logging.Ensure(opts.Logger)
	registry := opts.Registry
	if registry == nil {
		registry = inject.DefaultRegistry()
	}
	pipeline := inject.NewPipeline(markdown.NewEngine(opts.Render), registry)
	itemLogger := logger
	if opts.ItemLogger != nil {
		itemLogger = opts.ItemLogger
	}

	return &Compiler{
		outputDir: opts.OutputDir,
		resolver: items.NewResolver(pipeline,
			items.WithLogger(itemLogger),
			items.WithSkipInvalidItems(opts.SkipInvalidItems),
		),
		logger: logger,
	}
}

// Compile resolves contentDir into a new generation named after passID. An
// empty passID is replaced by a random uuid. The generation directory must not
// exist yet.
func (c *Compiler) Compile(ctx context.Context, passID, contentDir string) (Result, error) {
	if passID == "" {
		passID = uuid.NewString()
	}
	logger := logging.WithPass(c.logger, passID)
	started := time.Now()

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return Result{}, compileerrors.IO(c.outputDir, err)
	}
	// A pass only ever owns a directory it created; reusing a pass id must not
	// let a failing pass remove a published generation.
	renderDir := filepath.Join(c.outputDir, passID)
	if err := os.Mkdir(renderDir, 0o755); err != nil {
		return Result{}, compileerrors.IO(renderDir, err)
	}

	builder := index.NewBuilder(renderDir)
	resolved, err := c.resolver.ResolveRoot(ctx, contentDir, builder)
	if err != nil {
		if rmErr := os.RemoveAll(renderDir); rmErr != nil {
			logger.Warn("compile.cleanup_failed", "dir", renderDir, "error", rmErr)
		}
		return Result{}, err
	}

	built := builder.Build()
	result := Result{
		PassID:   passID,
		Index:    built,
		Items:    resolved,
		Duration: time.Since(started),
	}
	logger.Debug("compile.pass.built",
		"articles", len(built.ArticleIDs()),
		"exercises", len(built.ExerciseIDs()),
		"quizzes", built.QuizCount(),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// RemoveGeneration deletes the rendered files of a discarded index.
func RemoveGeneration(idx *index.Index) error {
	if idx == nil || idx.RenderDir() == "" {
		return nil
	}
	if err := os.RemoveAll(idx.RenderDir()); err != nil {
		return compileerrors.IO(idx.RenderDir(), err)
	}
	return nil
}

// PruneGenerations removes generation directories under outputDir other than
// keep. Only uuid-named directories are considered, so unrelated files placed
// in the output directory survive.
func PruneGenerations(outputDir string, keep ...string) error {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return compileerrors.IO(outputDir, err)
	}

	kept := make(map[string]struct{}, len(keep))
	for _, dir := range keep {
		kept[filepath.Base(dir)] = struct{}{}
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			continue
		}
		if _, ok := kept[entry.Name()]; ok {
			continue
		}
		path := filepath.Join(outputDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return compileerrors.IO(path, err)
		}
	}
	return nil
}
