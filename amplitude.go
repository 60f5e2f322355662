// Package amplitude compiles course content trees into a queryable index and
// keeps that index fresh while the content changes.
package amplitude

import (
	"context"
	"errors"

	"github.com/goliatone/go-amplitude/internal/commands"
	compilecmd "github.com/goliatone/go-amplitude/internal/commands/compile"
	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/compiler"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/internal/logging/gologger"
	"github.com/goliatone/go-amplitude/internal/runner"
	"github.com/goliatone/go-amplitude/internal/watch"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// ErrRunnerUnavailable is returned by RunExercise when no runner was configured.
var ErrRunnerUnavailable = errors.New("amplitude: no exercise runner configured")

type (
	Quiz              = index.Quiz
	Answer            = index.Answer
	ArticleConfig     = index.ArticleConfig
	Course            = index.Course
	CourseEntry       = index.CourseEntry
	EntryKind         = index.EntryKind
	Exercise          = index.Exercise
	FunctionSignature = index.FunctionSignature
	Language          = runner.Language
	RunRequest        = interfaces.RunRequest
	RunOutput         = interfaces.RunOutput
	Runner            = interfaces.Runner
	RunnerFunc        = runner.Func
	Logger            = interfaces.Logger
	LoggerProvider    = interfaces.LoggerProvider
)

// Option customises a Module.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	runner   interfaces.Runner
}

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithRunner sets the sandbox used by RunExercise.
func WithRunner(r interfaces.Runner) Option {
	return func(o *moduleOptions) {
		o.runner = r
	}
}

// Module represents the top level compiler runtime façade. Queries always
// answer from the most recently published index.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	store    *index.Store
	handler  *compilecmd.CompileDirectoryHandler
	runner   interfaces.Runner
}

// New validates cfg and wires the compiler, store and compile command.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	c := compiler.New(compiler.Options{
		OutputDir:        cfg.OutputDir,
		SkipInvalidItems: cfg.SkipInvalidItems,
		Render:           cfg.Markdown.RenderOptions(),
		Logger:           logging.CompilerLogger(provider),
		ItemLogger:       logging.ItemsLogger(provider),
	})
	store := index.NewStore()

	return &Module{
		cfg:      cfg,
		provider: provider,
		logger:   logging.ModuleLogger(provider, "amplitude"),
		store:    store,
		handler:  compilecmd.NewCompileDirectoryHandler(c, store, commands.CommandLogger(provider, "compile", cfg.ContentDir)),
		runner:   options.runner,
	}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Compile runs one pass over the content directory and publishes the result.
// On failure the previously published index keeps serving.
func (m *Module) Compile(ctx context.Context) error {
	return m.handler.Execute(ctx, compilecmd.CompileDirectoryCommand{Directory: m.cfg.ContentDir})
}

// Watch registers watches on the content tree, compiles once and then
// recompiles on every settled burst of changes until ctx is cancelled. Failed
// passes are logged and never stop the loop.
func (m *Module) Watch(ctx context.Context) error {
	driver, err := watch.New(m.cfg.ContentDir, m.Compile, watch.Options{
		Debounce:    m.cfg.Watch.Debounce,
		Ignore:      m.cfg.Watch.Ignore,
		Logger:      logging.WatchLogger(m.provider),
		InitialPass: true,
	})
	if err != nil {
		return err
	}
	return driver.Run(ctx)
}

// PruneGenerations removes stale generation directories left behind by
// earlier processes, keeping the one currently published.
func (m *Module) PruneGenerations() error {
	var keep []string
	if current := m.store.Current(); current != nil && current.RenderDir() != "" {
		keep = append(keep, current.RenderDir())
	}
	return compiler.PruneGenerations(m.cfg.OutputDir, keep...)
}

func (m *Module) GetQuiz(articleID, quizID string) (Quiz, bool) {
	return m.store.GetQuiz(articleID, quizID)
}

func (m *Module) GetArticleConfig(id string) (ArticleConfig, bool) {
	return m.store.GetArticleConfig(id)
}

// HasID reports whether id names a compiled article.
func (m *Module) HasID(id string) bool {
	return m.store.HasID(id)
}

// ReadArticle returns the rendered HTML of an article. Ids are validated
// before any lookup or file access.
func (m *Module) ReadArticle(id string) (string, error) {
	return m.store.ReadArticle(id)
}

func (m *Module) GetCourse(id string) (Course, bool) {
	return m.store.GetCourse(id)
}

func (m *Module) GetExercise(id string) (Exercise, bool) {
	return m.store.GetExercise(id)
}

func (m *Module) Courses() []Course {
	return m.store.Courses()
}

func (m *Module) ArticleIDs() []string {
	return m.store.ArticleIDs()
}

func (m *Module) ExerciseIDs() []string {
	return m.store.ExerciseIDs()
}

// RunExercise submits source for exercise id to the configured runner. An
// empty source runs the starter code.
func (m *Module) RunExercise(ctx context.Context, id, language, source, args string) (RunOutput, error) {
	if m.runner == nil {
		return RunOutput{}, ErrRunnerUnavailable
	}
	if err := ids.ValidateKey(id); err != nil {
		return RunOutput{}, err
	}
	exercise, ok := m.store.GetExercise(id)
	if !ok {
		return RunOutput{}, compileerrors.NotFound("exercise", id)
	}
	req, err := exercise.RunRequest(language, source, args)
	if err != nil {
		return RunOutput{}, err
	}

	m.logger.Debug("amplitude.exercise.run", "exercise", id, "language", req.Language)
	return m.runner.Run(ctx, req)
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	if cfg.NormalizedProvider() == "noop" {
		return nil, nil
	}
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
}
