package items

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/inject"
	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// Resolver walks a content tree and compiles every item into a builder.
type Resolver struct {
	pipeline    *inject.Pipeline
	logger      interfaces.Logger
	skipInvalid bool
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSkipInvalidItems excludes failing items (and their subtrees) instead of
// failing the pass. Skipped items are logged.
func WithSkipInvalidItems(skip bool) Option {
	return func(r *Resolver) {
		r.skipInvalid = skip
	}
}

// NewResolver constructs a resolver rendering Markdown through pipeline.
func NewResolver(pipeline *inject.Pipeline, opts ...Option) *Resolver {
	r := &Resolver{
		pipeline: pipeline,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ResolveRoot resolves every subdirectory of root as a top-level item. Files
// directly under root are ignored. All sibling errors are collected; unless
// invalid items are skipped, any error means the pass must not be published.
func (r *Resolver) ResolveRoot(ctx context.Context, root string, b *index.Builder) ([]Item, error) {
	contents, err := ReadContents(root)
	if err != nil {
		return nil, err
	}
	return r.resolveChildren(ctx, root, ids.Root(), contents.Dirs(), b)
}

// Resolve compiles the item in dir under id.
func (r *Resolver) Resolve(ctx context.Context, dir string, id ids.ID, b *index.Builder) (Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contents, err := ReadContents(dir)
	if err != nil {
		return nil, itemError(id, err)
	}

	kind := Classify(contents)
	logger := logging.WithItemContext(r.logger, id.String(), dir, string(kind))

	var item Item
	switch kind {
	case index.KindArticle:
		item, err = r.resolveArticle(contents, id, b)
	case index.KindQuiz:
		item, err = r.resolveQuiz(contents, id, b)
	case index.KindExercise:
		item, err = r.resolveExercise(contents, id, b)
	default:
		return r.resolveCourse(ctx, contents, id, b)
	}
	if err != nil {
		return nil, itemError(id, err)
	}

	logger.Debug("item resolved")
	return item, nil
}

func (r *Resolver) resolveChildren(ctx context.Context, dir string, parent ids.ID, names []string, b *index.Builder) ([]Item, error) {
	var (
		resolved []Item
		errs     []error
	)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		childDir := filepath.Join(dir, name)
		id, err := parent.Child(name)
		if err != nil {
			err = fmt.Errorf("item %s: %w", childDir, err)
		} else {
			var item Item
			item, err = r.Resolve(ctx, childDir, id, b)
			if err == nil {
				resolved = append(resolved, item)
				continue
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if r.skipInvalid {
			// id is unset when the directory name itself failed validation.
			logging.WithItemContext(r.logger, childPath(parent, name), childDir, "").
				Warn("item skipped", "error", err)
			continue
		}
		errs = append(errs, err)
	}

	return resolved, errors.Join(errs...)
}

// render writes html for key into the generation directory.
func (r *Resolver) render(b *index.Builder, key string, html []byte) (string, error) {
	path := filepath.Join(b.RenderDir(), key+".html")
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", compileerrors.IO(path, err)
	}
	return path, nil
}

func readFile(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, compileerrors.IO(path, err)
	}
	return data, nil
}

func itemError(id ids.ID, err error) error {
	return fmt.Errorf("item %s: %w", id, err)
}

func missing(dir, name, what string) error {
	return compileerrors.SchemaViolation(filepath.Join(dir, name), "missing "+what+" `"+name+"`")
}

func unexpected(dir string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return compileerrors.SchemaViolation(filepath.Join(dir, names[0]), fmt.Sprintf("unexpected entry %q", names[0]))
}

// childPath renders the hierarchical id a directory name would produce,
// without validating it.
func childPath(parent ids.ID, name string) string {
	if parent.IsRoot() {
		return name
	}
	return parent.String() + "/" + name
}
