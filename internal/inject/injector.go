// Package inject rewrites tokenized course Markdown. Paragraphs consisting of
// a single `@name;data` annotation are matched against a registry of handlers;
// each handler consumes the block that follows its annotation and returns the
// events that replace it.
package inject

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

// Injector expands annotations in an event stream.
type Injector struct {
	registry *Registry
}

// NewInjector constructs an injector over registry, defaulting to the built-ins.
func NewInjector(registry *Registry) *Injector {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Injector{registry: registry}
}

// Inject returns events with every annotation and its block replaced by the
// handler output. Events that are not part of an annotation pass through
// untouched and in order. The first error aborts the document.
func (in *Injector) Inject(events []markdown.Event, state *State) ([]markdown.Event, error) {
	cursor := markdown.NewCursor(events)
	out := make([]markdown.Event, 0, len(events))

	for !cursor.Done() {
		raw, ok := matchAnnotation(cursor)
		if !ok {
			ev, _ := cursor.Next()
			out = append(out, ev)
			continue
		}
		cursor.Advance(3)

		replacement, err := in.expand(cursor, raw, state)
		if err != nil {
			return nil, err
		}
		out = append(out, replacement...)
	}
	return out, nil
}

func (in *Injector) expand(cursor *markdown.Cursor, raw string, state *State) ([]markdown.Event, error) {
	annotation, err := ParseAnnotation(raw)
	if err != nil {
		return nil, err
	}

	entry, ok := in.registry.Lookup(annotation.Name)
	if !ok {
		return nil, compileerrors.UnknownAnnotationTag(annotation.Name)
	}

	next, ok := cursor.Peek(0)
	if !ok || !entry.Shape.Matches(next) {
		actual := "end of document"
		if ok {
			actual = next.Describe()
		}
		return nil, compileerrors.AnnotationBlockMismatch(annotation.Name, entry.Shape.String(), actual)
	}

	block, err := cursor.TakeBlock()
	if err != nil {
		return nil, compileerrors.AnnotationBlockMismatch(annotation.Name, entry.Shape.String(), "an unterminated block")
	}

	replacement, err := entry.Handler(block, annotation.Data, state)
	if err != nil {
		return nil, fmt.Errorf("`@%s` handler: %w", annotation.Name, err)
	}
	return replacement, nil
}

// matchAnnotation reports whether the cursor sits on a paragraph whose only
// content is one text run starting with `@`.
func matchAnnotation(cursor *markdown.Cursor) (string, bool) {
	open, ok := cursor.Peek(0)
	if !ok || !open.IsStart(ast.KindParagraph) {
		return "", false
	}
	text, ok := cursor.Peek(1)
	if !ok || text.Kind != markdown.EventText || text.Node == nil || !bytes.HasPrefix(text.Literal, []byte("@")) {
		return "", false
	}
	closing, ok := cursor.Peek(2)
	if !ok || !closing.IsEnd(ast.KindParagraph) || closing.Node != open.Node {
		return "", false
	}
	return string(text.Literal), true
}
