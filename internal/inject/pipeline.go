package inject

import (
	"bytes"

	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

// Pipeline renders a Markdown body to HTML with annotations expanded.
type Pipeline struct {
	engine   *markdown.Engine
	injector *Injector
}

// NewPipeline combines an engine and a handler registry.
func NewPipeline(engine *markdown.Engine, registry *Registry) *Pipeline {
	return &Pipeline{engine: engine, injector: NewInjector(registry)}
}

// Engine returns the underlying Markdown engine.
func (p *Pipeline) Engine() *markdown.Engine {
	return p.engine
}

// Render parses body, expands its annotations into scope and renders the
// result. Nothing is rendered if any annotation fails.
func (p *Pipeline) Render(body []byte, scope *index.Scope) ([]byte, error) {
	doc := p.engine.Parse(body)
	events := markdown.Tokenize(doc, body)

	injected, err := p.injector.Inject(events, &State{Scope: scope, Engine: p.engine})
	if err != nil {
		return nil, err
	}

	rebuilt, err := markdown.Rebuild(injected)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.engine.Render(&buf, body, rebuilt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
