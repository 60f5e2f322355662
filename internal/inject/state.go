package inject

import (
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

// State is the mutable context handlers share while one document is injected.
type State struct {
	// Scope receives side data, keyed by the document's index key.
	Scope *index.Scope
	// Engine renders nested Markdown such as quiz questions.
	Engine *markdown.Engine
}
