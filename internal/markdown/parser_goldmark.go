package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// Engine wraps a configured goldmark instance. It is stateless after
// construction and safe to share across goroutines.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine constructs an engine from render options. With no extensions
// configured it enables GFM and footnotes; raw HTML is escaped unless
// opts.Unsafe is set.
func NewEngine(opts interfaces.RenderOptions) *Engine {
	return &Engine{md: newGoldmarkEngine(opts)}
}

// Parse builds the goldmark AST for source. Segments in the returned tree
// reference source, so callers must keep it alive until rendering finishes.
func (e *Engine) Parse(source []byte) ast.Node {
	return e.md.Parser().Parse(text.NewReader(source))
}

// Render writes the HTML for doc, resolving segments against source.
func (e *Engine) Render(w io.Writer, source []byte, doc ast.Node) error {
	if err := e.md.Renderer().Render(w, source, doc); err != nil {
		return fmt.Errorf("markdown render: %w", err)
	}
	return nil
}

// Convert renders Markdown into HTML without any annotation processing.
func (e *Engine) Convert(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Footnote,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
