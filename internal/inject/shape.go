package inject

import (
	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-amplitude/internal/markdown"
)

type shapeKind uint8

const (
	shapeFencedCode shapeKind = iota + 1
	shapeBlockQuote
)

// Shape is the block an annotation expects to follow it.
type Shape struct {
	kind shapeKind
	lang string
}

// FencedCode expects a fenced code block in lang. An empty lang accepts any
// language, including none.
func FencedCode(lang string) Shape {
	return Shape{kind: shapeFencedCode, lang: lang}
}

// BlockQuote expects a block quote.
func BlockQuote() Shape {
	return Shape{kind: shapeBlockQuote}
}

// Matches reports whether ev opens a block of this shape.
func (s Shape) Matches(ev markdown.Event) bool {
	switch s.kind {
	case shapeFencedCode:
		return ev.IsStart(ast.KindFencedCodeBlock) && (s.lang == "" || ev.Lang == s.lang)
	case shapeBlockQuote:
		return ev.IsStart(ast.KindBlockquote)
	default:
		return false
	}
}

func (s Shape) String() string {
	switch s.kind {
	case shapeFencedCode:
		if s.lang == "" {
			return "fenced code block"
		}
		return "fenced code block (" + s.lang + ")"
	case shapeBlockQuote:
		return "block quote"
	default:
		return "unknown block"
	}
}

func (s Shape) valid() bool {
	return s.kind == shapeFencedCode || s.kind == shapeBlockQuote
}
