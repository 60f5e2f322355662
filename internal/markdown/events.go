package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// EventKind classifies a stream event.
type EventKind uint8

const (
	EventStart EventKind = iota + 1
	EventEnd
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventText:
		return "text"
	default:
		return "unknown"
	}
}

// Event is one step of a depth-first walk over a goldmark document.
//
// Start and End events bracket a container node. Text events carry the
// literal content of an inline text run (Node set) or of a raw block such as
// a fenced code block (Node nil; the block's own lines render it).
type Event struct {
	Kind    EventKind
	Node    ast.Node
	Literal []byte
	// Lang is the info-string language of a fenced code block Start event.
	Lang string
}

// Start opens node.
func Start(node ast.Node) Event {
	return Event{Kind: EventStart, Node: node}
}

// End closes node.
func End(node ast.Node) Event {
	return Event{Kind: EventEnd, Node: node}
}

// Text wraps an inline leaf node together with its literal content.
func Text(node ast.Node, literal []byte) Event {
	return Event{Kind: EventText, Node: node, Literal: literal}
}

// IsStart reports whether e opens a node of the given kind.
func (e Event) IsStart(kind ast.NodeKind) bool {
	return e.Kind == EventStart && e.Node != nil && e.Node.Kind() == kind
}

// IsEnd reports whether e closes a node of the given kind.
func (e Event) IsEnd(kind ast.NodeKind) bool {
	return e.Kind == EventEnd && e.Node != nil && e.Node.Kind() == kind
}

// Describe names the shape of e for error messages.
func (e Event) Describe() string {
	switch e.Kind {
	case EventText:
		return "text"
	case EventEnd:
		if e.Node == nil {
			return "end of block"
		}
		return "end of " + describeNode(e.Node, "")
	case EventStart:
		return describeNode(e.Node, e.Lang)
	default:
		return "unknown event"
	}
}

func describeNode(node ast.Node, lang string) string {
	if node == nil {
		return "nothing"
	}
	switch node.Kind() {
	case ast.KindFencedCodeBlock:
		if lang != "" {
			return fmt.Sprintf("fenced code block (%s)", lang)
		}
		return "fenced code block"
	case ast.KindCodeBlock:
		return "indented code block"
	case ast.KindBlockquote:
		return "block quote"
	case ast.KindDocument:
		return "document"
	}
	return strings.ToLower(node.Kind().String())
}

// Tokenize flattens doc into a balanced event stream. Contiguous text
// segments inside one inline container are merged first so a run such as
// `@quiz;q_1` arrives as a single Text event.
func Tokenize(doc ast.Node, source []byte) []Event {
	mergeAdjacentText(doc)

	events := make([]Event, 0, 64)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				events = append(events, Text(n, node.Segment.Value(source)))
			}
			return ast.WalkSkipChildren, nil
		case *ast.String:
			if entering {
				events = append(events, Text(n, node.Value))
			}
			return ast.WalkSkipChildren, nil
		}

		if !entering {
			events = append(events, End(n))
			return ast.WalkContinue, nil
		}

		start := Start(n)
		if fenced, ok := n.(*ast.FencedCodeBlock); ok {
			start.Lang = string(fenced.Language(source))
		}
		events = append(events, start)

		if n.Type() == ast.TypeBlock && n.IsRaw() {
			events = append(events, Event{Kind: EventText, Literal: blockLines(n, source)})
		}
		return ast.WalkContinue, nil
	})
	return events
}

// ErrUnbalanced reports an event stream whose Start and End events do not pair up.
var ErrUnbalanced = errors.New("markdown: unbalanced event stream")

// Rebuild turns an event stream back into a document tree. Nodes are
// re-parented in stream order, so events moved, dropped or synthesised by the
// injector are reflected in the result.
func Rebuild(events []Event) (ast.Node, error) {
	if len(events) == 0 || !events[0].IsStart(ast.KindDocument) {
		return nil, fmt.Errorf("%w: stream must open with a document", ErrUnbalanced)
	}

	var root ast.Node
	stack := make([]ast.Node, 0, 16)

	for i, ev := range events {
		switch ev.Kind {
		case EventStart:
			node := ev.Node
			node.RemoveChildren(node)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: second root at event %d", ErrUnbalanced, i)
				}
				root = node
			} else {
				stack[len(stack)-1].AppendChild(stack[len(stack)-1], node)
			}
			stack = append(stack, node)
		case EventEnd:
			if len(stack) == 0 || stack[len(stack)-1] != ev.Node {
				return nil, fmt.Errorf("%w: unexpected end of %s at event %d", ErrUnbalanced, describeNode(ev.Node, ""), i)
			}
			stack = stack[:len(stack)-1]
		case EventText:
			if ev.Node == nil {
				continue
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: text outside document at event %d", ErrUnbalanced, i)
			}
			stack[len(stack)-1].AppendChild(stack[len(stack)-1], ev.Node)
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed nodes", ErrUnbalanced, len(stack))
	}
	return root, nil
}

func blockLines(n ast.Node, source []byte) []byte {
	lines := n.Lines()
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}

func mergeAdjacentText(doc ast.Node) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		for child := n.FirstChild(); child != nil; {
			next := child.NextSibling()
			current, ok := child.(*ast.Text)
			following, okNext := next.(*ast.Text)
			if ok && okNext && contiguous(current, following) {
				current.Segment = current.Segment.WithStop(following.Segment.Stop)
				current.SetSoftLineBreak(following.SoftLineBreak())
				current.SetHardLineBreak(following.HardLineBreak())
				n.RemoveChild(n, following)
				continue
			}
			child = next
		}
		return ast.WalkContinue, nil
	})
}

func contiguous(a, b *ast.Text) bool {
	if a.SoftLineBreak() || a.HardLineBreak() || a.IsRaw() || b.IsRaw() {
		return false
	}
	if a.Segment.Padding != 0 || b.Segment.Padding != 0 {
		return false
	}
	return a.Segment.Stop == b.Segment.Start
}
