package inject

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

// QuizHandler decodes the TOML block into a quiz and stages it under the
// current document. It emits no replacement events; the client renders
// quizzes from the index.
func QuizHandler(block []markdown.Event, data string, state *State) ([]markdown.Event, error) {
	if data == "" {
		return nil, compileerrors.InvalidAnnotationSyntax("@quiz", "`@quiz` needs an id, as in `@quiz;intro`")
	}
	if err := ids.ValidateSegment(data); err != nil {
		return nil, err
	}
	if state == nil || state.Scope == nil {
		return nil, fmt.Errorf("quiz %q: no scope to register into", data)
	}

	source := fmt.Sprintf("quiz %q in %s", data, state.Scope.Key())

	var quiz index.Quiz
	if err := markdown.DecodeStrictTOML(blockContent(block), &quiz); err != nil {
		return nil, compileerrors.ConfigDeserialization(source, err)
	}
	if err := quiz.Validate(); err != nil {
		return nil, compileerrors.ConfigDeserialization(source, err)
	}

	if state.Engine != nil {
		question, err := state.Engine.Convert([]byte(quiz.Question))
		if err != nil {
			return nil, err
		}
		quiz.Question = strings.TrimSpace(string(question))
	}

	if err := state.Scope.AddQuiz(data, quiz); err != nil {
		return nil, err
	}
	return nil, nil
}

// CalloutLevels lists the accepted `@callout` data values.
var CalloutLevels = []string{"note", "tip", "warning", "danger"}

// CalloutHandler tags the block quote with a callout class. Data selects the
// level and defaults to note.
func CalloutHandler(block []markdown.Event, data string, _ *State) ([]markdown.Event, error) {
	level := data
	if level == "" {
		level = "note"
	}
	if !slices.Contains(CalloutLevels, level) {
		return nil, compileerrors.InvalidAnnotationSyntax("@callout;"+data,
			"callout level must be one of "+strings.Join(CalloutLevels, ", "))
	}
	block[0].Node.SetAttributeString("class", []byte("callout callout-"+level))
	return block, nil
}

// CaptionHandler emits a caption paragraph ahead of the code block.
func CaptionHandler(block []markdown.Event, data string, _ *State) ([]markdown.Event, error) {
	if data == "" {
		return nil, compileerrors.InvalidAnnotationSyntax("@caption", "`@caption` needs a caption, as in `@caption;main.rs`")
	}

	caption := ast.NewParagraph()
	caption.SetAttributeString("class", []byte("code-caption"))
	label := ast.NewString([]byte(data))

	out := make([]markdown.Event, 0, len(block)+3)
	out = append(out,
		markdown.Start(caption),
		markdown.Text(label, label.Value),
		markdown.End(caption),
	)
	return append(out, block...), nil
}

// blockContent joins the literal content events of a code block.
func blockContent(block []markdown.Event) []byte {
	var buf bytes.Buffer
	for _, ev := range block {
		if ev.Kind == markdown.EventText && ev.Node == nil {
			buf.Write(ev.Literal)
		}
	}
	return buf.Bytes()
}
