package items

import (
	"strings"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

// resolveQuiz registers a standalone quiz.toml as quiz "quiz" of its own key.
func (r *Resolver) resolveQuiz(contents Contents, id ids.ID, b *index.Builder) (Item, error) {
	dir := contents.Dir()
	if !contents.HasFile(quizFile) {
		return nil, missing(dir, quizFile, "quiz definition")
	}
	if err := unexpected(dir, contents.Unexpected(quizFile)); err != nil {
		return nil, err
	}

	source, err := readFile(dir, quizFile)
	if err != nil {
		return nil, err
	}

	var quiz index.Quiz
	if err := markdown.DecodeStrictTOML(source, &quiz); err != nil {
		return nil, compileerrors.ConfigDeserialization(quizFile, err)
	}
	if err := quiz.Validate(); err != nil {
		return nil, compileerrors.ConfigDeserialization(quizFile, err)
	}

	question, err := r.pipeline.Engine().Convert([]byte(quiz.Question))
	if err != nil {
		return nil, err
	}
	quiz.Question = strings.TrimSpace(string(question))

	key := id.Key()
	if err := b.Reserve(key, id.String()); err != nil {
		return nil, err
	}

	scope := index.NewScope(key)
	if err := scope.AddQuiz(standaloneQuizID, quiz); err != nil {
		b.Release(key)
		return nil, err
	}
	b.CommitQuizzes(scope)

	return Quiz{base: base{id: id, dir: dir}, Quiz: quiz}, nil
}
