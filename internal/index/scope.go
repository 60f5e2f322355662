package index

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
)

// Scope stages the side data produced while compiling one article or
// exercise. Nothing staged is visible to readers until the builder commits the
// scope together with its item.
type Scope struct {
	key     string
	quizzes map[string]Quiz
}

// NewScope opens a staging area for the item with the given index key.
func NewScope(key string) *Scope {
	return &Scope{key: key, quizzes: map[string]Quiz{}}
}

// Key returns the index key quizzes staged here are registered under.
func (s *Scope) Key() string {
	return s.key
}

// AddQuiz stages a quiz. Quiz ids are unique per scope.
func (s *Scope) AddQuiz(id string, quiz Quiz) error {
	if _, exists := s.quizzes[id]; exists {
		return compileerrors.ConfigDeserialization(
			fmt.Sprintf("quiz %q in %s", id, s.key),
			fmt.Errorf("duplicate quiz id %q", id),
		)
	}
	s.quizzes[id] = quiz
	return nil
}

// QuizIDs lists staged quiz ids in order.
func (s *Scope) QuizIDs() []string {
	ids := make([]string, 0, len(s.quizzes))
	for id := range s.quizzes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
