// Package index holds the Content Index produced by a compilation pass and
// the store the serving layer reads it through.
package index

import (
	"os"
	"sort"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
)

// Index is the immutable result of one successful compilation pass.
type Index struct {
	renderDir      string
	quizzes        map[quizKey]Quiz
	articles       map[string]string
	articleConfigs map[string]ArticleConfig
	courses        map[string]Course
	exercises      map[string]Exercise
}

// Empty returns the index served before the first successful pass.
func Empty() *Index {
	return NewBuilder("").Build()
}

// RenderDir returns the generation directory holding the rendered articles.
func (i *Index) RenderDir() string {
	return i.renderDir
}

// GetQuiz returns the quiz registered under (articleID, quizID).
func (i *Index) GetQuiz(articleID, quizID string) (Quiz, bool) {
	quiz, ok := i.quizzes[quizKey{article: articleID, quiz: quizID}]
	return quiz, ok
}

// GetArticleConfig returns the frontmatter of an article.
func (i *Index) GetArticleConfig(id string) (ArticleConfig, bool) {
	config, ok := i.articleConfigs[id]
	return config, ok
}

// HasID reports whether id names a rendered article.
func (i *Index) HasID(id string) bool {
	_, ok := i.articles[id]
	return ok
}

// ReadArticle returns the rendered HTML of an article. The id is validated
// before it is used for any lookup so it can never address files outside the
// generation directory.
func (i *Index) ReadArticle(id string) (string, error) {
	if err := ids.ValidateKey(id); err != nil {
		return "", err
	}
	path, ok := i.articles[id]
	if !ok {
		return "", compileerrors.NotFound("article", id)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", compileerrors.IO(path, err)
	}
	return string(data), nil
}

// GetCourse returns a course listing.
func (i *Index) GetCourse(id string) (Course, bool) {
	course, ok := i.courses[id]
	return course, ok
}

// GetExercise returns a linked exercise.
func (i *Index) GetExercise(id string) (Exercise, bool) {
	exercise, ok := i.exercises[id]
	return exercise, ok
}

// ArticleIDs lists article keys in order.
func (i *Index) ArticleIDs() []string {
	return sortedKeys(i.articles)
}

// ExerciseIDs lists exercise keys in order.
func (i *Index) ExerciseIDs() []string {
	return sortedKeys(i.exercises)
}

// Courses lists every course ordered by key.
func (i *Index) Courses() []Course {
	out := make([]Course, 0, len(i.courses))
	for _, key := range sortedKeys(i.courses) {
		out = append(out, i.courses[key])
	}
	return out
}

// QuizCount returns the number of registered quizzes.
func (i *Index) QuizCount() int {
	return len(i.quizzes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
