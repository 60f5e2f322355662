package index

import (
	"maps"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
)

type quizKey struct {
	article string
	quiz    string
}

// Builder accumulates the items of one compilation pass. It is not safe for
// concurrent use; a pass owns its builder until Build hands the result off.
type Builder struct {
	renderDir      string
	owners         map[string]string
	quizzes        map[quizKey]Quiz
	articles       map[string]string
	articleConfigs map[string]ArticleConfig
	courses        map[string]Course
	exercises      map[string]Exercise
}

// NewBuilder starts an index whose rendered articles live under renderDir.
func NewBuilder(renderDir string) *Builder {
	return &Builder{
		renderDir:      renderDir,
		owners:         map[string]string{},
		quizzes:        map[quizKey]Quiz{},
		articles:       map[string]string{},
		articleConfigs: map[string]ArticleConfig{},
		courses:        map[string]Course{},
		exercises:      map[string]Exercise{},
	}
}

// RenderDir returns the generation directory of the index being built.
func (b *Builder) RenderDir() string {
	return b.renderDir
}

// Reserve claims key for the item at path. Keys are flat, so two items whose
// hierarchical ids collapse to the same key are rejected.
func (b *Builder) Reserve(key, path string) error {
	if owner, taken := b.owners[key]; taken {
		return compileerrors.SchemaViolation(path, "duplicate id "+key+", already used by "+owner)
	}
	b.owners[key] = path
	return nil
}

// Release frees a reserved key whose item failed before committing.
func (b *Builder) Release(key string) {
	delete(b.owners, key)
}

// CommitArticle publishes an article, its rendered file and its staged quizzes
// into the pending index as one set.
func (b *Builder) CommitArticle(scope *Scope, config ArticleConfig, renderedPath string) {
	b.commitQuizzes(scope)
	b.articleConfigs[config.ID] = config
	b.articles[config.ID] = renderedPath
}

// CommitExercise publishes an exercise and the quizzes of its instructions.
func (b *Builder) CommitExercise(scope *Scope, exercise Exercise) {
	b.commitQuizzes(scope)
	b.exercises[exercise.ID] = exercise
}

// CommitQuizzes publishes the quizzes of a standalone quiz item.
func (b *Builder) CommitQuizzes(scope *Scope) {
	b.commitQuizzes(scope)
}

// CommitCourse publishes a course listing.
func (b *Builder) CommitCourse(course Course) {
	b.courses[course.ID] = course
}

// Build freezes the accumulated items. The builder must not be used afterwards.
func (b *Builder) Build() *Index {
	return &Index{
		renderDir:      b.renderDir,
		quizzes:        maps.Clone(b.quizzes),
		articles:       maps.Clone(b.articles),
		articleConfigs: maps.Clone(b.articleConfigs),
		courses:        maps.Clone(b.courses),
		exercises:      maps.Clone(b.exercises),
	}
}

func (b *Builder) commitQuizzes(scope *Scope) {
	if scope == nil {
		return
	}
	for _, id := range scope.QuizIDs() {
		b.quizzes[quizKey{article: scope.key, quiz: id}] = scope.quizzes[id]
	}
}
