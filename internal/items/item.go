// Package items resolves content directories into typed items. Each directory
// is classified by the files it holds, checked against the schema of its kind
// and compiled into the pending index.
package items

import (
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
)

const (
	articleFile      = "article.md"
	quizFile         = "quiz.toml"
	courseFile       = "course.toml"
	configFile       = "config.toml"
	instructionsFile = "instructions.md"
	sourceDir        = "src"
	generatorName    = "generator"
	standaloneQuizID = "quiz"
)

// Item is one resolved content directory.
type Item interface {
	Kind() index.EntryKind
	ID() ids.ID
	Dir() string
}

type base struct {
	id  ids.ID
	dir string
}

func (b base) ID() ids.ID  { return b.id }
func (b base) Dir() string { return b.dir }

// Article is a rendered Markdown page.
type Article struct {
	base
	Config       index.ArticleConfig
	RenderedPath string
}

func (Article) Kind() index.EntryKind { return index.KindArticle }

// Exercise is a linked coding exercise.
type Exercise struct {
	base
	Exercise index.Exercise
}

func (Exercise) Kind() index.EntryKind { return index.KindExercise }

// Quiz is a standalone quiz registered under its own key.
type Quiz struct {
	base
	Quiz index.Quiz
}

func (Quiz) Kind() index.EntryKind { return index.KindQuiz }

// Course groups the items resolved from its subdirectories.
type Course struct {
	base
	Course   index.Course
	Children []Item
}

func (Course) Kind() index.EntryKind { return index.KindCourse }

// Classify picks the item kind for a directory listing.
func Classify(contents Contents) index.EntryKind {
	switch {
	case contents.Has(articleFile):
		return index.KindArticle
	case contents.Has(quizFile):
		return index.KindQuiz
	case contents.Has(configFile) || contents.Has(instructionsFile) || contents.Has(sourceDir):
		return index.KindExercise
	default:
		return index.KindCourse
	}
}
