package index

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/runner"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// Quiz is a multiple-choice question declared in a `@quiz` block or a
// standalone quiz.toml. Question holds rendered HTML once compiled.
type Quiz struct {
	Question string   `toml:"question" json:"question"`
	Answers  []Answer `toml:"answers" json:"answers"`
}

// Answer is one quiz option.
type Answer struct {
	Text     string `toml:"text" json:"text"`
	Response string `toml:"response" json:"response,omitempty"`
	Correct  bool   `toml:"correct" json:"correct"`
}

var errNoCorrectAnswer = errors.New("at least one answer must be correct")

// Validate implements validation.Validatable.
func (q Quiz) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question, validation.Required),
		validation.Field(&q.Answers, validation.Required, validation.By(hasCorrectAnswer)),
	)
}

// Validate implements validation.Validatable.
func (a Answer) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Text, validation.Required),
	)
}

func hasCorrectAnswer(value any) error {
	answers, _ := value.([]Answer)
	for _, answer := range answers {
		if answer.Correct {
			return nil
		}
	}
	return errNoCorrectAnswer
}

// ArticleConfig is the decoded article frontmatter plus the ids derived from
// the article's position in the content tree.
type ArticleConfig struct {
	ID          string `toml:"-" json:"id"`
	Path        string `toml:"-" json:"path"`
	Course      string `toml:"-" json:"course,omitempty"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description,omitempty" json:"description,omitempty"`
}

// Validate implements validation.Validatable.
func (c ArticleConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
	)
}

// EntryKind names the kind of a course child.
type EntryKind string

const (
	KindArticle  EntryKind = "article"
	KindExercise EntryKind = "exercise"
	KindQuiz     EntryKind = "quiz"
	KindCourse   EntryKind = "course"
)

// CourseEntry references a child item by index key.
type CourseEntry struct {
	Kind EntryKind `json:"kind"`
	ID   string    `json:"id"`
}

// Course groups child items. Title and Description come from the optional
// course.toml and default to the directory name.
type Course struct {
	ID          string        `toml:"-" json:"id"`
	Path        string        `toml:"-" json:"path"`
	Title       string        `toml:"title" json:"title"`
	Description string        `toml:"description,omitempty" json:"description,omitempty"`
	Children    []CourseEntry `toml:"-" json:"children"`
}

// FunctionSignature declares the argument and return types of an exercise
// function using the runner type grammar.
type FunctionSignature struct {
	Inputs []string `toml:"inputs" json:"inputs"`
	Output string   `toml:"output" json:"output"`
}

// Exercise is a linked coding exercise. Instructions holds rendered HTML and
// Code maps each starter language to its source.
type Exercise struct {
	ID           string                       `json:"id"`
	Path         string                       `json:"path"`
	Title        string                       `json:"title"`
	Instructions string                       `json:"instructions"`
	Functions    map[string]FunctionSignature `json:"functions"`
	Code         map[runner.Language]string   `json:"code"`
}

// Languages lists the starter languages in name order.
func (e Exercise) Languages() []runner.Language {
	out := make([]runner.Language, 0, len(e.Code))
	for lang := range e.Code {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RunRequest assembles the runner input for a submission in language. An
// empty source falls back to the starter code.
func (e Exercise) RunRequest(language, source, args string) (interfaces.RunRequest, error) {
	lang, ok := runner.ParseLanguage(language)
	if !ok {
		return interfaces.RunRequest{}, compileerrors.UnsupportedLanguage(e.Path, language)
	}
	starter, ok := e.Code[lang]
	if !ok {
		return interfaces.RunRequest{}, compileerrors.UnsupportedLanguage(e.Path, lang.Extension())
	}
	if source == "" {
		source = starter
	}
	return runner.NewRequest(lang, source, args), nil
}
