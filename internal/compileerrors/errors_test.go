package compileerrors

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
		category goerrors.Category
	}{
		{"schema", SchemaViolation("course/a", "missing article.md"), ErrSchemaViolation, goerrors.CategoryValidation},
		{"frontmatter", FrontmatterFormat("article.md", "missing header"), ErrFrontmatterFormat, goerrors.CategoryBadInput},
		{"config", ConfigDeserialization("quiz.toml", errors.New("bad key")), ErrConfigDeserialization, goerrors.CategoryBadInput},
		{"syntax", InvalidAnnotationSyntax("@quiz q", "`@` tags cannot contain whitespace"), ErrInvalidAnnotationSyntax, goerrors.CategoryValidation},
		{"unknown", UnknownAnnotationTag("bogus"), ErrUnknownAnnotationTag, goerrors.CategoryValidation},
		{"mismatch", AnnotationBlockMismatch("quiz", "fenced code block (toml)", "paragraph"), ErrAnnotationBlockMismatch, goerrors.CategoryValidation},
		{"language", UnsupportedLanguage("src/a.zig", "zig"), ErrUnsupportedLanguage, goerrors.CategoryValidation},
		{"signature", InvalidSignature("add", "unknown type"), ErrInvalidSignature, goerrors.CategoryValidation},
		{"id", IDValidation("../x", "bad byte"), ErrIDValidation, goerrors.CategoryValidation},
		{"io", IO("a.md", fs.ErrNotExist), ErrIO, goerrors.CategoryInternal},
		{"not found", NotFound("article", "intro"), ErrNotFound, goerrors.CategoryNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Fatalf("expected %v to match sentinel %v", tc.err, tc.sentinel)
			}
			if !goerrors.IsCategory(tc.err, tc.category) {
				t.Fatalf("expected category %v for %v", tc.category, tc.err)
			}
		})
	}
}

func TestCausesRemainReachable(t *testing.T) {
	if err := IO("a.md", fs.ErrNotExist); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected io error to wrap its cause, got %v", err)
	}

	cause := errors.New("expected a string")
	if err := ConfigDeserialization("quiz.toml", cause); !errors.Is(err, cause) {
		t.Fatalf("expected config error to wrap its cause, got %v", err)
	}
}

func TestMessagesCarryContext(t *testing.T) {
	err := AnnotationBlockMismatch("quiz", "fenced code block (toml)", "paragraph")
	if !strings.Contains(err.Error(), "fenced code block (toml)") || !strings.Contains(err.Error(), "paragraph") {
		t.Fatalf("expected expected/actual shapes in message, got %q", err.Error())
	}

	err = UnknownAnnotationTag("bogus")
	if !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected tag name in message, got %q", err.Error())
	}
}
