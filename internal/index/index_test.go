package index

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/runner"
)

func writeRendered(t *testing.T, dir, key, html string) string {
	t.Helper()
	path := filepath.Join(dir, key+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatalf("write rendered: %v", err)
	}
	return path
}

func sampleQuiz() Quiz {
	return Quiz{
		Question: "<p>Which keyword moves?</p>",
		Answers: []Answer{
			{Text: "move", Correct: true},
			{Text: "borrow", Response: "Borrowing does not move."},
		},
	}
}

func buildSample(t *testing.T) *Index {
	t.Helper()
	dir := t.TempDir()
	b := NewBuilder(dir)

	if err := b.Reserve("rust-ownership", "rust/ownership"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	scope := NewScope("rust-ownership")
	if err := scope.AddQuiz("q1", sampleQuiz()); err != nil {
		t.Fatalf("AddQuiz: %v", err)
	}
	b.CommitArticle(scope, ArticleConfig{ID: "rust-ownership", Path: "rust/ownership", Course: "rust", Title: "Ownership"},
		writeRendered(t, dir, "rust-ownership", "<h1>Ownership</h1>\n"))
	b.CommitCourse(Course{ID: "rust", Path: "rust", Title: "Rust", Children: []CourseEntry{{Kind: KindArticle, ID: "rust-ownership"}}})
	b.CommitExercise(NewScope("rust-add"), Exercise{ID: "rust-add", Path: "rust/add", Title: "Add", Code: map[runner.Language]string{runner.Rust: "fn add() {}"}})

	return b.Build()
}

func TestIndexQueries(t *testing.T) {
	idx := buildSample(t)

	if _, ok := idx.GetQuiz("rust-ownership", "q1"); !ok {
		t.Fatalf("expected quiz to be registered")
	}
	if _, ok := idx.GetQuiz("rust-ownership", "q2"); ok {
		t.Fatalf("unexpected quiz q2")
	}
	config, ok := idx.GetArticleConfig("rust-ownership")
	if !ok || config.Title != "Ownership" || config.Course != "rust" {
		t.Fatalf("unexpected article config %+v", config)
	}
	if !idx.HasID("rust-ownership") || idx.HasID("rust") {
		t.Fatalf("HasID should only report articles")
	}
	if _, ok := idx.GetCourse("rust"); !ok {
		t.Fatalf("expected course")
	}
	if _, ok := idx.GetExercise("rust-add"); !ok {
		t.Fatalf("expected exercise")
	}
	if ids := idx.ArticleIDs(); len(ids) != 1 || ids[0] != "rust-ownership" {
		t.Fatalf("unexpected article ids %v", ids)
	}
}

func TestReadArticle(t *testing.T) {
	idx := buildSample(t)

	html, err := idx.ReadArticle("rust-ownership")
	if err != nil {
		t.Fatalf("ReadArticle: %v", err)
	}
	if html != "<h1>Ownership</h1>\n" {
		t.Fatalf("unexpected html %q", html)
	}

	if _, err := idx.ReadArticle("missing"); !errors.Is(err, compileerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReadArticleRejectsUnsafeIDs(t *testing.T) {
	idx := buildSample(t)

	for _, id := range []string{"../etc/passwd", "a/b", "a.b", "rust ownership", "", "rust-ownership\x00"} {
		if _, err := idx.ReadArticle(id); !errors.Is(err, compileerrors.ErrIDValidation) {
			t.Fatalf("ReadArticle(%q): expected id validation error, got %v", id, err)
		}
	}
}

func TestReserveRejectsDuplicateKeys(t *testing.T) {
	b := NewBuilder(t.TempDir())
	if err := b.Reserve("a-b", "a/b"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	err := b.Reserve("a-b", "a-b")
	if !errors.Is(err, compileerrors.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}

	b.Release("a-b")
	if err := b.Reserve("a-b", "a-b"); err != nil {
		t.Fatalf("expected released key to be reusable, got %v", err)
	}
}

func TestScopeRejectsDuplicateQuiz(t *testing.T) {
	scope := NewScope("intro")
	if err := scope.AddQuiz("q1", sampleQuiz()); err != nil {
		t.Fatalf("AddQuiz: %v", err)
	}
	if err := scope.AddQuiz("q1", sampleQuiz()); !errors.Is(err, compileerrors.ErrConfigDeserialization) {
		t.Fatalf("expected config deserialization error, got %v", err)
	}
	if ids := scope.QuizIDs(); len(ids) != 1 || ids[0] != "q1" {
		t.Fatalf("unexpected quiz ids %v", ids)
	}
}

func TestUncommittedScopeStaysInvisible(t *testing.T) {
	b := NewBuilder(t.TempDir())
	scope := NewScope("draft")
	if err := scope.AddQuiz("q1", sampleQuiz()); err != nil {
		t.Fatalf("AddQuiz: %v", err)
	}

	idx := b.Build()
	if _, ok := idx.GetQuiz("draft", "q1"); ok {
		t.Fatalf("quiz from an uncommitted scope leaked into the index")
	}
}

func TestQuizValidation(t *testing.T) {
	if err := sampleQuiz().Validate(); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}

	cases := map[string]Quiz{
		"missing question": {Answers: []Answer{{Text: "a", Correct: true}}},
		"no answers":       {Question: "q"},
		"no correct":       {Question: "q", Answers: []Answer{{Text: "a"}}},
		"empty answer":     {Question: "q", Answers: []Answer{{Correct: true}}},
	}
	for name, quiz := range cases {
		if err := quiz.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestExerciseRunRequest(t *testing.T) {
	ex := Exercise{ID: "add", Path: "rust/add", Code: map[runner.Language]string{runner.Rust: "starter"}}

	req, err := ex.RunRequest("rs", "", "1 2")
	if err != nil {
		t.Fatalf("RunRequest: %v", err)
	}
	if req.Language != "rust" || req.Source != "starter" || req.Args != "1 2" {
		t.Fatalf("unexpected request %+v", req)
	}

	req, err = ex.RunRequest("rust", "submitted", "")
	if err != nil || req.Source != "submitted" {
		t.Fatalf("expected submitted source, got %+v %v", req, err)
	}

	if _, err := ex.RunRequest("python", "", ""); !errors.Is(err, compileerrors.ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language for missing starter, got %v", err)
	}
	if _, err := ex.RunRequest("cobol", "", ""); !errors.Is(err, compileerrors.ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language, got %v", err)
	}
}

func TestStorePublishSwapsAtomically(t *testing.T) {
	store := NewStore()
	if store.HasID("rust-ownership") {
		t.Fatalf("empty store should not know any article")
	}

	first := buildSample(t)
	if previous := store.Publish(first); previous == nil || previous.HasID("rust-ownership") {
		t.Fatalf("expected the empty index to be returned")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				html, err := store.ReadArticle("rust-ownership")
				if err != nil || html == "" {
					t.Errorf("concurrent read failed: %q %v", html, err)
					return
				}
			}
		}()
	}

	second := buildSample(t)
	if previous := store.Publish(second); previous != first {
		t.Fatalf("expected first index to be returned on swap")
	}
	wg.Wait()

	if store.Current() != second {
		t.Fatalf("expected second index to be current")
	}
}
