package compilecmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/compiler"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/inject"
	"github.com/goliatone/go-amplitude/internal/markdown"
	"github.com/goliatone/go-amplitude/pkg/testsupport"
)

func newHandler(t *testing.T) (*CompileDirectoryHandler, *index.Store, string) {
	t.Helper()
	output := t.TempDir()
	store := index.NewStore()
	c := compiler.New(compiler.Options{OutputDir: output})
	return NewCompileDirectoryHandler(c, store, nil), store, output
}

func TestCompileDirectoryPublishes(t *testing.T) {
	content := t.TempDir()
	testsupport.WriteFile(t, content, "intro/article.md", "---\ntitle = \"Intro\"\n---\n# Hello\n")

	handler, store, _ := newHandler(t)
	if err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	html, err := store.ReadArticle("intro")
	if err != nil {
		t.Fatalf("ReadArticle: %v", err)
	}
	if html == "" {
		t.Fatalf("expected rendered article")
	}
}

func TestFailedPassKeepsPreviousIndex(t *testing.T) {
	content := t.TempDir()
	testsupport.WriteFile(t, content, "intro/article.md", "---\ntitle = \"Intro\"\n---\n# Hello\n")

	handler, store, _ := newHandler(t)
	if err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	published := store.Current()

	testsupport.WriteFile(t, content, "broken/article.md", "---\ntitle = \"Broken\"\n---\n@bogus\n\n> x\n")
	err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content})
	if !errors.Is(err, compileerrors.ErrUnknownAnnotationTag) {
		t.Fatalf("expected unknown tag error, got %v", err)
	}

	if store.Current() != published {
		t.Fatalf("expected previous index to stay published")
	}
	if _, err := store.ReadArticle("intro"); err != nil {
		t.Fatalf("expected previous generation to stay readable: %v", err)
	}
	if store.HasID("broken") {
		t.Fatalf("failed article leaked into the store")
	}
}

func TestSuccessfulPassRemovesPreviousGeneration(t *testing.T) {
	content := t.TempDir()
	testsupport.WriteFile(t, content, "intro/article.md", "---\ntitle = \"Intro\"\n---\n# Hello\n")

	handler, store, output := newHandler(t)
	first := uuid.New()
	if err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content, PassID: first}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(output, first.String())); !os.IsNotExist(err) {
		t.Fatalf("expected first generation to be removed, got %v", err)
	}
	if _, err := store.ReadArticle("intro"); err != nil {
		t.Fatalf("ReadArticle: %v", err)
	}
}

func TestCompileDirectoryValidation(t *testing.T) {
	handler, _, _ := newHandler(t)

	for _, dir := range []string{"", "   ", filepath.Join(t.TempDir(), "missing")} {
		err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: dir})
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("directory %q: expected validation category, got %v", dir, err)
		}
	}
}

func TestConcurrentPassesDoNotOverlap(t *testing.T) {
	content := t.TempDir()
	testsupport.WriteFile(t, content, "intro/article.md", "---\ntitle = \"Intro\"\n---\n@pause\n\n> hold\n")

	var inFlight, peak atomic.Int32
	registry := inject.MustRegistry(inject.Entry{
		Name:  "pause",
		Shape: inject.BlockQuote(),
		Handler: func(block []markdown.Event, _ string, _ *inject.State) ([]markdown.Event, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				seen := peak.Load()
				if current <= seen || peak.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(40 * time.Millisecond)
			return block, nil
		},
	})

	output := t.TempDir()
	store := index.NewStore()
	c := compiler.New(compiler.Options{OutputDir: output, Registry: registry})
	handler := NewCompileDirectoryHandler(c, store, nil)

	const passes = 3
	var wg sync.WaitGroup
	errs := make(chan error, passes)
	for i := 0; i < passes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}
	if got := peak.Load(); got != 1 {
		t.Fatalf("expected passes to run one at a time, saw %d in flight", got)
	}

	entries, err := os.ReadDir(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(entries) != 1 || filepath.Join(output, entries[0].Name()) != store.Current().RenderDir() {
		t.Fatalf("expected only the published generation to remain, got %d entries", len(entries))
	}
	if _, err := store.ReadArticle("intro"); err != nil {
		t.Fatalf("ReadArticle: %v", err)
	}
}

func TestFailedPassWithReusedPassIDKeepsPublishedFiles(t *testing.T) {
	content := t.TempDir()
	testsupport.WriteFile(t, content, "intro/article.md", "---\ntitle = \"Intro\"\n---\n# Hello\n")

	handler, store, _ := newHandler(t)
	passID := uuid.New()
	if err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content, PassID: passID}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	testsupport.WriteFile(t, content, "broken/article.md", "# no frontmatter\n")
	if err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: content, PassID: passID}); err == nil {
		t.Fatalf("expected the reused pass id to fail")
	}

	if !store.HasID("intro") {
		t.Fatalf("expected intro to stay published")
	}
	if _, err := store.ReadArticle("intro"); err != nil {
		t.Fatalf("expected published files to survive: %v", err)
	}
}
