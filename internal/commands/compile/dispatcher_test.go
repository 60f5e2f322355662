package compilecmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-amplitude/pkg/testsupport"
)

func TestDispatchCompileDirectory(t *testing.T) {
	content := t.TempDir()
	testsupport.WriteFile(t, content, "intro/article.md", "---\ntitle = \"Intro\"\n---\n# Hello\n")

	handler, store, _ := newHandler(t)
	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(0))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), CompileDirectoryCommand{Directory: content}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !store.HasID("intro") {
		t.Fatalf("expected dispatched pass to publish intro")
	}
}
