package markdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/pkg/testsupport"
)

type testHeader struct {
	Title       string `toml:"title"`
	Description string `toml:"description,omitempty"`
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := testsupport.LoadFixture(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestSplitFrontMatterFixture(t *testing.T) {
	var header testHeader
	body, err := SplitFrontMatter("article.md", readFixture(t, "testdata/article.md"), &header)
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if header.Title != "Ownership" {
		t.Fatalf("title mismatch, got %q", header.Title)
	}
	if header.Description != "Moves, borrows and lifetimes" {
		t.Fatalf("description mismatch, got %q", header.Description)
	}
	if !strings.Contains(string(body), "# Ownership") {
		t.Fatalf("body not returned correctly: %q", body)
	}
	if strings.Contains(string(body), "title =") {
		t.Fatalf("body still contains header: %q", body)
	}
}

func TestSplitFrontMatterMissingHeader(t *testing.T) {
	var header testHeader
	_, err := SplitFrontMatter("article.md", []byte("# Title\n\nbody\n"), &header)
	if !errors.Is(err, compileerrors.ErrFrontmatterFormat) {
		t.Fatalf("expected frontmatter format error, got %v", err)
	}
	if !strings.Contains(err.Error(), "did not find frontmatter header") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestSplitFrontMatterUnterminatedHeader(t *testing.T) {
	var header testHeader
	_, err := SplitFrontMatter("article.md", []byte("---\ntitle = \"x\"\n\n# Title\n"), &header)
	if !errors.Is(err, compileerrors.ErrFrontmatterFormat) {
		t.Fatalf("expected frontmatter format error, got %v", err)
	}
}

func TestSplitFrontMatterUnknownKey(t *testing.T) {
	var header testHeader
	_, err := SplitFrontMatter("article.md", []byte("---\ntitle = \"x\"\nauthor = \"y\"\n---\nbody\n"), &header)
	if !errors.Is(err, compileerrors.ErrConfigDeserialization) {
		t.Fatalf("expected config deserialization error, got %v", err)
	}
}

func TestSplitFrontMatterMissingRequiredKeyDecodes(t *testing.T) {
	var header testHeader
	body, err := SplitFrontMatter("article.md", []byte("---\ndescription = \"d\"\n---\nbody\n"), &header)
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if header.Title != "" || string(body) == "" {
		t.Fatalf("unexpected decode result: %+v %q", header, body)
	}
}

func TestSplitFrontMatterRejectsInvalidUTF8Body(t *testing.T) {
	var header testHeader
	source := append([]byte("---\ntitle = \"x\"\n---\n"), 0xff, 0xfe)
	_, err := SplitFrontMatter("article.md", source, &header)
	if !errors.Is(err, compileerrors.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestEncodeFrontMatterRoundTrip(t *testing.T) {
	want := testHeader{Title: "Borrowing", Description: "Shared and mutable references"}
	body := []byte("# Borrowing\n\nText.\n")

	encoded, err := EncodeFrontMatter(want, body)
	if err != nil {
		t.Fatalf("EncodeFrontMatter: %v", err)
	}

	var got testHeader
	gotBody, err := SplitFrontMatter("roundtrip.md", encoded, &got)
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v\n%s", err, encoded)
	}
	if got != want {
		t.Fatalf("header mismatch: got %+v want %+v", got, want)
	}
	if strings.TrimSpace(string(gotBody)) != strings.TrimSpace(string(body)) {
		t.Fatalf("body mismatch: got %q want %q", gotBody, body)
	}
}
