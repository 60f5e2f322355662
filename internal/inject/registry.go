package inject

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/goliatone/go-amplitude/internal/markdown"
)

var (
	// ErrInvalidEntry reports a handler entry with a bad name, shape or handler.
	ErrInvalidEntry = errors.New("inject: invalid handler entry")
	// ErrDuplicateEntry reports two entries registered under one name.
	ErrDuplicateEntry = errors.New("inject: duplicate handler entry")
)

// HandlerFunc consumes the block that followed an annotation and returns the
// events that replace it. block always starts and ends with the bracketing
// events of a block matching the entry's shape.
type HandlerFunc func(block []markdown.Event, data string, state *State) ([]markdown.Event, error)

// Entry binds an annotation name to its expected block shape and handler.
type Entry struct {
	Name    string
	Shape   Shape
	Handler HandlerFunc
}

// Registry maps annotation names to handler entries. It is built once and
// never mutated, so it can be shared by concurrent passes without locking.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry validates entries and freezes them into a registry.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, entry := range entries {
		if !validEntryName(entry.Name) || !entry.Shape.valid() || entry.Handler == nil {
			return nil, ErrInvalidEntry
		}
		if _, exists := r.entries[entry.Name]; exists {
			return nil, ErrDuplicateEntry
		}
		r.entries[entry.Name] = entry
	}
	return r, nil
}

// MustRegistry is NewRegistry for statically known entries.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the built-in annotations: quiz, callout and caption.
func DefaultRegistry() *Registry {
	return MustRegistry(
		Entry{Name: "quiz", Shape: FencedCode("toml"), Handler: QuizHandler},
		Entry{Name: "callout", Shape: BlockQuote(), Handler: CalloutHandler},
		Entry{Name: "caption", Shape: FencedCode(""), Handler: CaptionHandler},
	)
}

// Lookup returns the entry registered under name. Names are case sensitive.
func (r *Registry) Lookup(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validEntryName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == ';' || r == '@'
	})
}
